// Package patients provides storage and queries for patient records created
// by authenticated users.
package patients

import (
	"context"
	"fmt"
	"time"
)

// Service exposes patient-record operations to the transport layer.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a single record attributed to loadedBy.
func (s *Service) Create(ctx context.Context, name string, dateOfBirth time.Time, age int, loadedBy string) (*Patient, error) {

	patient := &Patient{
		Name:        name,
		DateOfBirth: dateOfBirth,
		Age:         age,
		LoadedBy:    loadedBy,
	}

	patient, err := s.repo.Create(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("error creating patient: %w", err)
	}

	return patient, nil
}

// CreateBatch stores several records attributed to loadedBy in one
// transaction and returns the number inserted.
func (s *Service) CreateBatch(ctx context.Context, batch []*Patient, loadedBy string) (int, error) {
	for _, p := range batch {
		p.LoadedBy = loadedBy
	}

	inserted, err := s.repo.CreateBatch(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("error creating patients: %w", err)
	}

	return inserted, nil
}

// GetAll returns every record, newest first.
func (s *Service) GetAll(ctx context.Context) ([]*Patient, error) {
	result, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing patients: %w", err)
	}
	return result, nil
}

// GetByLoader returns the records created by the given user, newest first.
func (s *Service) GetByLoader(ctx context.Context, loadedBy string) ([]*Patient, error) {
	result, err := s.repo.GetByLoader(ctx, loadedBy)
	if err != nil {
		return nil, fmt.Errorf("error listing patients: %w", err)
	}
	return result, nil
}
