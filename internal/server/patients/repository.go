package patients

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, patient *Patient) (*Patient, error)
	CreateBatch(ctx context.Context, batch []*Patient) (int, error)
	GetAll(ctx context.Context) ([]*Patient, error)
	GetByLoader(ctx context.Context, loadedBy string) ([]*Patient, error)
}
