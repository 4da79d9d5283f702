package patients

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/medvault/medvault/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const insertQuery = `INSERT INTO patients (name, date_of_birth, age, loaded_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

func (r *PostgresRepository) Create(ctx context.Context, patient *Patient) (*Patient, error) {

	err := r.db.QueryRowContext(ctx, insertQuery,
		patient.Name, patient.DateOfBirth, patient.Age, patient.LoadedBy).Scan(&patient.ID, &patient.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return patient, nil
}

// CreateBatch inserts the whole batch in one transaction so a failing row
// does not leave a partial upload behind. Returns the number of rows
// inserted.
func (r *PostgresRepository) CreateBatch(ctx context.Context, batch []*Patient) (int, error) {

	inserted := 0
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, patient := range batch {
			err := tx.QueryRowContext(ctx, insertQuery,
				patient.Name, patient.DateOfBirth, patient.Age, patient.LoadedBy).Scan(&patient.ID, &patient.CreatedAt)
			if err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*Patient, error) {
	query :=
		`SELECT id, name, date_of_birth, age, loaded_by, created_at FROM patients
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanPatients(rows)
}

func (r *PostgresRepository) GetByLoader(ctx context.Context, loadedBy string) ([]*Patient, error) {
	query :=
		`SELECT id, name, date_of_birth, age, loaded_by, created_at FROM patients
		 WHERE loaded_by = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, loadedBy)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanPatients(rows)
}

func scanPatients(rows *sql.Rows) ([]*Patient, error) {
	result := make([]*Patient, 0)
	for rows.Next() {
		p := &Patient{}
		if err := rows.Scan(&p.ID, &p.Name, &p.DateOfBirth, &p.Age, &p.LoadedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
