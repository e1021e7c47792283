package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
)

// WorkerRepository manages worker persistence.
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]domain.Worker, error)
}

type workerRepository struct {
	pool *pgxpool.Pool
}

// NewWorkerRepository builds the repository.
func NewWorkerRepository(pool *pgxpool.Pool) WorkerRepository {
	return &workerRepository{pool: pool}
}

func (r *workerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	const query = `
        INSERT INTO workers (department_id, name, email, phone)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		worker.DepartmentID,
		worker.Name,
		worker.Email,
		worker.Phone,
	).Scan(&worker.ID, &worker.CreatedAt, &worker.UpdatedAt)
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	const query = `
        SELECT id, department_id, name, email, phone, created_at, updated_at
        FROM workers WHERE id=$1`
	var worker domain.Worker
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&worker.ID,
		&worker.DepartmentID,
		&worker.Name,
		&worker.Email,
		&worker.Phone,
		&worker.CreatedAt,
		&worker.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepository) ListByDepartment(ctx context.Context, departmentID string) ([]domain.Worker, error) {
	const query = `
        SELECT id, department_id, name, email, phone, created_at, updated_at
        FROM workers WHERE department_id=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Worker
	for rows.Next() {
		var worker domain.Worker
		if err := rows.Scan(
			&worker.ID,
			&worker.DepartmentID,
			&worker.Name,
			&worker.Email,
			&worker.Phone,
			&worker.CreatedAt,
			&worker.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, worker)
	}
	return result, rows.Err()
}
