package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
)

// AccountRepository manages persistence for the role-tagged account
// union (office bearers, approving authorities, admins).
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ListEmailsByRole(ctx context.Context, role domain.AccountRole) ([]string, error)
	ListEmailsByRoleAndDepartment(ctx context.Context, role domain.AccountRole, departmentID string) ([]string, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository builds the repository.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, name, email, mobile, password_hash, role, department_id, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (name, email, mobile, password_hash, role, department_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		account.Name,
		account.Email,
		account.Mobile,
		account.PasswordHash,
		account.Role,
		account.DepartmentID,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.fetchSingle(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.fetchSingle(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email=$1`, email)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.Mobile,
		&account.PasswordHash,
		&account.Role,
		&account.DepartmentID,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ListEmailsByRole(ctx context.Context, role domain.AccountRole) ([]string, error) {
	const query = `SELECT email FROM accounts WHERE role=$1 ORDER BY email`
	return r.listEmails(ctx, query, role)
}

func (r *accountRepository) ListEmailsByRoleAndDepartment(ctx context.Context, role domain.AccountRole, departmentID string) ([]string, error) {
	const query = `SELECT email FROM accounts WHERE role=$1 AND department_id=$2 ORDER BY email`
	return r.listEmails(ctx, query, role, departmentID)
}

func (r *accountRepository) listEmails(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		result = append(result, email)
	}
	return result, rows.Err()
}
