package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
)

// GrievanceFilter captures listing parameters.
type GrievanceFilter struct {
	DepartmentID *string
	Statuses     []domain.GrievanceStatus
	Urgencies    []domain.Urgency
	Escalated    *bool
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// GrievanceRepository encapsulates grievance persistence.
type GrievanceRepository interface {
	Create(ctx context.Context, grievance *domain.Grievance) error
	Update(ctx context.Context, grievance *domain.Grievance) error
	GetByTicketID(ctx context.Context, ticketID string) (*domain.Grievance, error)
	ListWithFilter(ctx context.Context, filter GrievanceFilter) ([]domain.Grievance, error)
	ListOverdueUnresolved(ctx context.Context, now time.Time) ([]domain.Grievance, error)
}

type grievanceRepository struct {
	pool *pgxpool.Pool
}

// NewGrievanceRepository instantiates repository.
func NewGrievanceRepository(pool *pgxpool.Pool) GrievanceRepository {
	return &grievanceRepository{pool: pool}
}

const grievanceColumns = `id, ticket_id, title, description, location,
       complainant_name, complainant_email, complainant_mobile, attachment_key,
       department_id, category_id, urgency, status, escalation_level,
       resolution_deadline, assigned_worker_id, assigned_by_email, created_at, updated_at`

func (r *grievanceRepository) Create(ctx context.Context, grievance *domain.Grievance) error {
	const query = `
        INSERT INTO grievances (ticket_id, title, description, location,
            complainant_name, complainant_email, complainant_mobile, attachment_key,
            department_id, category_id, urgency, status, escalation_level, resolution_deadline)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		grievance.TicketID,
		grievance.Title,
		grievance.Description,
		grievance.Location,
		grievance.ComplainantName,
		grievance.ComplainantEmail,
		grievance.ComplainantMobile,
		grievance.AttachmentKey,
		grievance.DepartmentID,
		grievance.CategoryID,
		grievance.Urgency,
		grievance.Status,
		grievance.EscalationLevel,
		grievance.ResolutionDeadline,
	).Scan(&grievance.ID, &grievance.CreatedAt, &grievance.UpdatedAt)
}

func (r *grievanceRepository) Update(ctx context.Context, grievance *domain.Grievance) error {
	const query = `
        UPDATE grievances SET department_id=$1, category_id=$2, status=$3,
            escalation_level=$4, resolution_deadline=$5, assigned_worker_id=$6,
            assigned_by_email=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		grievance.DepartmentID,
		grievance.CategoryID,
		grievance.Status,
		grievance.EscalationLevel,
		grievance.ResolutionDeadline,
		grievance.AssignedWorkerID,
		grievance.AssignedByEmail,
		grievance.ID,
	).Scan(&grievance.UpdatedAt)
}

func (r *grievanceRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Grievance, error) {
	query := fmt.Sprintf(`SELECT %s FROM grievances WHERE ticket_id=$1`, grievanceColumns)
	var grievance domain.Grievance
	if err := r.pool.QueryRow(ctx, query, ticketID).Scan(grievanceFields(&grievance)...); err != nil {
		return nil, err
	}
	return &grievance, nil
}

func (r *grievanceRepository) ListWithFilter(ctx context.Context, filter GrievanceFilter) ([]domain.Grievance, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Urgencies) > 0 {
		placeholders := make([]string, len(filter.Urgencies))
		for i, urgency := range filter.Urgencies {
			args = append(args, urgency)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("urgency IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Escalated != nil {
		if *filter.Escalated {
			clauses = append(clauses, "escalation_level > 0")
		} else {
			clauses = append(clauses, "escalation_level = 0")
		}
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM grievances WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		grievanceColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievances(rows)
}

func (r *grievanceRepository) ListOverdueUnresolved(ctx context.Context, now time.Time) ([]domain.Grievance, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM grievances
        WHERE status <> $1 AND resolution_deadline < $2
        ORDER BY resolution_deadline ASC`, grievanceColumns)
	rows, err := r.pool.Query(ctx, query, domain.GrievanceStatusResolved, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievances(rows)
}

func grievanceFields(g *domain.Grievance) []any {
	return []any{
		&g.ID,
		&g.TicketID,
		&g.Title,
		&g.Description,
		&g.Location,
		&g.ComplainantName,
		&g.ComplainantEmail,
		&g.ComplainantMobile,
		&g.AttachmentKey,
		&g.DepartmentID,
		&g.CategoryID,
		&g.Urgency,
		&g.Status,
		&g.EscalationLevel,
		&g.ResolutionDeadline,
		&g.AssignedWorkerID,
		&g.AssignedByEmail,
		&g.CreatedAt,
		&g.UpdatedAt,
	}
}

func scanGrievances(rows pgx.Rows) ([]domain.Grievance, error) {
	var result []domain.Grievance
	for rows.Next() {
		var grievance domain.Grievance
		if err := rows.Scan(grievanceFields(&grievance)...); err != nil {
			return nil, err
		}
		result = append(result, grievance)
	}
	return result, rows.Err()
}
