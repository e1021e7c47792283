package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketSequenceRepository allocates dense monthly ticket sequence
// numbers. The increment is a single atomic upsert, so concurrent
// submissions in the same month can never observe the same number.
type TicketSequenceRepository interface {
	Next(ctx context.Context, year int, month time.Month) (int, error)
}

type ticketSequenceRepository struct {
	pool *pgxpool.Pool
}

// NewTicketSequenceRepository instantiates repository.
func NewTicketSequenceRepository(pool *pgxpool.Pool) TicketSequenceRepository {
	return &ticketSequenceRepository{pool: pool}
}

func (r *ticketSequenceRepository) Next(ctx context.Context, year int, month time.Month) (int, error) {
	const query = `
        INSERT INTO ticket_sequences (year, month, last_seq)
        VALUES ($1,$2,1)
        ON CONFLICT (year, month)
        DO UPDATE SET last_seq = ticket_sequences.last_seq + 1
        RETURNING last_seq`
	var seq int
	if err := r.pool.QueryRow(ctx, query, year, int(month)).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}
