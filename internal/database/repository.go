package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyfare/booking-wizard/internal/models"
)

var ErrNotFound = errors.New("not found")

// Repository archives terminal booking confirmations. Confirmations are the
// only entity the wizard persists; everything earlier in the flow is
// session-scoped and ephemeral.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ArchiveConfirmation inserts a completed booking. The criteria, seat and
// passenger snapshots are stored as JSON since nothing queries inside them.
func (r *Repository) ArchiveConfirmation(ctx context.Context, b *models.BookingConfirmation) error {
	snapshot, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode confirmation: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO booking_confirmations (booking_ref, flight_id, total_amount, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, b.BookingRef, b.FlightID, b.Price.Total, snapshot, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to archive confirmation: %w", err)
	}
	return nil
}

// GetConfirmation loads an archived booking by reference.
func (r *Repository) GetConfirmation(ctx context.Context, bookingRef string) (*models.BookingConfirmation, error) {
	var snapshot []byte
	err := r.pool.QueryRow(ctx, `
		SELECT snapshot FROM booking_confirmations WHERE booking_ref = $1
	`, bookingRef).Scan(&snapshot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get confirmation: %w", err)
	}

	var b models.BookingConfirmation
	if err := json.Unmarshal(snapshot, &b); err != nil {
		return nil, fmt.Errorf("failed to decode confirmation: %w", err)
	}
	return &b, nil
}
