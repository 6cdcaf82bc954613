package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts b and fills in CreatedAt. b.ID must already be set.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("id", "user_id", "room_id", "customer_count", "amount", "check_in", "check_out").
		Values(b.ID, b.UserID, b.RoomID, b.CustomerCount, b.Amount, b.CheckIn, b.CheckOut).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
				return ErrInvalidBooking.WithErr(err)
			}
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := psql.Select(
		"id", "user_id", "room_id", "customer_count", "amount", "check_in", "check_out", "created_at",
	).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CustomerCount, &b.Amount, &b.CheckIn, &b.CheckOut, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	b.CheckIn = b.CheckIn.UTC()
	b.CheckOut = b.CheckOut.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}
