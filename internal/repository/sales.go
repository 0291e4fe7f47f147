package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPaymentRepo implements PaymentRepository over public.pagos.
type PostgresPaymentRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepo(pool *pgxpool.Pool) *PostgresPaymentRepo {
	return &PostgresPaymentRepo{db: pool}
}

func (r *PostgresPaymentRepo) SumSince(ctx context.Context, days int) (float64, error) {
	var total float64
	if err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(monto), 0) FROM public.pagos
		 WHERE fecha_pago >= now() - make_interval(days => $1)`, days).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}

// PostgresOfferRepo implements OfferRepository over public.ofertas.
type PostgresOfferRepo struct {
	db *pgxpool.Pool
}

func NewPostgresOfferRepo(pool *pgxpool.Pool) *PostgresOfferRepo {
	return &PostgresOfferRepo{db: pool}
}

func (r *PostgresOfferRepo) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM public.ofertas WHERE estado = 'ABIERTA'").Scan(&count); err != nil {
		return 0, fmt.Errorf("count open offers: %w", err)
	}
	return count, nil
}
