package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
)

const clientColumns = `id, COALESCE(nombre, ''), COALESCE(email, ''), COALESCE(telefono, ''),
COALESCE(ubicacion, ''), COALESCE(estado, ''), COALESCE(tasa_conversion, 0),
COALESCE(satisfaccion, 0), fecha_registro`

// PostgresClientRepo implements ClientRepository over public.clientes.
type PostgresClientRepo struct {
	db *pgxpool.Pool
}

func NewPostgresClientRepo(pool *pgxpool.Pool) *PostgresClientRepo {
	return &PostgresClientRepo{db: pool}
}

func (r *PostgresClientRepo) List(ctx context.Context, skip, limit int) ([]domain.Client, error) {
	rows, err := r.db.Query(ctx,
		fmt.Sprintf("SELECT %s FROM public.clientes ORDER BY id OFFSET $1 LIMIT $2", clientColumns),
		skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	clients, err := pgx.CollectRows(rows, scanClient)
	if err != nil {
		return nil, fmt.Errorf("collect clients: %w", err)
	}
	return clients, nil
}

func (r *PostgresClientRepo) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	rows, err := r.db.Query(ctx,
		fmt.Sprintf("SELECT %s FROM public.clientes WHERE id = $1", clientColumns), id)
	if err != nil {
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}
	client, err := pgx.CollectOneRow(rows, scanClient)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, ErrNotFound
		}
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}
	return client, nil
}

func (r *PostgresClientRepo) Create(ctx context.Context, nc domain.NewClient) (domain.Client, error) {
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`INSERT INTO public.clientes (nombre, email, telefono, ubicacion, estado, fecha_registro, tasa_conversion, satisfaccion)
VALUES ($1, $2, $3, $4, 'Activo', now(), 0, 0)
RETURNING %s`, clientColumns),
		nc.Nombre, nc.Email, nc.Telefono, nc.Ubicacion)
	if err != nil {
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}
	client, err := pgx.CollectOneRow(rows, scanClient)
	if err != nil {
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func (r *PostgresClientRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM public.clientes").Scan(&count); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return count, nil
}

func (r *PostgresClientRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM public.clientes WHERE LOWER(estado) <> 'cerrado'").Scan(&count); err != nil {
		return 0, fmt.Errorf("count active clients: %w", err)
	}
	return count, nil
}

func (r *PostgresClientRepo) CountRegisteredToday(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM public.clientes WHERE fecha_registro >= current_date").Scan(&count); err != nil {
		return 0, fmt.Errorf("count new clients: %w", err)
	}
	return count, nil
}

func (r *PostgresClientRepo) Recent(ctx context.Context, limit int) ([]domain.RecentClient, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(nombre, ''), COALESCE(email, ''), fecha_registro
		 FROM public.clientes ORDER BY fecha_registro DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent clients: %w", err)
	}
	recent, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.RecentClient])
	if err != nil {
		return nil, fmt.Errorf("collect recent clients: %w", err)
	}
	return recent, nil
}

func (r *PostgresClientRepo) StatusCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx,
		"SELECT COALESCE(estado, ''), COUNT(*) FROM public.clientes GROUP BY estado")
	if err != nil {
		return nil, fmt.Errorf("client status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var estado string
		var count int64
		if err := rows.Scan(&estado, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[estado] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("client status counts: %w", err)
	}
	return counts, nil
}

func scanClient(row pgx.CollectableRow) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.Nombre, &c.Email, &c.Telefono, &c.Ubicacion,
		&c.Estado, &c.TasaConversion, &c.Satisfaccion, &c.FechaRegistro)
	return c, err
}
