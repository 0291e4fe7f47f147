package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
)

// Compile-time interface assertions.
var (
	_ UserRepository    = (*PostgresUserRepo)(nil)
	_ ClientRepository  = (*PostgresClientRepo)(nil)
	_ PaymentRepository = (*PostgresPaymentRepo)(nil)
	_ OfferRepository   = (*PostgresOfferRepo)(nil)
	_ ChatRepository    = (*PostgresChatRepo)(nil)
)

// wantedUserColumns is the full column set a usuarios table may carry.
// Candidate tables often miss some of them; missing columns stay zero-valued
// in the returned record.
var wantedUserColumns = []string{"id", "nombre", "correo", "password_hash", "contrasena", "area"}

// userTableCandidates are the known locations of the user table, probed in
// order before falling back to a catalog scan.
var userTableCandidates = [][2]string{
	{"public", "usuarios"},
	{"bot", "usuarios"},
}

// PostgresUserRepo resolves users against whichever usuarios table the
// deployment has. The schema location is not guaranteed, so lookup is a
// two-phase search: fixed candidates first, then an information_schema scan
// for tables named like usuario. Every probe failure is swallowed as
// "no match for this candidate".
type PostgresUserRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresUserRepo(pool *pgxpool.Pool, logger *zap.Logger) *PostgresUserRepo {
	if logger == nil {
		logger = zap.L()
	}
	return &PostgresUserRepo{db: pool, logger: logger}
}

func (r *PostgresUserRepo) FindByCorreo(ctx context.Context, correo string) (domain.User, error) {
	for _, candidate := range userTableCandidates {
		if user, ok := r.fetchFromTable(ctx, candidate[0], candidate[1], correo); ok {
			return user, nil
		}
	}

	rows, err := r.db.Query(ctx,
		`SELECT table_schema, table_name FROM information_schema.tables
		 WHERE table_name ILIKE '%usuario%'`)
	if err != nil {
		r.logger.Warn("list user table candidates", zap.Error(err))
		return domain.User{}, ErrNotFound
	}
	tables, err := pgx.CollectRows(rows, pgx.RowToStructByPos[struct {
		Schema string
		Table  string
	}])
	if err != nil {
		r.logger.Warn("collect user table candidates", zap.Error(err))
		return domain.User{}, ErrNotFound
	}

	for _, t := range tables {
		if user, ok := r.fetchFromTable(ctx, t.Schema, t.Table, correo); ok {
			return user, nil
		}
	}

	return domain.User{}, ErrNotFound
}

// fetchFromTable selects the wanted columns that actually exist in
// schema.table and matches the email case-insensitively. Any failure is
// treated as no-match so the search can continue.
func (r *PostgresUserRepo) fetchFromTable(ctx context.Context, schema, table, correo string) (domain.User, bool) {
	cols, err := r.availableColumns(ctx, schema, table)
	if err != nil {
		r.logger.Debug("probe user table columns",
			zap.String("schema", schema), zap.String("table", table), zap.Error(err))
		return domain.User{}, false
	}
	if len(cols) == 0 {
		return domain.User{}, false
	}

	selected := make([]string, 0, len(cols))
	for _, c := range cols {
		selected = append(selected, pgx.Identifier{c}.Sanitize())
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE LOWER(correo) = LOWER($1) LIMIT 1",
		strings.Join(selected, ", "),
		pgx.Identifier{schema, table}.Sanitize(),
	)

	row := r.db.QueryRow(ctx, query, correo)
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := row.Scan(ptrs...); err != nil {
		if err != pgx.ErrNoRows {
			r.logger.Debug("query user table",
				zap.String("schema", schema), zap.String("table", table), zap.Error(err))
		}
		return domain.User{}, false
	}

	var user domain.User
	for i, col := range cols {
		switch col {
		case "id":
			user.ID = asInt64(values[i])
		case "nombre":
			user.Nombre = asString(values[i])
		case "correo":
			user.Correo = asString(values[i])
		case "password_hash":
			user.PasswordHash = asString(values[i])
		case "contrasena":
			user.Contrasena = asString(values[i])
		case "area":
			user.Area = asString(values[i])
		}
	}

	r.logger.Debug("user resolved",
		zap.String("schema", schema), zap.String("table", table), zap.String("correo", user.Correo))
	return user, true
}

// availableColumns returns the subset of wantedUserColumns present in the
// table, in wanted order.
func (r *PostgresUserRepo) availableColumns(ctx context.Context, schema, table string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = $1 AND table_name = $2`, schema, table)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect columns: %w", err)
	}

	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[strings.ToLower(n)] = true
	}

	var selected []string
	for _, want := range wantedUserColumns {
		if present[want] {
			selected = append(selected, want)
		}
	}
	return selected, nil
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
