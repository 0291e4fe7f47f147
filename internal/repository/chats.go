package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
)

// Known names for the message table's timestamp column. Deployments disagree
// on which one the bot writes.
const (
	timeColDefault  = "timestamp"
	timeColFallback = "fecha_hora"
)

// PostgresChatRepo implements ChatRepository over bot.whatsapp and
// public.n8n_chat_histories.
type PostgresChatRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresChatRepo(pool *pgxpool.Pool, logger *zap.Logger) *PostgresChatRepo {
	if logger == nil {
		logger = zap.L()
	}
	return &PostgresChatRepo{db: pool, logger: logger}
}

func (r *PostgresChatRepo) ResolveTimeColumn(ctx context.Context) string {
	rows, err := r.db.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = 'bot' AND table_name = 'whatsapp' AND column_name IN ($1, $2)`,
		timeColDefault, timeColFallback)
	if err != nil {
		r.logger.Warn("probe message time column", zap.Error(err))
		return timeColDefault
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		r.logger.Warn("probe message time column", zap.Error(err))
		return timeColDefault
	}

	found := make(map[string]bool, len(names))
	for _, n := range names {
		found[n] = true
	}
	if found[timeColDefault] {
		return timeColDefault
	}
	if found[timeColFallback] {
		return timeColFallback
	}
	return timeColDefault
}

func (r *PostgresChatRepo) MessagesByDay(ctx context.Context, timeCol string, days int) ([]domain.DayCount, error) {
	col := sanitizeTimeColumn(timeCol)
	query := fmt.Sprintf(
		`SELECT to_char(%[1]s::date, 'YYYY-MM-DD') AS day, COUNT(*)
		 FROM bot.whatsapp
		 WHERE %[1]s >= now() - make_interval(days => $1)
		 GROUP BY day ORDER BY day`, col)
	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("messages by day: %w", err)
	}
	series, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.DayCount])
	if err != nil {
		return nil, fmt.Errorf("collect day series: %w", err)
	}
	return series, nil
}

func (r *PostgresChatRepo) MessagesByMonthRange(ctx context.Context, timeCol string, start, end time.Time) ([]domain.MonthCount, error) {
	col := sanitizeTimeColumn(timeCol)
	query := fmt.Sprintf(
		`SELECT to_char(%[1]s::date, 'YYYY-MM') AS month, COUNT(*)
		 FROM bot.whatsapp
		 WHERE %[1]s >= $1 AND %[1]s < $2
		 GROUP BY month ORDER BY month`, col)
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("messages by month: %w", err)
	}
	series, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.MonthCount])
	if err != nil {
		return nil, fmt.Errorf("collect month series: %w", err)
	}
	return series, nil
}

func (r *PostgresChatRepo) MessagesByTrailingMonths(ctx context.Context, timeCol string) ([]domain.MonthCount, error) {
	col := sanitizeTimeColumn(timeCol)
	query := fmt.Sprintf(
		`SELECT to_char(%[1]s::date, 'YYYY-MM') AS month, COUNT(*)
		 FROM bot.whatsapp
		 WHERE %[1]s >= (date_trunc('month', current_date) - interval '11 months')
		 GROUP BY month ORDER BY month`, col)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("messages by trailing months: %w", err)
	}
	series, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.MonthCount])
	if err != nil {
		return nil, fmt.Errorf("collect month series: %w", err)
	}
	return series, nil
}

func (r *PostgresChatRepo) RecentMessageTexts(ctx context.Context, timeCol string, limit int) ([]string, error) {
	col := sanitizeTimeColumn(timeCol)
	query := fmt.Sprintf(
		`SELECT COALESCE(message::text, '') FROM bot.whatsapp ORDER BY %s DESC LIMIT $1`, col)
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	texts, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect recent messages: %w", err)
	}
	return texts, nil
}

func (r *PostgresChatRepo) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM bot.whatsapp").Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

func (r *PostgresChatRepo) CountChatHistories(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM public.n8n_chat_histories").Scan(&count); err != nil {
		return 0, fmt.Errorf("count chat histories: %w", err)
	}
	return count, nil
}

// Messages returns raw rows from the message table. The column set is not
// fixed, so rows come back as maps keyed by column name.
func (r *PostgresChatRepo) Messages(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx, "SELECT * FROM bot.whatsapp LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var messages []domain.ChatMessage
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read message row: %w", err)
		}
		m := make(domain.ChatMessage, len(fields))
		for i, f := range fields {
			m[f.Name] = values[i]
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return messages, nil
}

func (r *PostgresChatRepo) HistoryBySession(ctx context.Context, sessionID string, limit int) ([]domain.ChatHistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, message FROM public.n8n_chat_histories
		 WHERE session_id = $1 ORDER BY id ASC LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	defer rows.Close()

	var entries []domain.ChatHistoryEntry
	for rows.Next() {
		var entry domain.ChatHistoryEntry
		var raw any
		if err := rows.Scan(&entry.ID, &entry.SessionID, &raw); err != nil {
			return nil, fmt.Errorf("scan chat history row: %w", err)
		}
		entry.Message = decodeMessage(raw)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	return entries, nil
}

// Sessions lists chat sessions by their latest row, newest first, with a
// per-session message count.
func (r *PostgresChatRepo) Sessions(ctx context.Context, limit int) ([]domain.ChatSession, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.session_id, t.id AS last_id, t.message, c.cnt
		 FROM public.n8n_chat_histories t
		 JOIN (
		   SELECT session_id, MAX(id) AS max_id, COUNT(*) AS cnt
		   FROM public.n8n_chat_histories GROUP BY session_id
		 ) c ON c.session_id = t.session_id AND c.max_id = t.id
		 ORDER BY t.id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ChatSession
	for rows.Next() {
		var s domain.ChatSession
		var raw any
		if err := rows.Scan(&s.SessionID, &s.LastID, &raw, &s.Count); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		s.LastMessage = decodeMessage(raw)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// decodeMessage unwraps stored message payloads: JSON strings become their
// decoded value, anything else passes through untouched.
func decodeMessage(raw any) any {
	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return raw
	}
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return text
	}
	return decoded
}

// sanitizeTimeColumn restricts dynamic column interpolation to the known
// candidates.
func sanitizeTimeColumn(col string) string {
	if col == timeColFallback {
		return pgx.Identifier{timeColFallback}.Sanitize()
	}
	return pgx.Identifier{timeColDefault}.Sanitize()
}
