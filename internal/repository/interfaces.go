package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
)

// ErrNotFound signals that the requested record does not exist.
var ErrNotFound = errors.New("not found")

// UserRepository resolves identity records. Implementations are read-only.
type UserRepository interface {
	// FindByCorreo looks a user up by email, case-insensitively. Returns
	// ErrNotFound when no candidate table yields a match.
	FindByCorreo(ctx context.Context, correo string) (domain.User, error)
}

// ClientRepository accesses public.clientes.
type ClientRepository interface {
	List(ctx context.Context, skip, limit int) ([]domain.Client, error)
	GetByID(ctx context.Context, id int64) (domain.Client, error)
	Create(ctx context.Context, nc domain.NewClient) (domain.Client, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountRegisteredToday(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]domain.RecentClient, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
}

// PaymentRepository aggregates public.pagos.
type PaymentRepository interface {
	// SumSince totals payment amounts over the trailing number of days.
	SumSince(ctx context.Context, days int) (float64, error)
}

// OfferRepository aggregates public.ofertas.
type OfferRepository interface {
	CountOpen(ctx context.Context) (int64, error)
}

// ChatRepository accesses the bot message table and the n8n chat history.
type ChatRepository interface {
	// ResolveTimeColumn probes the message table for its timestamp column
	// name, which varies across deployments. Never fails; defaults to the
	// first known candidate.
	ResolveTimeColumn(ctx context.Context) string

	MessagesByDay(ctx context.Context, timeCol string, days int) ([]domain.DayCount, error)
	MessagesByMonthRange(ctx context.Context, timeCol string, start, end time.Time) ([]domain.MonthCount, error)
	MessagesByTrailingMonths(ctx context.Context, timeCol string) ([]domain.MonthCount, error)
	RecentMessageTexts(ctx context.Context, timeCol string, limit int) ([]string, error)
	CountMessages(ctx context.Context) (int64, error)
	CountChatHistories(ctx context.Context) (int64, error)

	Messages(ctx context.Context, limit int) ([]domain.ChatMessage, error)
	HistoryBySession(ctx context.Context, sessionID string, limit int) ([]domain.ChatHistoryEntry, error)
	Sessions(ctx context.Context, limit int) ([]domain.ChatSession, error)
}
