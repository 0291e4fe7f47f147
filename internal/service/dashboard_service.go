package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
	"github.com/Zuckmantra/dashboard-Camila/internal/repository"
)

const (
	defaultSeriesDays    = 7
	sentimentSampleSize  = 1000
	paymentWindowDays    = 30
	sentimentEmptyThresh = 0.1
)

// DashboardService assembles the dashboard summaries. Every sub-query is an
// independent fallible computation: a failure degrades that metric to a
// zero/empty value and the response is always complete.
type DashboardService struct {
	clients  repository.ClientRepository
	payments repository.PaymentRepository
	offers   repository.OfferRepository
	chats    repository.ChatRepository
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewDashboardService wires dependencies.
func NewDashboardService(clients repository.ClientRepository, payments repository.PaymentRepository, offers repository.OfferRepository, chats repository.ChatRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.L()
	}
	return &DashboardService{
		clients:  clients,
		payments: payments,
		offers:   offers,
		chats:    chats,
		logger:   logger,
		tracer:   otel.Tracer("github.com/Zuckmantra/dashboard-Camila/internal/service"),
	}
}

// Stats returns the client totals plus the most recently registered clients.
func (s *DashboardService) Stats(ctx context.Context, limit int) domain.StatsSummary {
	ctx, span := s.tracer.Start(ctx, "DashboardService.Stats")
	defer span.End()

	summary := domain.StatsSummary{RecentClients: []domain.RecentClient{}}
	summary.TotalClients = s.countMetric(ctx, "total_clients", s.clients.Count)

	recent, err := s.clients.Recent(ctx, limit)
	if err != nil {
		s.degrade("recent_clients", err)
	} else if recent != nil {
		summary.RecentClients = recent
	}
	return summary
}

// Charts computes the chart-ready aggregation. period selects day buckets
// over the trailing days window or month buckets, either a specific
// (month, year) or the trailing twelve months.
func (s *DashboardService) Charts(ctx context.Context, period string, days, month, year int) domain.ChartSummary {
	ctx, span := s.tracer.Start(ctx, "DashboardService.Charts")
	defer span.End()

	summary := domain.ChartSummary{
		ConversationsByDay:   []domain.DayCount{},
		ConversationsByMonth: []domain.MonthCount{},
	}

	summary.TotalClients = s.countMetric(ctx, "total_clients", s.clients.Count)
	summary.ActiveClients = s.countMetric(ctx, "active_clients", s.clients.CountActive)
	summary.NewToday = s.countMetric(ctx, "new_today", s.clients.CountRegisteredToday)

	ingresos, err := s.payments.SumSince(ctx, paymentWindowDays)
	if err != nil {
		s.degrade("ingresos_30d", err)
	} else {
		summary.Ingresos30d = ingresos
	}

	summary.OfertasAbiertas = s.countMetric(ctx, "ofertas_abiertas", s.offers.CountOpen)

	timeCol := s.chats.ResolveTimeColumn(ctx)

	if period == "day" {
		if days < 1 {
			days = defaultSeriesDays
		}
		series, err := s.chats.MessagesByDay(ctx, timeCol, days)
		if err != nil {
			s.degrade("conversations_by_day", err)
		} else if series != nil {
			summary.ConversationsByDay = series
		}
	} else {
		series, err := s.monthSeries(ctx, timeCol, month, year)
		if err != nil {
			s.degrade("conversations_by_month", err)
		} else if series != nil {
			summary.ConversationsByMonth = series
		}
	}

	statusCounts, statusErr := s.clients.StatusCounts(ctx)
	if statusErr != nil {
		s.degrade("status_counts", statusErr)
		statusCounts = map[string]int64{}
	}

	messages, err := s.chats.RecentMessageTexts(ctx, timeCol, sentimentSampleSize)
	if err != nil {
		s.degrade("sentiment_messages", err)
		messages = nil
	}
	summary.SentimentBreakdown = sentimentFromMessages(messages)
	if sumValues(summary.SentimentBreakdown) <= sentimentEmptyThresh {
		summary.SentimentBreakdown = sentimentFromStatuses(statusCounts)
	}

	summary.StatusBreakdown, summary.StatusCounts = statusBuckets(statusCounts)

	summary.ConversationsTotal = s.conversationsTotal(ctx)

	return summary
}

func (s *DashboardService) monthSeries(ctx context.Context, timeCol string, month, year int) ([]domain.MonthCount, error) {
	if month >= 1 && month <= 12 && year > 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		return s.chats.MessagesByMonthRange(ctx, timeCol, start, end)
	}
	return s.chats.MessagesByTrailingMonths(ctx, timeCol)
}

// conversationsTotal prefers the chat-history row count and falls back to
// the message table.
func (s *DashboardService) conversationsTotal(ctx context.Context) int64 {
	if count, err := s.chats.CountChatHistories(ctx); err == nil {
		return count
	}
	count, err := s.chats.CountMessages(ctx)
	if err != nil {
		s.degrade("conversations_total", err)
		return 0
	}
	return count
}

func (s *DashboardService) countMetric(ctx context.Context, name string, fn func(context.Context) (int64, error)) int64 {
	count, err := fn(ctx)
	if err != nil {
		s.degrade(name, err)
		return 0
	}
	return count
}

// degrade records a failed sub-query. The metric is replaced by its zero
// value and never fails the overall response.
func (s *DashboardService) degrade(metric string, err error) {
	s.logger.Warn("dashboard metric degraded", zap.String("metric", metric), zap.Error(err))
}
