package domain

// DayCount is one day bucket of the conversation time series.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// MonthCount is one month bucket of the conversation time series.
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// NamedPercent is a chart slice: bucket name plus percentage of total.
type NamedPercent struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StatsSummary is the /api/dashboard/stats payload.
type StatsSummary struct {
	TotalClients  int64          `json:"total_clients"`
	RecentClients []RecentClient `json:"recent_clients"`
}

// ChartSummary is the /api/dashboard/charts payload. Field names are the
// contract consumed by the existing frontend charts.
type ChartSummary struct {
	TotalClients         int64            `json:"total_clients"`
	ActiveClients        int64            `json:"active_clients"`
	NewToday             int64            `json:"new_today"`
	Ingresos30d          float64          `json:"ingresos_30d"`
	OfertasAbiertas      int64            `json:"ofertas_abiertas"`
	ConversationsTotal   int64            `json:"conversations_total"`
	ConversationsByDay   []DayCount       `json:"conversations_by_day"`
	ConversationsByMonth []MonthCount     `json:"conversations_by_month"`
	SentimentBreakdown   []NamedPercent   `json:"sentiment_breakdown"`
	StatusBreakdown      []NamedPercent   `json:"status_breakdown"`
	StatusCounts         map[string]int64 `json:"status_counts"`
}
