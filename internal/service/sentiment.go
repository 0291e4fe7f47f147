package service

import (
	"math"
	"strings"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
)

// Sentiment bucket names as the frontend charts expect them.
const (
	sentimentPositive = "Positivo"
	sentimentNegative = "Negativo"
	sentimentNeutral  = "Neutral"
)

// Keyword sets driving message sentiment classification. Matching is a
// case-insensitive substring test; positive is checked before negative, so a
// message containing both counts as positive.
var (
	positiveKeywords = []string{"gracias", "excelente", "bien", "perfecto", "genial", "feliz", "bueno", "ok", "okey"}
	negativeKeywords = []string{"malo", "problema", "error", "no funciona", "mal", "falla", "reclamo", "insatisfecho"}
)

// Client status keywords used when message sentiment comes back empty and the
// breakdown falls back to client states.
var (
	negativeStatuses = []string{"cerrado", "perdido", "rechazado", "cancelado"}
	positiveStatuses = []string{"activo", "abierto", "abierta", "contactado", "prospecto", "interesado"}
)

// Client status bucket names.
const (
	statusNew        = "Nuevo"
	statusInProgress = "En gestión"
	statusClient     = "Cliente"
	statusOther      = "Otros"
)

// classifySentiment sorts one message text into a sentiment bucket.
func classifySentiment(text string) string {
	lowered := strings.ToLower(text)
	if containsAny(lowered, positiveKeywords) {
		return sentimentPositive
	}
	if containsAny(lowered, negativeKeywords) {
		return sentimentNegative
	}
	return sentimentNeutral
}

// sentimentFromMessages classifies each message and reports the buckets as
// percentages of the total.
func sentimentFromMessages(messages []string) []domain.NamedPercent {
	counts := map[string]int64{}
	for _, m := range messages {
		counts[classifySentiment(m)]++
	}
	return sentimentPercentages(counts)
}

// sentimentFromStatuses maps client status counts onto the sentiment buckets
// via status keywords.
func sentimentFromStatuses(statusCounts map[string]int64) []domain.NamedPercent {
	counts := map[string]int64{}
	for estado, n := range statusCounts {
		lowered := strings.ToLower(estado)
		switch {
		case containsAny(lowered, negativeStatuses):
			counts[sentimentNegative] += n
		case containsAny(lowered, positiveStatuses):
			counts[sentimentPositive] += n
		default:
			counts[sentimentNeutral] += n
		}
	}
	return sentimentPercentages(counts)
}

func sentimentPercentages(counts map[string]int64) []domain.NamedPercent {
	total := counts[sentimentPositive] + counts[sentimentNegative] + counts[sentimentNeutral]
	return []domain.NamedPercent{
		{Name: sentimentPositive, Value: percentage(counts[sentimentPositive], total)},
		{Name: sentimentNegative, Value: percentage(counts[sentimentNegative], total)},
		{Name: sentimentNeutral, Value: percentage(counts[sentimentNeutral], total)},
	}
}

// statusBuckets sorts client status counts into the four fixed buckets and
// reports both the raw counts and the percentage breakdown.
func statusBuckets(statusCounts map[string]int64) ([]domain.NamedPercent, map[string]int64) {
	buckets := map[string]int64{
		statusNew:        0,
		statusInProgress: 0,
		statusClient:     0,
		statusOther:      0,
	}
	for estado, n := range statusCounts {
		lowered := strings.ToLower(strings.TrimSpace(estado))
		switch {
		case strings.Contains(lowered, "nuevo"):
			buckets[statusNew] += n
		case strings.Contains(lowered, "gest"):
			buckets[statusInProgress] += n
		case strings.Contains(lowered, "cliente"):
			buckets[statusClient] += n
		default:
			buckets[statusOther] += n
		}
	}

	total := buckets[statusNew] + buckets[statusInProgress] + buckets[statusClient] + buckets[statusOther]
	breakdown := []domain.NamedPercent{
		{Name: statusNew, Value: percentage(buckets[statusNew], total)},
		{Name: statusInProgress, Value: percentage(buckets[statusInProgress], total)},
		{Name: statusClient, Value: percentage(buckets[statusClient], total)},
		{Name: statusOther, Value: percentage(buckets[statusOther], total)},
	}
	return breakdown, buckets
}

// percentage reports n as a share of total, rounded to one decimal. The
// total is floored at one to avoid dividing by zero.
func percentage(n, total int64) float64 {
	if total < 1 {
		total = 1
	}
	return math.Round(float64(n)*1000/float64(total)) / 10
}

func sumValues(breakdown []domain.NamedPercent) float64 {
	var sum float64
	for _, b := range breakdown {
		sum += b.Value
	}
	return sum
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
