package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifySentiment(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"gracias, todo bien", "Positivo"},
		{"Excelente servicio!", "Positivo"},
		{"tengo un problema con mi pedido", "Negativo"},
		{"esto NO FUNCIONA", "Negativo"},
		{"hola", "Neutral"},
		{"", "Neutral"},
		// Positive wins when both keyword sets match.
		{"gracias pero hay un error", "Positivo"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, classifySentiment(tc.text), "text=%q", tc.text)
	}
}

func TestSentimentFromMessagesPercentages(t *testing.T) {
	breakdown := sentimentFromMessages([]string{
		"gracias",
		"todo perfecto",
		"hay una falla",
		"hola",
	})

	require.Len(t, breakdown, 3)
	require.Equal(t, "Positivo", breakdown[0].Name)
	require.Equal(t, 50.0, breakdown[0].Value)
	require.Equal(t, "Negativo", breakdown[1].Name)
	require.Equal(t, 25.0, breakdown[1].Value)
	require.Equal(t, "Neutral", breakdown[2].Name)
	require.Equal(t, 25.0, breakdown[2].Value)
}

func TestSentimentFromMessagesEmptyIsAllZero(t *testing.T) {
	breakdown := sentimentFromMessages(nil)
	require.InDelta(t, 0, sumValues(breakdown), 0.001)
}

func TestSentimentFromStatuses(t *testing.T) {
	breakdown := sentimentFromStatuses(map[string]int64{
		"Cliente activo":  2,
		"Cerrado perdido": 1,
		"Sin clasificar":  1,
		"Nuevo prospecto": 4,
	})

	// activo and prospecto are positive, cerrado is negative.
	require.Equal(t, 75.0, breakdown[0].Value)
	require.Equal(t, 12.5, breakdown[1].Value)
	require.Equal(t, 12.5, breakdown[2].Value)
}

func TestStatusBuckets(t *testing.T) {
	breakdown, counts := statusBuckets(map[string]int64{
		"Nuevo prospecto":      1,
		"En gestión comercial": 1,
		"Cliente activo":       1,
		"Desconocido":          1,
	})

	require.Equal(t, int64(1), counts["Nuevo"])
	require.Equal(t, int64(1), counts["En gestión"])
	require.Equal(t, int64(1), counts["Cliente"])
	require.Equal(t, int64(1), counts["Otros"])

	require.Len(t, breakdown, 4)
	for _, slice := range breakdown {
		require.Equal(t, 25.0, slice.Value)
	}
}

func TestPercentageRounding(t *testing.T) {
	require.Equal(t, 33.3, percentage(1, 3))
	require.Equal(t, 66.7, percentage(2, 3))
	require.Equal(t, 0.0, percentage(0, 0))
	// Zero total is floored at one, not a division by zero.
	require.Equal(t, 100.0, percentage(1, 1))
}
