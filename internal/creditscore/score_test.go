package creditscore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate("ABCDE1234F", 60000)
	second := Generate("ABCDE1234F", 60000)
	assert.Equal(t, first, second)
}

func TestGenerate_Bounds(t *testing.T) {
	tokens := []string{
		"AAAAA0000A",
		"ZZZZZ9999Z",
		"ABCDE1234F",
		"PQRST5678K",
		"",
	}
	incomes := []float64{0, 25000, 49999, 50000, 250000, 1000000, 10000000}

	for _, token := range tokens {
		for _, income := range incomes {
			score := Generate(token, income)
			assert.GreaterOrEqual(t, score, 600, "token=%q income=%v", token, income)
			assert.LessOrEqual(t, score, 850, "token=%q income=%v", token, income)
		}
	}
}

func TestGenerate_IncomeBonus(t *testing.T) {
	token := "ABCDE1234F"
	base := Generate(token, 0)

	// Bonus steps in 25-point increments per 50k of income, capped at 150.
	assert.Equal(t, base, Generate(token, 49999))
	assert.Equal(t, clampTo850(base+25), Generate(token, 50000))
	assert.Equal(t, clampTo850(base+150), Generate(token, 300000))
	assert.Equal(t, clampTo850(base+150), Generate(token, 5000000))
}

func clampTo850(v int) int {
	if v > 850 {
		return 850
	}
	return v
}

func TestGenerate_TokensMayDiffer(t *testing.T) {
	// Two distinct tokens with different byte sums produce different base
	// scores for the same income. Determinism, not collision freedom.
	a := Generate("AAAAA0000A", 30000)
	b := Generate("AAAAB0000A", 30000)
	assert.NotEqual(t, a, b)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{850, "Excellent"},
		{750, "Excellent"},
		{749, "Good"},
		{700, "Good"},
		{699, "Fair"},
		{650, "Fair"},
		{649, "Average"},
		{600, "Average"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score=%d", tt.score)
	}
}

func TestMockBureau_Score(t *testing.T) {
	bureau := NewMockBureau()
	score, err := bureau.Score(context.Background(), "ABCDE1234F", 60000)
	require.NoError(t, err)
	assert.Equal(t, Generate("ABCDE1234F", 60000), score)
}
