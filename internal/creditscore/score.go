// Package creditscore implements the deterministic mock credit bureau used
// for the soft-check UX. The same identity token and income always map to the
// same score, so a user refreshing the page never sees their number change.
package creditscore

import "context"

const (
	baseFloor = 600
	scoreCap  = 850
)

// Generate maps an identity token (PAN) and monthly income to a pseudo credit
// score in [600, 850]. No randomness, no clock.
func Generate(identityToken string, monthlyIncome float64) int {
	sum := 0
	for _, b := range []byte(identityToken) {
		sum += int(b)
	}

	baseScore := baseFloor + (sum % 200)

	incomeBonus := int(monthlyIncome/50000) * 25
	if incomeBonus > 150 {
		incomeBonus = 150
	}

	score := baseScore + incomeBonus
	if score > scoreCap {
		score = scoreCap
	}
	return score
}

// Grade bands a score for display. Canonical mapping: the 600-649 band reads
// "Average".
func Grade(score int) string {
	switch {
	case score >= 750:
		return "Excellent"
	case score >= 700:
		return "Good"
	case score >= 650:
		return "Fair"
	default:
		return "Average"
	}
}

// Bureau is the collaborator seam for a real credit bureau integration. The
// lead state machine only talks to this interface.
type Bureau interface {
	Score(ctx context.Context, identityToken string, monthlyIncome float64) (int, error)
}

// MockBureau scores locally via Generate. It is the only implementation in
// this deployment; a production integration substitutes its own.
type MockBureau struct{}

func NewMockBureau() *MockBureau {
	return &MockBureau{}
}

func (b *MockBureau) Score(_ context.Context, identityToken string, monthlyIncome float64) (int, error) {
	return Generate(identityToken, monthlyIncome), nil
}
