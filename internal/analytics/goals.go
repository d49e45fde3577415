package analytics

import (
	"math"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

const nearCompleteRatio = 0.8

func clampPercent(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(0, math.Min(p, 100))
}

// GoalPercent is current/target as a bar width in [0,100].
func GoalPercent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return clampPercent(current / target * 100)
}

// CardProgress measures a card against its target balance. A card below
// zero with a zero target is a debt being paid down, measured against the
// starting debt; everything else interpolates from initial to target.
func CardProgress(c models.Card) dto.Progress {
	if c.AvailableBalance < 0 && c.TargetBalance == 0 {
		initial := math.Abs(c.InitialBalance)
		paid := initial - math.Abs(c.AvailableBalance)
		p := dto.Progress{DebtPayoff: true, PaidAmount: paid}
		if initial > 0 {
			p.RawPercent = paid / initial * 100
		}
		p.Percent = clampPercent(p.RawPercent)
		return p
	}

	var p dto.Progress
	if span := c.TargetBalance - c.InitialBalance; span != 0 {
		p.RawPercent = (c.AvailableBalance - c.InitialBalance) / span * 100
	}
	p.Percent = clampPercent(p.RawPercent)
	return p
}

func GoalStateOf(g models.Goal) models.GoalState {
	switch {
	case g.Completed:
		return models.GoalCompleted
	case g.Target > 0 && g.Current/g.Target > nearCompleteRatio:
		return models.GoalNearComplete
	}
	return models.GoalActive
}

// CanComplete gates the explicit complete action.
func CanComplete(g models.Goal) bool {
	return !g.Completed && g.Target > 0 && g.Current >= g.Target
}

func GoalViewOf(g models.Goal) dto.GoalView {
	return dto.GoalView{
		Goal:        g,
		Percent:     GoalPercent(g.Current, g.Target),
		State:       GoalStateOf(g),
		CanComplete: CanComplete(g),
	}
}
