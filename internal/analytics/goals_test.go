package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finan-bff/internal/models"
)

func TestGoalPercentClamped(t *testing.T) {
	cases := []struct {
		current, target, want float64
	}{
		{50, 100, 50},
		{150, 100, 100},
		{-10, 100, 0},
		{10, 0, 0},
	}
	for _, c := range cases {
		if got := GoalPercent(c.current, c.target); got != c.want {
			t.Errorf("GoalPercent(%v,%v) = %v, want %v", c.current, c.target, got, c.want)
		}
	}
}

func TestCardProgressDebtPayoff(t *testing.T) {
	p := CardProgress(models.Card{InitialBalance: -2000, AvailableBalance: -500, TargetBalance: 0})
	if !p.DebtPayoff || p.PaidAmount != 1500 || p.Percent != 75 {
		t.Fatalf("progress = %+v", p)
	}

	zeroInitial := CardProgress(models.Card{InitialBalance: 0, AvailableBalance: -500})
	if zeroInitial.Percent != 0 {
		t.Fatalf("zero initial = %+v", zeroInitial)
	}
}

func TestCardProgressLinear(t *testing.T) {
	cases := []struct {
		name string
		card models.Card
		want float64
		debt bool
	}{
		{"halfway", models.Card{InitialBalance: 1000, AvailableBalance: 1500, TargetBalance: 2000}, 50, false},
		{"overshoot", models.Card{InitialBalance: 0, AvailableBalance: 3000, TargetBalance: 2000}, 100, false},
		{"degenerate", models.Card{InitialBalance: 500, AvailableBalance: 700, TargetBalance: 500}, 0, false},
		{"negative with target", models.Card{InitialBalance: -1000, AvailableBalance: -500, TargetBalance: 1000}, 25, false},
		{"positive with zero target", models.Card{InitialBalance: 100, AvailableBalance: 50, TargetBalance: 0}, 50, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			p := CardProgress(c.card)
			if p.DebtPayoff != c.debt || p.Percent != c.want {
				t.Fatalf("progress = %+v, want %v", p, c.want)
			}
		})
	}
}

func TestGoalStateMachine(t *testing.T) {
	if s := GoalStateOf(models.Goal{Target: 100, Current: 80}); s != models.GoalActive {
		t.Fatalf("80%% = %s", s)
	}
	if s := GoalStateOf(models.Goal{Target: 100, Current: 81}); s != models.GoalNearComplete {
		t.Fatalf("81%% = %s", s)
	}
	if s := GoalStateOf(models.Goal{Target: 100, Current: 10, Completed: true}); s != models.GoalCompleted {
		t.Fatalf("completed = %s", s)
	}

	if CanComplete(models.Goal{Target: 100, Current: 99}) {
		t.Fatal("cannot complete below target")
	}
	if !CanComplete(models.Goal{Target: 100, Current: 100}) {
		t.Fatal("should complete at target")
	}
	if CanComplete(models.Goal{Target: 100, Current: 100, Completed: true}) {
		t.Fatal("already completed")
	}
}

func TestParseIncentive(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"$5", "5", true},
		{"RM 2.50 bonus", "2.5", true},
		{".75", "0.75", true},
		{"1.2.3", "1.2", true},
		{"ice cream", "0", false},
		{"", "0", false},
	}
	for _, c := range cases {
		got, ok := ParseIncentive(c.in)
		if ok != c.ok || !got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("ParseIncentive(%q) = %s,%v want %s,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestIncentiveTotal(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Incentive: "$0.10"},
		{ID: "b", Incentive: "$0.20"},
		{ID: "c", Incentive: "hug"},
		{ID: "d", Incentive: "$100"},
	}
	got := IncentiveTotal(tasks, map[string]bool{"a": true, "b": true, "c": true})
	if !got.Equal(decimal.RequireFromString("0.3")) {
		t.Fatalf("total = %s", got)
	}
}
