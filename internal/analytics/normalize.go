// Package analytics holds the pure view-model computations: normalisation
// of Finance API records, filtering and sorting, day buckets, category and
// budget aggregation, and goal progress. Nothing here performs I/O or keeps
// state; every function takes the reference instant explicitly.
package analytics

import (
	"math"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

const (
	DefaultTitle    = "Transaction"
	DefaultCategory = "Other"
	DateLayout      = "2006-01-02"

	derivedTitleLen = 40
)

// Normalize maps raw records onto the canonical transaction shape. It never
// fails: unresolvable fields take their defaults.
func Normalize(raw []dto.RawTransaction, now time.Time) []models.Transaction {
	out := make([]models.Transaction, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeOne(r, now))
	}
	return out
}

func NormalizeOne(r dto.RawTransaction, now time.Time) models.Transaction {
	tx := models.Transaction{
		ID:          firstNonEmpty(r.MongoID, r.ID),
		Title:       strings.TrimSpace(r.Title),
		Category:    strings.TrimSpace(r.Category),
		Date:        resolveDate(now, r.CreatedAt, r.Date),
		Amount:      math.Abs(float64(r.Amount)),
		Type:        normalizeType(r.Type),
		Status:      normalizeStatus(r.Status),
		Description: firstNonEmpty(r.Remark, r.Description),
		Tags:        slices.Clone(r.Tags),
		CardID:      r.CardID,
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		tx.Amount = 0
	}
	if tx.Title == "" {
		tx.Title = truncateRunes(strings.TrimSpace(firstNonEmpty(r.Description, r.Remark)), derivedTitleLen)
	}
	if tx.Title == "" {
		tx.Title = DefaultTitle
	}
	if tx.Category == "" {
		tx.Category = DefaultCategory
	}
	if r.Card != nil {
		tx.CardName = r.Card.AccountName
		if tx.CardID == "" {
			tx.CardID = r.Card.ID
		}
	}
	return tx
}

func normalizeType(s string) models.TransactionType {
	switch models.TransactionType(s) {
	case models.TypeIncome:
		return models.TypeIncome
	case models.TypeReward:
		return models.TypeReward
	}
	return models.TypeExpense
}

func normalizeStatus(s string) models.TransactionStatus {
	switch st := models.TransactionStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case models.StatusCompleted, models.StatusPending, models.StatusFailed, models.StatusCancelled:
		return st
	}
	return models.StatusCompleted
}

// resolveDate returns the first candidate that parses, else now.
func resolveDate(now time.Time, candidates ...string) time.Time {
	for _, c := range candidates {
		if t, ok := ParseDate(c, now.Location()); ok {
			return t
		}
	}
	return now
}

// localLayouts carry no zone and are read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD days. Values
// without a zone are read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func NormalizeCards(raw []dto.RawCard) []models.Card {
	out := make([]models.Card, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeCard(r))
	}
	return out
}

func NormalizeCard(r dto.RawCard) models.Card {
	return models.Card{
		ID:               firstNonEmpty(r.MongoID, r.ID),
		AccountName:      r.AccountName,
		Icon:             r.Icon,
		AvailableBalance: float64(r.AvailableBalance),
		InitialBalance:   float64(r.InitialBalance),
		TargetBalance:    float64(r.TargetBalance),
		CardType:         models.CardType(r.CardType),
		Currency:         r.Currency,
	}
}

func NormalizeGoals(raw []dto.RawGoal, now time.Time) []models.Goal {
	out := make([]models.Goal, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeGoal(r, now))
	}
	return out
}

func NormalizeGoal(r dto.RawGoal, now time.Time) models.Goal {
	g := models.Goal{
		ID:        firstNonEmpty(r.MongoID, r.ID),
		Title:     r.Title,
		Target:    float64(r.Target),
		Current:   math.Max(float64(r.Current), 0),
		Priority:  models.GoalPriority(r.Priority),
		Completed: r.Completed,
	}
	if d, ok := ParseDate(r.Deadline, now.Location()); ok {
		g.Deadline = d
	}
	switch g.Priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	default:
		g.Priority = models.PriorityMedium
	}
	return g
}

// NormalizeTasks maps remote tasks and orders them by their order field.
func NormalizeTasks(raw []dto.RawTask) []models.Task {
	out := make([]models.Task, 0, len(raw))
	for _, r := range raw {
		out = append(out, models.Task{
			ID:        firstNonEmpty(r.MongoID, r.ID),
			Name:      r.Name,
			Incentive: r.Incentive,
			Order:     r.Order,
		})
	}
	slices.SortStableFunc(out, func(a, b models.Task) int { return a.Order - b.Order })
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
