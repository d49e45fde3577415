package dto

import "github.com/GregMSThompson/finan-bff/internal/models"

type DayBucket struct {
	Label   string  `json:"label"`
	Date    string  `json:"date"`
	Income  float64 `json:"inc"`
	Expense float64 `json:"exp"` // stored negative for diverging bar charts
}

type WeeklyReport struct {
	Buckets      []DayBucket `json:"buckets"`
	TotalIncome  float64     `json:"totalIncome"`
	TotalExpense float64     `json:"totalExpense"`
	Net          float64     `json:"net"`
}

type PeriodTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
	Count    int     `json:"count"`
}

type CategoryShare struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

type BudgetHealth string

const (
	BudgetGood    BudgetHealth = "good"
	BudgetWarning BudgetHealth = "warning"
	BudgetOver    BudgetHealth = "over"
)

type BudgetStatus struct {
	Category      string       `json:"category"`
	Ceiling       float64      `json:"budget"`
	Spent         float64      `json:"spent"`
	Percentage    float64      `json:"percentage"`
	RawPercentage float64      `json:"rawPercentage"`
	Status        BudgetHealth `json:"status"`
}

type InsightKind string

const (
	InsightWarning InsightKind = "warning"
	InsightError   InsightKind = "error"
	InsightSuccess InsightKind = "success"
	InsightInfo    InsightKind = "info"
)

type Insight struct {
	Type    InsightKind `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Action  string      `json:"action"`
}

type ReportResponse struct {
	Range            string             `json:"range"`
	Totals           PeriodTotals       `json:"totals"`
	Breakdown        map[string]float64 `json:"categoryBreakdown"`
	TopCategories    []CategoryShare    `json:"topCategories"`
	Budgets          []BudgetStatus     `json:"budgetPerformance"`
	Insights         []Insight          `json:"insights"`
	TransactionCount int                `json:"transactionCount"`
}

type HistoryPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Categories   []string             `json:"categories"`
	Summary      PeriodTotals         `json:"summary"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"pageSize"`
	TotalPages   int                  `json:"totalPages"`
	TotalItems   int                  `json:"totalItems"`
}

type CompletionPoint struct {
	Date  string `json:"iso"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type CompletionSeries struct {
	Points []CompletionPoint `json:"points"`
	Max    int               `json:"max"`
}

type Progress struct {
	Percent    float64 `json:"percent"`
	RawPercent float64 `json:"rawPercent"`
	PaidAmount float64 `json:"paidAmount,omitempty"`
	DebtPayoff bool    `json:"debtPayoff"`
}
