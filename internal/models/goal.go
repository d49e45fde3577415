package models

import "time"

type GoalPriority string

const (
	PriorityHigh   GoalPriority = "high"
	PriorityMedium GoalPriority = "medium"
	PriorityLow    GoalPriority = "low"
)

type GoalState string

const (
	GoalActive       GoalState = "active"
	GoalNearComplete GoalState = "near-complete"
	GoalCompleted    GoalState = "completed"
)

type Goal struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Target    float64      `json:"target"`
	Current   float64      `json:"current"`
	Deadline  time.Time    `json:"deadline"`
	Priority  GoalPriority `json:"priority"`
	Completed bool         `json:"completed"`
}
