package dto

import "github.com/GregMSThompson/finan-bff/internal/models"

type RawGoal struct {
	MongoID   string    `json:"_id,omitempty"`
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Target    FlexFloat `json:"target"`
	Current   FlexFloat `json:"current"`
	Deadline  string    `json:"deadline,omitempty"`
	Priority  string    `json:"priority,omitempty"`
	Completed bool      `json:"completed"`
}

type GoalRequest struct {
	Title    string  `json:"title"`
	Target   float64 `json:"target"`
	Current  float64 `json:"current"`
	Deadline string  `json:"deadline"`
	Priority string  `json:"priority"`
}

type AddMoneyRequest struct {
	Amount float64 `json:"amount"`
}

type GoalView struct {
	models.Goal
	Percent     float64          `json:"percent"`
	State       models.GoalState `json:"state"`
	CanComplete bool             `json:"canComplete"`
}
