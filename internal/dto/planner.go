package dto

import "github.com/GregMSThompson/finan-bff/internal/models"

type RawTask struct {
	MongoID   string `json:"_id,omitempty"`
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Incentive string `json:"incentive,omitempty"`
	Order     int    `json:"order"`
}

type TaskRequest struct {
	Name      string `json:"name"`
	Incentive string `json:"incentive,omitempty"`
	Order     *int   `json:"order,omitempty"`
}

type MoveTaskRequest struct {
	Direction string `json:"direction"` // "up" or "down"
}

type TaskList struct {
	Tasks   []models.Task `json:"tasks"`
	Offline bool          `json:"offline"`
}

type ToggleRequest struct {
	Date   string `json:"date"`
	TaskID string `json:"taskId"`
}

type ClaimRequest struct {
	Date   string `json:"date"`
	CardID string `json:"cardId"`
}

type PlannerDay struct {
	Date           string          `json:"date"`
	Days           []string        `json:"days"`
	Tasks          []models.Task   `json:"tasks"`
	Completed      map[string]bool `json:"completed"`
	TotalIncentive float64         `json:"totalIncentive"`
	Claim          *models.Claim   `json:"claim,omitempty"`
	Claimed        bool            `json:"claimed"`
}
