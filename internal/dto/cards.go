package dto

import "github.com/GregMSThompson/finan-bff/internal/models"

type RawCard struct {
	MongoID          string    `json:"_id,omitempty"`
	ID               string    `json:"id,omitempty"`
	AccountName      string    `json:"accountName"`
	Icon             string    `json:"icon,omitempty"`
	AvailableBalance FlexFloat `json:"availableBalance"`
	InitialBalance   FlexFloat `json:"initialBalance"`
	TargetBalance    FlexFloat `json:"targetBalance"`
	CardType         string    `json:"cardType"`
	Currency         string    `json:"currency,omitempty"`
}

// CardRequest is the create/update body forwarded to the Finance API.
type CardRequest struct {
	AccountName      string  `json:"accountName"`
	Icon             string  `json:"icon"`
	Currency         string  `json:"currency"`
	CardType         string  `json:"cardType"`
	InitialBalance   float64 `json:"initialBalance"`
	TargetBalance    float64 `json:"targetBalance"`
	AvailableBalance float64 `json:"availableBalance"`
}

type CardView struct {
	models.Card
	Progress Progress `json:"progress"`
	Theme    Theme    `json:"theme"`
}

// Theme is the presentation hint derived from a card type.
type Theme struct {
	CardType  models.CardType `json:"cardType"`
	Gradient  string          `json:"gradientClass"`
	TextColor string          `json:"textColorClass"`
}

type Selection struct {
	CardID string `json:"cardId,omitempty"`
	Theme  *Theme `json:"theme,omitempty"`
}

type SelectCardRequest struct {
	CardID string `json:"cardId"`
}

type DashboardSummary struct {
	Cards       []CardView   `json:"cards"`
	Weekly      WeeklyReport `json:"weekly"`
	GoalsTotal  int          `json:"goalsTotal"`
	GoalsNear   int          `json:"goalsNearComplete"`
	GoalsDone   int          `json:"goalsCompleted"`
	TotalAssets float64      `json:"totalBalance"`
}
