package models

type CardType string

const (
	CardCredit     CardType = "credit-card"
	CardSaving     CardType = "saving-account"
	CardPersonal   CardType = "personal-account"
	CardInvestment CardType = "investment-card"
	CardMinePlus   CardType = "mine-plus"
)

func (t CardType) Valid() bool {
	switch t {
	case CardCredit, CardSaving, CardPersonal, CardInvestment, CardMinePlus:
		return true
	}
	return false
}

// Card is an account owned by the Finance API. This service only reads it
// and forwards lifecycle calls.
type Card struct {
	ID               string   `json:"id"`
	AccountName      string   `json:"accountName"`
	Icon             string   `json:"icon,omitempty"`
	AvailableBalance float64  `json:"availableBalance"`
	InitialBalance   float64  `json:"initialBalance"`
	TargetBalance    float64  `json:"targetBalance"`
	CardType         CardType `json:"cardType"`
	Currency         string   `json:"currency"`
}
