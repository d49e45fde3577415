package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexFloat accepts a JSON number, a numeric string or null.
// Anything unparseable decodes to 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// RawCardRef is the card a transaction belongs to. Unpopulated references
// arrive as a bare id string.
type RawCardRef struct {
	ID          string `json:"_id,omitempty"`
	AccountName string `json:"accountName,omitempty"`
}

func (c *RawCardRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*c = RawCardRef{}
	case b[0] == '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			*c = RawCardRef{}
			return nil
		}
		*c = RawCardRef{ID: id}
	case b[0] == '{':
		type plain RawCardRef
		var v plain
		_ = json.Unmarshal(b, &v)
		*c = RawCardRef(v)
	default:
		*c = RawCardRef{}
	}
	return nil
}

// RawTransaction is a transaction as the Finance API (or a fixture) sends it.
// Field names differ between server versions, so every candidate is kept.
type RawTransaction struct {
	MongoID     string      `json:"_id,omitempty"`
	ID          string      `json:"id,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Remark      string      `json:"remark,omitempty"`
	Category    string      `json:"category,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	Date        string      `json:"date,omitempty"`
	Amount      FlexFloat   `json:"amount"`
	Type        string      `json:"type,omitempty"`
	Status      string      `json:"status,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	CardID      string      `json:"cardId,omitempty"`
	Card        *RawCardRef `json:"card,omitempty"`
}

// CreateTransactionRequest is the body of POST /cards/{id}/transaction.
type CreateTransactionRequest struct {
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Remark   string  `json:"remark"`
}

// Filter values; "" and FilterAll disable a predicate.
const (
	FilterAll = "all"

	RangeWeek    = "week"
	RangeMonth   = "month"
	RangeQuarter = "quarter"
	RangeYear    = "year"
)

type TransactionFilter struct {
	Type       string
	Category   string
	Status     string
	DateRange  string
	SearchTerm string
}

type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByAmount   SortKey = "amount"
	SortByCategory SortKey = "category"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type SortSpec struct {
	Key   SortKey
	Order SortOrder
}

type HistoryQuery struct {
	Filter   TransactionFilter
	Sort     SortSpec
	Page     int
	PageSize int
}
