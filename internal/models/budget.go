package models

type Budget struct {
	Category string  `json:"category"`
	Ceiling  float64 `json:"ceiling"`
}
