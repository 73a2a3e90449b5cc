package model

type Spin struct {
	SpinDate   string  `json:"spin_date"`
	CreditsWon float64 `json:"credits_won"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

type SpinRequest struct{}

type SpinResponse struct {
	CreditsWon float64 `json:"credits_won"`
	NewBalance float64 `json:"new_balance"`
}

type GetSpinHistoryRequest struct {
	Limit int `json:"limit" form:"limit"`
}

type GetSpinHistoryResponse struct {
	History []Spin `json:"history"`
}
