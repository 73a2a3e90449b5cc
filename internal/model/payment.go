package model

type Transaction struct {
	ID            string  `json:"id,omitempty"`
	Type          string  `json:"type,omitempty"`
	Amount        float64 `json:"amount"`
	BalanceBefore float64 `json:"balance_before"`
	BalanceAfter  float64 `json:"balance_after"`
	Description   string  `json:"description,omitempty"`
	ReferenceID   string  `json:"reference_id,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

type Deposit struct {
	ID             string  `json:"id,omitempty"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method,omitempty"`
	TransactionRef string  `json:"transaction_ref,omitempty"`
	Status         string  `json:"status,omitempty"`
	AdminNote      string  `json:"admin_note,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

type Withdrawal struct {
	ID            string  `json:"id,omitempty"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	AccountNumber string  `json:"account_number,omitempty"`
	Status        string  `json:"status,omitempty"`
	AdminNote     string  `json:"admin_note,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

type PaymentSetting struct {
	PaymentMethod string  `json:"payment_method"`
	AccountNumber string  `json:"account_number,omitempty"`
	AccountName   string  `json:"account_name,omitempty"`
	MinDeposit    float64 `json:"min_deposit"`
	MinWithdrawal float64 `json:"min_withdrawal"`
}

type CreateDepositRequest struct {
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	TransactionRef string  `json:"transaction_ref"`
}

type CreateDepositResponse struct {
	ID string `json:"id"`
}

type ReviewDepositRequest struct {
	DepositID string `json:"deposit_id"`
	Approve   bool   `json:"approve"`
	Note      string `json:"note"`
}

type ReviewDepositResponse struct{}

type RequestWithdrawalRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	AccountNumber string  `json:"account_number"`
}

type RequestWithdrawalResponse struct {
	ID      string  `json:"id"`
	NewCash float64 `json:"new_cash"`
}

type ProcessWithdrawalRequest struct {
	WithdrawalID string `json:"withdrawal_id"`
	Approve      bool   `json:"approve"`
	Note         string `json:"note"`
}

type ProcessWithdrawalResponse struct{}

type GetMyDepositsRequest struct{}

type GetMyDepositsResponse struct {
	Deposits []Deposit `json:"deposits"`
}

type GetMyWithdrawalsRequest struct{}

type GetMyWithdrawalsResponse struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
}

type GetPendingDepositsRequest struct{}

type GetPendingDepositsResponse struct {
	Deposits []Deposit `json:"deposits"`
}

type GetPendingWithdrawalsRequest struct{}

type GetPendingWithdrawalsResponse struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
}

type GetTransactionsRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type GetPaymentSettingsRequest struct{}

type GetPaymentSettingsResponse struct {
	Settings []PaymentSetting `json:"settings"`
}

type UpsertPaymentSettingRequest struct {
	PaymentMethod string  `json:"payment_method"`
	AccountNumber string  `json:"account_number"`
	AccountName   string  `json:"account_name"`
	MinDeposit    float64 `json:"min_deposit"`
	MinWithdrawal float64 `json:"min_withdrawal"`
	IsActive      bool    `json:"is_active"`
}

type UpsertPaymentSettingResponse struct{}
