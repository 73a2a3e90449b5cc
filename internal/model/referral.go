package model

type Referral struct {
	ReferredUsername     string  `json:"referred_username,omitempty"`
	BonusCredited        bool    `json:"bonus_credited"`
	DepositBonusCredited bool    `json:"deposit_bonus_credited"`
	TotalCommission      float64 `json:"total_commission"`
	CreatedAt            string  `json:"created_at,omitempty"`
}

type GetMyReferralsRequest struct{}

type GetMyReferralsResponse struct {
	ReferralCode    string     `json:"referral_code"`
	Referrals       []Referral `json:"referrals"`
	TotalCommission float64    `json:"total_commission"`
}
