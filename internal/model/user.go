package model

type User struct {
	ID           string `json:"id,omitempty"`
	Email        string `json:"email,omitempty"`
	Username     string `json:"username,omitempty"`
	ReferralCode string `json:"referral_code,omitempty"`
	ReferredBy   string `json:"referred_by,omitempty"`
	IsBanned     bool   `json:"is_banned,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type Wallet struct {
	Credits     float64 `json:"credits"`
	Cash        float64 `json:"cash"`
	TotalEarned float64 `json:"total_earned"`
}

type Streak struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastLoginDate string `json:"last_login_date,omitempty"`
}

type SyncProfileRequest struct {
	ExternalUID  string `json:"external_uid"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	ReferralCode string `json:"referral_code"`
}

type SyncProfileResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`

	// CreditsAwarded collects the welcome, streak, and referral credits
	// granted by this sync.
	CreditsAwarded float64 `json:"credits_awarded"`
	Streak         Streak  `json:"streak"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User   User     `json:"user"`
	Wallet Wallet   `json:"wallet"`
	Roles  []string `json:"roles"`
	Streak Streak   `json:"streak"`
}

type AssignGlobalRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type AssignGlobalRoleResponse struct{}

type RevokeGlobalRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type RevokeGlobalRoleResponse struct{}

type BanUserRequest struct {
	UserID string `json:"user_id"`
	Banned bool   `json:"banned"`
}

type BanUserResponse struct{}
