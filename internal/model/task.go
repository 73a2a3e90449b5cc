package model

type TaskStep struct {
	ID            string  `json:"id,omitempty"`
	Position      int     `json:"position"`
	Title         string  `json:"title,omitempty"`
	RewardCredits float64 `json:"reward_credits"`
	IsClaimed     bool    `json:"is_claimed"`
}

type Task struct {
	ID            string     `json:"id,omitempty"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	TaskURL       string     `json:"task_url,omitempty"`
	RewardCredits float64    `json:"reward_credits"`
	ResetType     string     `json:"reset_type,omitempty"`
	MaxClaims     int        `json:"max_claims"`
	CooldownHours int        `json:"cooldown_hours"`
	IsActive      bool       `json:"is_active"`
	IsClaimed     bool       `json:"is_claimed"`
	ClaimsToday   int        `json:"claims_today"`
	LastClaimedAt string     `json:"last_claimed_at,omitempty"`
	Steps         []TaskStep `json:"steps,omitempty"`
}

type GetTasksRequest struct{}

type GetTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type ClaimTaskRequest struct {
	TaskID string `json:"task_id"`
}

type ClaimTaskResponse struct {
	CreditsEarned float64 `json:"credits_earned"`
	NewBalance    float64 `json:"new_balance"`
}

type ClaimTaskStepRequest struct {
	TaskStepID string `json:"task_step_id"`
}

type ClaimTaskStepResponse struct {
	CreditsEarned float64 `json:"credits_earned"`
	NewBalance    float64 `json:"new_balance"`
}

type CreateTaskRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	TaskURL       string  `json:"task_url"`
	RewardCredits float64 `json:"reward_credits"`
	ResetType     string  `json:"reset_type"`
	MaxClaims     int     `json:"max_claims"`
	CooldownHours int     `json:"cooldown_hours"`

	Steps []TaskStep `json:"steps"`
}

type CreateTaskResponse struct {
	ID string `json:"id"`
}

type UpdateTaskRequest struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	TaskURL       string  `json:"task_url"`
	RewardCredits float64 `json:"reward_credits"`
	ResetType     string  `json:"reset_type"`
	MaxClaims     int     `json:"max_claims"`
	CooldownHours int     `json:"cooldown_hours"`
	IsActive      bool    `json:"is_active"`
}

type UpdateTaskResponse struct{}
