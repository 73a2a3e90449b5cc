package model

type LeaderboardEntry struct {
	UserID      string  `json:"user_id"`
	Username    string  `json:"username,omitempty"`
	TotalEarned float64 `json:"total_earned"`
	Rank        int64   `json:"rank"`
}

type GetLeaderboardRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type GetMyRankRequest struct{}

type GetMyRankResponse struct {
	Rank        int64   `json:"rank"`
	TotalEarned float64 `json:"total_earned"`
}
