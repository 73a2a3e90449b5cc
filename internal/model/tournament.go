package model

type Tournament struct {
	ID                  string  `json:"id,omitempty"`
	Title               string  `json:"title,omitempty"`
	GameType            string  `json:"game_type,omitempty"`
	EntryFee            float64 `json:"entry_fee"`
	EntryFeeType        string  `json:"entry_fee_type,omitempty"`
	PrizePool           float64 `json:"prize_pool"`
	MaxParticipants     int     `json:"max_participants"`
	CurrentParticipants int     `json:"current_participants"`
	Status              string  `json:"status,omitempty"`
	StartTime           string  `json:"start_time,omitempty"`
	IsJoined            bool    `json:"is_joined"`
}

type TournamentEntry struct {
	ID        string  `json:"id,omitempty"`
	UserID    string  `json:"user_id,omitempty"`
	Username  string  `json:"username,omitempty"`
	FeePaid   float64 `json:"fee_paid"`
	FeeType   string  `json:"fee_type,omitempty"`
	Placement int     `json:"placement,omitempty"`
	PrizeWon  float64 `json:"prize_won"`
}

type CreateTournamentRequest struct {
	Title           string  `json:"title"`
	GameType        string  `json:"game_type"`
	EntryFee        float64 `json:"entry_fee"`
	EntryFeeType    string  `json:"entry_fee_type"`
	PrizePool       float64 `json:"prize_pool"`
	MaxParticipants int     `json:"max_participants"`
	StartTime       string  `json:"start_time"`
	RoomID          string  `json:"room_id"`
	RoomPassword    string  `json:"room_password"`
}

type CreateTournamentResponse struct {
	ID string `json:"id"`
}

type GetTournamentsRequest struct {
	Status string `json:"status" form:"status"`
}

type GetTournamentsResponse struct {
	Tournaments []Tournament `json:"tournaments"`
}

type JoinTournamentRequest struct {
	TournamentID string `json:"tournament_id"`

	// PayWith picks credits or cash when the tournament accepts both.
	PayWith string `json:"pay_with"`
}

type JoinTournamentResponse struct {
	EntryID    string  `json:"entry_id"`
	FeePaid    float64 `json:"fee_paid"`
	FeeType    string  `json:"fee_type"`
	NewCredits float64 `json:"new_credits"`
	NewCash    float64 `json:"new_cash"`
}

type GetRoomInfoRequest struct {
	TournamentID string `json:"tournament_id" form:"tournament_id"`
}

type GetRoomInfoResponse struct {
	RoomID       string `json:"room_id"`
	RoomPassword string `json:"room_password"`
}

type GetTournamentEntriesRequest struct {
	TournamentID string `json:"tournament_id" form:"tournament_id"`
}

type GetTournamentEntriesResponse struct {
	Entries []TournamentEntry `json:"entries"`
}

type RecordResultRequest struct {
	EntryID   string  `json:"entry_id"`
	Placement int     `json:"placement"`
	PrizeWon  float64 `json:"prize_won"`
}

type RecordResultResponse struct{}

type UpdateTournamentStatusRequest struct {
	TournamentID string `json:"tournament_id"`
	Status       string `json:"status"`
}

type UpdateTournamentStatusResponse struct{}
