package entity

import (
	"database/sql"
	"time"

	"github.com/battlezone-labs/backend/pkg/enum"
)

type EntryFeeType string

var (
	FeeCredits = enum.New(EntryFeeType("credits"))
	FeeCash    = enum.New(EntryFeeType("cash"))
	FeeBoth    = enum.New(EntryFeeType("both"))
)

type TournamentStatus string

var (
	TournamentUpcoming  = enum.New(TournamentStatus("upcoming"))
	TournamentLive      = enum.New(TournamentStatus("live"))
	TournamentCompleted = enum.New(TournamentStatus("completed"))
	TournamentCancelled = enum.New(TournamentStatus("cancelled"))
)

type Tournament struct {
	Base

	Title        string
	GameType     string
	EntryFee     float64
	EntryFeeType EntryFeeType
	PrizePool    float64

	// MaxParticipants of zero means unlimited capacity.
	MaxParticipants     int
	CurrentParticipants int

	Status    TournamentStatus
	StartTime time.Time

	// Room credentials are disclosed to entrants only while live.
	RoomID       string
	RoomPassword string
}

type TournamentEntry struct {
	Base

	TournamentID string     `gorm:"uniqueIndex:idx_entries_tournament_user,priority:1"`
	Tournament   Tournament `gorm:"foreignKey:TournamentID"`

	UserID string `gorm:"uniqueIndex:idx_entries_tournament_user,priority:2"`
	User   User   `gorm:"foreignKey:UserID"`

	FeePaid float64
	FeeType EntryFeeType

	Placement sql.NullInt64
	PrizeWon  float64
}
