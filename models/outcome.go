package models

import (
	"time"

	"github.com/uptrace/bun"
)

// RaceOutcome stores the derived result set for a race, written exactly once
// when the race is scored. Cohort columns hold JSON arrays of names.
type RaceOutcome struct {
	bun.BaseModel `bun:"table:race_outcomes,alias:ro"`

	ID     int `bun:"id,pk,autoincrement" json:"id"`
	RaceID int `bun:"race_id,notnull,unique" json:"raceID"`

	PoleDriver            string `bun:"pole_driver,notnull" json:"poleDriver"`
	PodiumP1              string `bun:"podium_p1,notnull" json:"podiumP1"`
	PodiumP2              string `bun:"podium_p2,notnull" json:"podiumP2"`
	PodiumP3              string `bun:"podium_p3,notnull" json:"podiumP3"`
	ChaserDriver          string `bun:"chaser_driver,notnull" json:"chaserDriver"`
	ChaserPositionsGained int    `bun:"chaser_positions_gained,notnull" json:"chaserPositionsGained"`

	BreakoutDrivers []string `bun:"breakout_drivers,type:jsonb" json:"breakoutDrivers"`
	BreakoutTeams   []string `bun:"breakout_teams,type:jsonb" json:"breakoutTeams"`
	BustDrivers     []string `bun:"bust_drivers,type:jsonb" json:"bustDrivers"`
	BustTeams       []string `bun:"bust_teams,type:jsonb" json:"bustTeams"`

	ProcessedAt time.Time `bun:"processed_at,notnull,default:current_timestamp" json:"processedAt"`
}
