package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ScoringSummary records one completed scoring run for a race.
type ScoringSummary struct {
	bun.BaseModel `bun:"table:scoring_summaries,alias:ss"`

	ID                int       `bun:"id,pk,autoincrement" json:"id"`
	RaceID            int       `bun:"race_id,notnull,unique" json:"raceID"`
	PredictionsScored int       `bun:"predictions_scored,notnull" json:"predictionsScored"`
	TotalPoints       float64   `bun:"total_points,notnull" json:"totalPoints"`
	ScoredAt          time.Time `bun:"scored_at,notnull,default:current_timestamp" json:"scoredAt"`
}
