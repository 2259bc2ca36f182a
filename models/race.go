package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race represents one round of a season.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	RaceID           int       `bun:"race_id,pk,autoincrement" json:"raceID"`
	Year             int       `bun:"year,notnull" json:"year"`
	Round            int       `bun:"round,notnull" json:"round"`
	Location         string    `bun:"location,notnull" json:"location"`
	RaceDate         time.Time `bun:"race_date,notnull" json:"raceDate"`
	PredictionsClose time.Time `bun:"predictions_close,notnull" json:"predictionsClose"`
	Completed        bool      `bun:"completed,notnull,default:false" json:"completed"`
	ResultsProcessed bool      `bun:"results_processed,notnull,default:false" json:"resultsProcessed"`
}
