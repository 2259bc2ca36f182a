package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// PickKind discriminates a breakout/bust pick between a driver code and a team name.
type PickKind string

const (
	PickDriver PickKind = "driver"
	PickTeam   PickKind = "team"
)

// Valid reports whether k is one of the two known kinds.
func (k PickKind) Valid() bool {
	return k == PickDriver || k == PickTeam
}

// Pick is a tagged driver-or-team selection.
type Pick struct {
	Kind PickKind
	Name string
}

// Prediction category names, used by the full-send selector.
const (
	CategoryPole     = "pole"
	CategoryPodium   = "podium"
	CategoryChaser   = "chaser"
	CategoryBreakout = "breakout"
	CategoryBust     = "bust"
)

// ValidCategory reports whether s names a scoreable prediction category.
func ValidCategory(s string) bool {
	switch s {
	case CategoryPole, CategoryPodium, CategoryChaser, CategoryBreakout, CategoryBust:
		return true
	}
	return false
}

// Prediction is one user's call for one race. All fields except the chaser
// lock at submission; the chaser may be amended until race start.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:p"`

	ID     int `bun:"id,pk,autoincrement" json:"id"`
	UserID int `bun:"user_id,notnull" json:"userID"`
	RaceID int `bun:"race_id,notnull" json:"raceID"`

	PoleDriver   string `bun:"pole_driver,notnull" json:"poleDriver"`
	PodiumP1     string `bun:"podium_p1,notnull" json:"podiumP1"`
	PodiumP2     string `bun:"podium_p2,notnull" json:"podiumP2"`
	PodiumP3     string `bun:"podium_p3,notnull" json:"podiumP3"`
	ChaserDriver string `bun:"chaser_driver,notnull" json:"chaserDriver"`

	BreakoutKind PickKind `bun:"breakout_kind,notnull" json:"breakoutKind"`
	BreakoutName string   `bun:"breakout_name,notnull" json:"breakoutName"`
	BustKind     PickKind `bun:"bust_kind,notnull" json:"bustKind"`
	BustName     string   `bun:"bust_name,notnull" json:"bustName"`

	// Empty means no category was doubled.
	FullSendCategory string `bun:"full_send_category" json:"fullSendCategory,omitempty"`

	PointsEarned float64 `bun:"points_earned,notnull,default:0" json:"pointsEarned"`
	Scored       bool    `bun:"scored,notnull,default:false" json:"scored"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// BreakoutPick returns the breakout selection as a tagged pick.
func (p *Prediction) BreakoutPick() Pick {
	return Pick{Kind: p.BreakoutKind, Name: p.BreakoutName}
}

// BustPick returns the bust selection as a tagged pick.
func (p *Prediction) BustPick() Pick {
	return Pick{Kind: p.BustKind, Name: p.BustName}
}

// Validate checks the fields a user controls at submission time.
func (p *Prediction) Validate() error {
	if p.PoleDriver == "" || p.PodiumP1 == "" || p.PodiumP2 == "" || p.PodiumP3 == "" {
		return fmt.Errorf("pole and all three podium drivers are required")
	}
	if !p.BreakoutKind.Valid() {
		return fmt.Errorf("breakout kind must be %q or %q", PickDriver, PickTeam)
	}
	if !p.BustKind.Valid() {
		return fmt.Errorf("bust kind must be %q or %q", PickDriver, PickTeam)
	}
	if p.BreakoutName == "" || p.BustName == "" {
		return fmt.Errorf("breakout and bust names are required")
	}
	if p.FullSendCategory != "" && !ValidCategory(p.FullSendCategory) {
		return fmt.Errorf("unknown full-send category %q", p.FullSendCategory)
	}
	return nil
}
