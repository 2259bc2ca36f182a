package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Grid is a private league of users competing against each other.
type Grid struct {
	bun.BaseModel `bun:"table:grids,alias:g"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	Name       string    `bun:"name,notnull" json:"name"`
	InviteCode string    `bun:"invite_code,notnull,unique" json:"inviteCode"`
	CreatedBy  int       `bun:"created_by,notnull" json:"createdBy"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// GridMember links a user to a grid.
type GridMember struct {
	bun.BaseModel `bun:"table:grid_members,alias:gm"`

	ID     int `bun:"id,pk,autoincrement" json:"id"`
	GridID int `bun:"grid_id,notnull" json:"gridID"`
	UserID int `bun:"user_id,notnull" json:"userID"`
}
