package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/gridcall/api/scoring"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	scorer *scoring.Service
	JWTKey []byte
}

// New creates a Handler with the given database connection, scoring service
// and JWT signing key.
func New(db *bun.DB, scorer *scoring.Service, jwtKey []byte) *Handler {
	return &Handler{db: db, scorer: scorer, JWTKey: jwtKey}
}

// userID pulls the authenticated user's id set by the JWT middleware.
func userID(c echo.Context) (int, bool) {
	id, ok := c.Get("userID").(int)
	return id, ok && id > 0
}
