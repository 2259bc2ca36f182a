package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gridcall/api/models"
)

type createGridRequest struct {
	Name string `json:"name"`
}

type joinGridRequest struct {
	InviteCode string `json:"inviteCode"`
}

// CreateGrid creates a private league owned by the caller, who joins it
// automatically. The invite code is a random UUID shared out of band.
func (h *Handler) CreateGrid(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req createGridRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	grid := &models.Grid{
		Name:       req.Name,
		InviteCode: uuid.NewString(),
		CreatedBy:  uid,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := h.db.NewInsert().Model(grid).Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	member := &models.GridMember{GridID: grid.ID, UserID: uid}
	if _, err := h.db.NewInsert().Model(member).Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, grid)
}

// JoinGrid adds the caller to the grid matching the invite code.
func (h *Handler) JoinGrid(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req joinGridRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.InviteCode = strings.TrimSpace(req.InviteCode)
	if req.InviteCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "inviteCode is required")
	}

	ctx := c.Request().Context()

	grid := &models.Grid{}
	if err := h.db.NewSelect().Model(grid).Where("invite_code = ?", req.InviteCode).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no grid with that invite code")
	}

	member := &models.GridMember{GridID: grid.ID, UserID: uid}
	if _, err := h.db.NewInsert().Model(member).Exec(ctx); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "already a member of this grid")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, grid)
}

type gridMemberRow struct {
	UserID   int    `bun:"user_id" json:"userID"`
	Username string `bun:"username" json:"username"`
}

// GridMembers lists the members of a grid.
func (h *Handler) GridMembers(c echo.Context) error {
	gridID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid grid id")
	}

	var rows []gridMemberRow
	err = h.db.NewRaw(`
		SELECT u.id AS user_id, u.username
		FROM grid_members gm
		INNER JOIN users u ON u.id = gm.user_id
		WHERE gm.grid_id = ?
		ORDER BY u.username`, gridID).
		Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

type leaderboardRow struct {
	UserID      int     `bun:"user_id" json:"userID"`
	Username    string  `bun:"username" json:"username"`
	TotalPoints float64 `bun:"total_points" json:"totalPoints"`
	RacesScored int     `bun:"races_scored" json:"racesScored"`
}

// GridLeaderboard ranks a grid's members by total points across all scored
// predictions.
func (h *Handler) GridLeaderboard(c echo.Context) error {
	gridID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid grid id")
	}

	var rows []leaderboardRow
	err = h.db.NewRaw(`
		SELECT u.id AS user_id, u.username,
			COALESCE(SUM(p.points_earned), 0) AS total_points,
			COUNT(p.id) FILTER (WHERE p.scored) AS races_scored
		FROM grid_members gm
		INNER JOIN users u ON u.id = gm.user_id
		LEFT JOIN predictions p ON p.user_id = u.id AND p.scored
		WHERE gm.grid_id = ?
		GROUP BY u.id, u.username
		ORDER BY total_points DESC, u.username`, gridID).
		Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}
