package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gridcall/api/models"
)

type createRaceRequest struct {
	Year             int       `json:"year"`
	Round            int       `json:"round"`
	Location         string    `json:"location"`
	RaceDate         time.Time `json:"raceDate"`
	PredictionsClose time.Time `json:"predictionsClose"`
}

type upcomingRace struct {
	models.Race
	TimeUntilClose string `json:"timeUntilClose"`
	CanPredict     bool   `json:"canPredict"`
}

// Races returns all races, newest first.
func (h *Handler) Races(c echo.Context) error {
	var races []models.Race
	err := h.db.NewSelect().Model(&races).
		Order("race_date DESC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, races)
}

// UpcomingRaces returns races that have not yet run, soonest first, with a
// human-readable time until predictions close.
func (h *Handler) UpcomingRaces(c echo.Context) error {
	now := time.Now().UTC()

	var races []models.Race
	err := h.db.NewSelect().Model(&races).
		Where("NOT completed").
		Where("race_date >= ?", now).
		Order("race_date ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make([]upcomingRace, len(races))
	for i, r := range races {
		until := "Closed"
		canPredict := now.Before(r.PredictionsClose)
		if canPredict {
			d := r.PredictionsClose.Sub(now)
			until = fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
		}
		out[i] = upcomingRace{Race: r, TimeUntilClose: until, CanPredict: canPredict}
	}

	return c.JSON(http.StatusOK, out)
}

// Race returns one race by id.
func (h *Handler) Race(c echo.Context) error {
	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	race := &models.Race{}
	err = h.db.NewSelect().Model(race).
		Where("rc.race_id = ?", raceID).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	return c.JSON(http.StatusOK, race)
}

// CreateRace inserts a new race on the calendar.
func (h *Handler) CreateRace(c echo.Context) error {
	var req createRaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Location = strings.TrimSpace(req.Location)
	if req.Year < 1950 || req.Round < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "year and round are required")
	}
	if req.Location == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "location is required")
	}
	if req.RaceDate.IsZero() || req.PredictionsClose.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "raceDate and predictionsClose are required")
	}
	if !req.PredictionsClose.Before(req.RaceDate) {
		return echo.NewHTTPError(http.StatusBadRequest, "predictions must close before race start")
	}

	race := &models.Race{
		Year:             req.Year,
		Round:            req.Round,
		Location:         req.Location,
		RaceDate:         req.RaceDate.UTC(),
		PredictionsClose: req.PredictionsClose.UTC(),
	}
	if _, err := h.db.NewInsert().Model(race).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "race already exists for that year and round")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, race)
}

// RaceOutcome returns the persisted derived outcome for a scored race.
func (h *Handler) RaceOutcome(c echo.Context) error {
	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	outcome := &models.RaceOutcome{}
	err = h.db.NewSelect().Model(outcome).
		Where("ro.race_id = ?", raceID).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no outcome for this race")
	}
	return c.JSON(http.StatusOK, outcome)
}
