package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gridcall/api/scoring"
)

// ScoreRace triggers the scoring pipeline for a race and relays the summary.
// Gate and state-machine failures map to their own status codes so callers
// can distinguish "retry later" from "already done".
func (h *Handler) ScoreRace(c echo.Context) error {
	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	summary, err := h.scorer.ScoreRace(c.Request().Context(), raceID)
	if err != nil {
		var notFound *scoring.NotFoundError
		var notReady *scoring.NotReadyError
		var unavailable *scoring.DataUnavailableError
		switch {
		case errors.As(err, &notFound):
			return echo.NewHTTPError(http.StatusNotFound, notFound.Error())
		case errors.As(err, &notReady):
			return echo.NewHTTPError(http.StatusConflict, notReady.Error())
		case errors.Is(err, scoring.ErrAlreadyScored):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.As(err, &unavailable):
			return echo.NewHTTPError(http.StatusBadGateway, unavailable.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, summary)
}

// ScoringStatus returns the eligibility gate's detailed report for a race.
func (h *Handler) ScoringStatus(c echo.Context) error {
	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	report, err := h.scorer.Status(c.Request().Context(), raceID)
	if err != nil {
		var notFound *scoring.NotFoundError
		if errors.As(err, &notFound) {
			return echo.NewHTTPError(http.StatusNotFound, notFound.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, report)
}
