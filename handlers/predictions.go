package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gridcall/api/models"
)

type createPredictionRequest struct {
	RaceID           int             `json:"raceID"`
	PoleDriver       string          `json:"poleDriver"`
	PodiumP1         string          `json:"podiumP1"`
	PodiumP2         string          `json:"podiumP2"`
	PodiumP3         string          `json:"podiumP3"`
	ChaserDriver     string          `json:"chaserDriver"`
	BreakoutKind     models.PickKind `json:"breakoutKind"`
	BreakoutName     string          `json:"breakoutName"`
	BustKind         models.PickKind `json:"bustKind"`
	BustName         string          `json:"bustName"`
	FullSendCategory string          `json:"fullSendCategory,omitempty"`
}

// CreatePrediction submits the caller's prediction for a race. One per user
// per race; everything except the chaser locks at submission.
func (h *Handler) CreatePrediction(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req createPredictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	race := &models.Race{}
	if err := h.db.NewSelect().Model(race).Where("rc.race_id = ?", req.RaceID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	if !time.Now().UTC().Before(race.PredictionsClose) {
		return echo.NewHTTPError(http.StatusBadRequest, "predictions are closed for this race")
	}

	now := time.Now().UTC()
	pred := &models.Prediction{
		UserID:           uid,
		RaceID:           req.RaceID,
		PoleDriver:       strings.ToUpper(strings.TrimSpace(req.PoleDriver)),
		PodiumP1:         strings.ToUpper(strings.TrimSpace(req.PodiumP1)),
		PodiumP2:         strings.ToUpper(strings.TrimSpace(req.PodiumP2)),
		PodiumP3:         strings.ToUpper(strings.TrimSpace(req.PodiumP3)),
		ChaserDriver:     strings.ToUpper(strings.TrimSpace(req.ChaserDriver)),
		BreakoutKind:     req.BreakoutKind,
		BreakoutName:     strings.TrimSpace(req.BreakoutName),
		BustKind:         req.BustKind,
		BustName:         strings.TrimSpace(req.BustName),
		FullSendCategory: strings.TrimSpace(req.FullSendCategory),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := pred.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.db.NewInsert().Model(pred).Exec(ctx); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "you already have a prediction for this race")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, pred)
}

type updateChaserRequest struct {
	ChaserDriver string `json:"chaserDriver"`
}

// UpdateChaser amends the chaser pick on an existing prediction. The chaser
// is the only field editable after submission, and only until race start.
func (h *Handler) UpdateChaser(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	predID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid prediction id")
	}

	var req updateChaserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.ChaserDriver = strings.ToUpper(strings.TrimSpace(req.ChaserDriver))
	if req.ChaserDriver == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "chaserDriver is required")
	}

	ctx := c.Request().Context()

	pred := &models.Prediction{}
	if err := h.db.NewSelect().Model(pred).Where("p.id = ?", predID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "prediction not found")
	}
	if pred.UserID != uid {
		return echo.NewHTTPError(http.StatusForbidden, "not your prediction")
	}
	if pred.Scored {
		return echo.NewHTTPError(http.StatusBadRequest, "prediction has already been scored")
	}

	race := &models.Race{}
	if err := h.db.NewSelect().Model(race).Where("rc.race_id = ?", pred.RaceID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !time.Now().UTC().Before(race.RaceDate) {
		return echo.NewHTTPError(http.StatusBadRequest, "race has started, chaser is locked")
	}

	_, err = h.db.NewUpdate().Model((*models.Prediction)(nil)).
		Set("chaser_driver = ?", req.ChaserDriver).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", predID).
		Exec(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pred.ChaserDriver = req.ChaserDriver
	return c.JSON(http.StatusOK, pred)
}

// MyPrediction returns the caller's prediction for a race.
func (h *Handler) MyPrediction(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	pred := &models.Prediction{}
	err = h.db.NewSelect().Model(pred).
		Where("p.user_id = ? AND p.race_id = ?", uid, raceID).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no prediction found")
	}
	return c.JSON(http.StatusOK, pred)
}

// RacePredictions returns all predictions for a race.
func (h *Handler) RacePredictions(c echo.Context) error {
	raceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	var preds []models.Prediction
	err = h.db.NewSelect().Model(&preds).
		Where("p.race_id = ?", raceID).
		Order("p.id ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, preds)
}
