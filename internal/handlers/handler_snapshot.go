package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/dongle-dev/dongle_backend/internal/dto"
	"github.com/dongle-dev/dongle_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// snapshotHandler handles HTTP requests for the detail profile and the
// snapshot history it publishes.
type snapshotHandler struct {
	snapshotService portssvc.SnapshotSvcFacade
}

// newSnapshotHandler creates a new snapshotHandler.
func newSnapshotHandler(ss portssvc.SnapshotSvcFacade) *snapshotHandler {
	return &snapshotHandler{
		snapshotService: ss,
	}
}

// registerSnapshotRoutes registers routes related to detail profiles and
// snapshots.
func registerSnapshotRoutes(rg *gin.RouterGroup, snapshotService portssvc.SnapshotSvcFacade) {
	h := newSnapshotHandler(snapshotService)

	profile := rg.Group("/detail-profile")
	{
		profile.GET("", h.getDetailProfile)
		profile.PUT("", h.saveDetailProfile)
	}

	snapshots := rg.Group("/snapshots")
	{
		snapshots.GET("/me", h.listMySnapshots)
	}
}

// getDetailProfile godoc
// @Summary Get the lifestyle questionnaire
// @Tags snapshots
// @Produce  json
// @Success 200 {object} dto.DetailProfileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No detail profile saved"
// @Failure 500 {object} map[string]string "Failed to load profile"
// @Security BearerAuth
// @Router /detail-profile [get]
func (h *snapshotHandler) getDetailProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.snapshotService.GetDetailProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No detail profile saved"})
		} else {
			logger.Error("Failed to load detail profile", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDetailProfileResponse(profile))
}

// saveDetailProfile godoc
// @Summary Save the lifestyle questionnaire and publish a snapshot
// @Description Upserts the questionnaire and publishes a new immutable cost snapshot in the same transaction
// @Tags snapshots
// @Accept  json
// @Produce  json
// @Param   profile body dto.SaveDetailProfileRequest true "Questionnaire"
// @Success 201 {object} dto.SnapshotResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to save profile"
// @Security BearerAuth
// @Router /detail-profile [put]
func (h *snapshotHandler) saveDetailProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.SaveDetailProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveDetailProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	snapshot, err := h.snapshotService.SaveDetailProfile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error saving detail profile", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			logger.Error("Failed to save detail profile", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		}
		return
	}

	logger.Info("Snapshot published", slog.Int64("snapshot_id", snapshot.SnapshotID))
	c.JSON(http.StatusCreated, dto.ToSnapshotResponse(snapshot))
}

// listMySnapshots godoc
// @Summary List my snapshot history
// @Tags snapshots
// @Produce  json
// @Success 200 {array} dto.SnapshotResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list snapshots"
// @Security BearerAuth
// @Router /snapshots/me [get]
func (h *snapshotHandler) listMySnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	snapshots, err := h.snapshotService.ListMySnapshots(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponses(snapshots))
}
