package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dongle-dev/dongle_backend/internal/apperrors"
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/dongle-dev/dongle_backend/internal/dto"
	"github.com/dongle-dev/dongle_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// feedHandler handles HTTP requests for the shared snapshot feed.
type feedHandler struct {
	feedService portssvc.FeedSvcFacade
}

// newFeedHandler creates a new feedHandler.
func newFeedHandler(fs portssvc.FeedSvcFacade) *feedHandler {
	return &feedHandler{
		feedService: fs,
	}
}

// registerFeedRoutes registers routes related to the feed. The whole group
// sits behind a per-IP rate limit since listings hit every user's data.
func registerFeedRoutes(rg *gin.RouterGroup, feedService portssvc.FeedSvcFacade, rateFormat string) {
	h := newFeedHandler(feedService)

	rate, err := limiter.NewRateFromFormatted(rateFormat)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("60-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	feed := rg.Group("/feed", middleware.RateLimit(ipLimiter))
	{
		feed.GET("", h.listFeed)
		feed.GET("/me/scraps", h.listMyScraps)
		feed.GET("/me/stats", h.myStats)
		feed.GET("/:snapshotID", h.getFeedDetail)
		feed.POST("/:snapshotID/favorite", h.favorite)
		feed.DELETE("/:snapshotID/favorite", h.unfavorite)
		feed.POST("/:snapshotID/scrap", h.scrap)
		feed.DELETE("/:snapshotID/scrap", h.unscrap)
	}
}

func snapshotIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("snapshotID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid snapshot id: " + c.Param("snapshotID")})
		return 0, false
	}
	return id, true
}

// listFeed godoc
// @Summary List the snapshot feed
// @Description Lists each user's most recent snapshot with like/scrap counts, filtered and sorted
// @Tags feed
// @Produce  json
// @Param   search       query string false "Free-text search over country and university"
// @Param   country      query string false "Country filter"
// @Param   university   query string false "University filter"
// @Param   exchangeType query string false "Exchange type filter"
// @Param   sort         query string false "latest (default) or popular"
// @Success 200 {array} dto.FeedItemResponse
// @Failure 400 {object} map[string]string "Unknown sort"
// @Failure 500 {object} map[string]string "Failed to list feed"
// @Security BearerAuth
// @Router /feed [get]
func (h *feedHandler) listFeed(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	viewerID, _ := middleware.GetUserIDFromContext(c)

	filter := portsrepo.FeedFilter{
		Search:       c.Query("search"),
		Country:      c.Query("country"),
		University:   c.Query("university"),
		ExchangeType: c.Query("exchangeType"),
		Sort:         portsrepo.FeedSort(c.Query("sort")),
	}

	snapshots, err := h.feedService.ListFeed(c.Request.Context(), viewerID, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list feed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list feed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedItemResponses(snapshots))
}

// getFeedDetail godoc
// @Summary Get one feed entry
// @Description Returns the stored snapshot with live current-rate cost breakdowns and the viewer's liked/scrapped flags
// @Tags feed
// @Produce  json
// @Param   snapshotID path int true "Snapshot ID"
// @Success 200 {object} dto.FeedDetailResponse
// @Failure 400 {object} map[string]string "Invalid snapshot id"
// @Failure 404 {object} map[string]string "Snapshot not found"
// @Failure 500 {object} map[string]string "Failed to load feed entry"
// @Security BearerAuth
// @Router /feed/{snapshotID} [get]
func (h *feedHandler) getFeedDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	snapshotID, ok := snapshotIDParam(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.GetUserIDFromContext(c)

	detail, err := h.feedService.GetFeedDetail(c.Request.Context(), viewerID, snapshotID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Snapshot not found"})
		} else {
			logger.Error("Failed to load feed detail", slog.Int64("snapshot_id", snapshotID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedDetailResponse(detail))
}

// favorite godoc
// @Summary Like a snapshot
// @Description Likes a snapshot; liking one already liked is a no-op
// @Tags feed
// @Produce  json
// @Param   snapshotID path int true "Snapshot ID"
// @Success 204 "Liked"
// @Failure 400 {object} map[string]string "Invalid snapshot id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Snapshot not found"
// @Failure 500 {object} map[string]string "Failed to like"
// @Security BearerAuth
// @Router /feed/{snapshotID}/favorite [post]
func (h *feedHandler) favorite(c *gin.Context) {
	h.interact(c, h.feedService.Favorite, "Failed to like")
}

// unfavorite godoc
// @Summary Remove a like
// @Tags feed
// @Produce  json
// @Param   snapshotID path int true "Snapshot ID"
// @Success 204 "Removed"
// @Failure 400 {object} map[string]string "Invalid snapshot id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to remove like"
// @Security BearerAuth
// @Router /feed/{snapshotID}/favorite [delete]
func (h *feedHandler) unfavorite(c *gin.Context) {
	h.interact(c, h.feedService.Unfavorite, "Failed to remove like")
}

// scrap godoc
// @Summary Bookmark a snapshot
// @Description Bookmarks a snapshot; bookmarking one already bookmarked is a no-op
// @Tags feed
// @Produce  json
// @Param   snapshotID path int true "Snapshot ID"
// @Success 204 "Bookmarked"
// @Failure 400 {object} map[string]string "Invalid snapshot id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Snapshot not found"
// @Failure 500 {object} map[string]string "Failed to bookmark"
// @Security BearerAuth
// @Router /feed/{snapshotID}/scrap [post]
func (h *feedHandler) scrap(c *gin.Context) {
	h.interact(c, h.feedService.Scrap, "Failed to bookmark")
}

// unscrap godoc
// @Summary Remove a bookmark
// @Tags feed
// @Produce  json
// @Param   snapshotID path int true "Snapshot ID"
// @Success 204 "Removed"
// @Failure 400 {object} map[string]string "Invalid snapshot id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to remove bookmark"
// @Security BearerAuth
// @Router /feed/{snapshotID}/scrap [delete]
func (h *feedHandler) unscrap(c *gin.Context) {
	h.interact(c, h.feedService.Unscrap, "Failed to remove bookmark")
}

// interact runs one favorite/scrap style write, mapping the shared error
// shapes to HTTP statuses.
func (h *feedHandler) interact(c *gin.Context, op func(ctx context.Context, userID string, snapshotID int64) error, failMsg string) {
	logger := middleware.GetLoggerFromContext(c)
	snapshotID, ok := snapshotIDParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := op(c.Request.Context(), userID, snapshotID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Snapshot not found"})
		} else {
			logger.Error(failMsg, slog.Int64("snapshot_id", snapshotID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listMyScraps godoc
// @Summary List my bookmarked snapshots
// @Tags feed
// @Produce  json
// @Success 200 {array} dto.FeedItemResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bookmarks"
// @Security BearerAuth
// @Router /feed/me/scraps [get]
func (h *feedHandler) listMyScraps(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	snapshots, err := h.feedService.ListMyScraps(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list scrapped snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookmarks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedItemResponses(snapshots))
}

// myStats godoc
// @Summary My interaction totals
// @Tags feed
// @Produce  json
// @Success 200 {object} dto.MyFeedStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to count interactions"
// @Security BearerAuth
// @Router /feed/me/stats [get]
func (h *feedHandler) myStats(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	counts, err := h.feedService.MyStats(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to count interactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count interactions"})
		return
	}

	c.JSON(http.StatusOK, dto.MyFeedStatsResponse{
		FavoriteCount: counts.FavoriteCount,
		ScrapCount:    counts.ScrapCount,
	})
}
