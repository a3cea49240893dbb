package dto

import (
	"time"

	"github.com/dongle-dev/dongle_backend/internal/core/domain"
)

// FeedItemResponse is one row of the feed listing: a user's latest snapshot
// with its social counters.
type FeedItemResponse struct {
	SnapshotResponse
	LikeCount  int `json:"likeCount"`
	ScrapCount int `json:"scrapCount"`
}

// ToFeedItemResponse converts a counted snapshot to its DTO.
func ToFeedItemResponse(snapshot *domain.FeedSnapshot) FeedItemResponse {
	return FeedItemResponse{
		SnapshotResponse: ToSnapshotResponse(&snapshot.Snapshot),
		LikeCount:        snapshot.LikeCount,
		ScrapCount:       snapshot.ScrapCount,
	}
}

// ToFeedItemResponses converts a feed listing to DTOs.
func ToFeedItemResponses(snapshots []domain.FeedSnapshot) []FeedItemResponse {
	responses := make([]FeedItemResponse, len(snapshots))
	for i := range snapshots {
		responses[i] = ToFeedItemResponse(&snapshots[i])
	}
	return responses
}

// FeedCategoryLineResponse is one live-recomputed category line of a feed
// detail: frozen figures plus the same spend at today's rate.
type FeedCategoryLineResponse struct {
	Code                 string `json:"code"`
	Label                string `json:"label"`
	ForeignAmount        Money  `json:"foreignAmount"`
	KRWAmount            Money  `json:"krwAmount"`
	CurrentRateKRWAmount Money  `json:"currentRateKrwAmount"`
}

// FeedCostSummaryResponse is a dual-currency cost block of a feed detail.
type FeedCostSummaryResponse struct {
	ForeignAmount Money                      `json:"foreignAmount"`
	KRWAmount     Money                      `json:"krwAmount"`
	Categories    []FeedCategoryLineResponse `json:"categories"`
}

// FeedDetailResponse is the full feed detail payload: the stored snapshot,
// live current-rate recomputations, and the viewer's own interaction flags.
type FeedDetailResponse struct {
	SnapshotResponse
	LivingExpenseSummary FeedCostSummaryResponse `json:"livingExpenseSummary"`
	BaseDispatchSummary  FeedCostSummaryResponse `json:"baseDispatchSummary"`
	LikeCount            int                     `json:"likeCount"`
	ScrapCount           int                     `json:"scrapCount"`
	Liked                bool                    `json:"liked"`
	Scrapped             bool                    `json:"scrapped"`
}

func toFeedCostSummaryResponse(breakdown domain.FeedCostBreakdown) FeedCostSummaryResponse {
	lines := make([]FeedCategoryLineResponse, len(breakdown.Lines))
	for i, line := range breakdown.Lines {
		lines[i] = FeedCategoryLineResponse{
			Code:                 line.Code,
			Label:                line.Label,
			ForeignAmount:        NewMoney(line.ForeignAmount, breakdown.ForeignCurrency),
			KRWAmount:            NewMoney(line.KRWAmount, domain.CurrencyKRW),
			CurrentRateKRWAmount: NewMoney(line.CurrentRateKRW, domain.CurrencyKRW),
		}
	}
	return FeedCostSummaryResponse{
		ForeignAmount: NewMoney(breakdown.ForeignAmount, breakdown.ForeignCurrency),
		KRWAmount:     NewMoney(breakdown.KRWAmount, domain.CurrencyKRW),
		Categories:    lines,
	}
}

// ToFeedDetailResponse converts a feed detail to its DTO.
func ToFeedDetailResponse(detail *domain.FeedDetail) FeedDetailResponse {
	return FeedDetailResponse{
		SnapshotResponse:     ToSnapshotResponse(&detail.Snapshot),
		LivingExpenseSummary: toFeedCostSummaryResponse(detail.LivingExpense),
		BaseDispatchSummary:  toFeedCostSummaryResponse(detail.BaseDispatch),
		LikeCount:            detail.LikeCount,
		ScrapCount:           detail.ScrapCount,
		Liked:                detail.Liked,
		Scrapped:             detail.Scrapped,
	}
}

// InteractionResponse acknowledges a favorite/scrap write.
type InteractionResponse struct {
	SnapshotID int64     `json:"snapshotID"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MyFeedStatsResponse is the caller's own interaction totals.
type MyFeedStatsResponse struct {
	FavoriteCount int `json:"favoriteCount"`
	ScrapCount    int `json:"scrapCount"`
}
