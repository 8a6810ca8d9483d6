package dto

import (
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/storage"
)

// HealthResponse reports service liveness and catalog size.
type HealthResponse struct {
	Status string `json:"status"`
	Sets   int    `json:"sets"`
	Cards  int    `json:"cards"`
}

// ReloadResponse reports the catalog size after a reload.
type ReloadResponse struct {
	Sets  int `json:"sets"`
	Cards int `json:"cards"`
}

// RunDetailResponse combines a run with its persisted results.
type RunDetailResponse struct {
	Run   *storage.ScrapeRun          `json:"run"`
	Sales []storage.MatchedSaleRecord `json:"sales"`
	Stats []storage.CardStatsRecord   `json:"stats"`
}
