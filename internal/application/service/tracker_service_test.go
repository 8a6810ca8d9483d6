package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/adapters/sources"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/catalog"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/config"
	"github.com/Veeeetzzzz/tag-sales-scraper/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource returns a fixed sale batch
type stubSource struct {
	sales []sources.RawSale
	err   error
	calls int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchSales(_ context.Context, _ sources.FetchOptions) ([]sources.RawSale, error) {
	s.calls++
	return s.sales, s.err
}

const pikachuSetJSON = `{
  "name": "Sword & Shield",
  "setCode": "SWS",
  "cards": [
    {
      "id": "sws-025-189",
      "name": "Pikachu",
      "setName": "Sword & Shield",
      "setCode": "SWS",
      "cardNumber": "025",
      "fullNumber": "025/189",
      "matchingKeywords": ["pikachu", "electric"]
    }
  ]
}`

func writeCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sword-shield.json"), []byte(pikachuSetJSON), 0o644))
	return dir
}

func newTestService(t *testing.T, source sources.SaleSource, repo storage.Repository) *TrackerService {
	t.Helper()
	cfg := config.LoadFromEnv()
	cfg.Catalog.Dir = writeCatalog(t)
	loader := catalog.NewLoader(cfg.Catalog.Dir, nil)
	return NewTrackerService(cfg, loader, source, repo, nil)
}

func TestTrackerService_InitialLoad(t *testing.T) {
	svc := newTestService(t, &stubSource{}, storage.NewMockRepository())

	snap := svc.Snapshot()
	require.NotNil(t, snap)
	assert.Len(t, snap.Cards, 1)
}

func TestTrackerService_RunScrape(t *testing.T) {
	// Arrange
	source := &stubSource{
		sales: []sources.RawSale{
			{Title: "TAG 10 Pokemon Pikachu 025/189 Full Art", Price: "£45.00", Marketplace: sources.MarketplaceUK},
			{Title: "Nothing to see here", Price: "£5.00", Marketplace: sources.MarketplaceUK},
		},
	}
	repo := storage.NewMockRepository()
	svc := newTestService(t, source, repo)

	// Act
	result, err := svc.RunScrape(context.Background(), RunRequest{})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Aggregation.TotalMatched)
	assert.Equal(t, 1, result.Aggregation.TotalUnmatched)

	run, err := repo.GetRun(result.RunID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, storage.RunStatusCompleted, run.Status)
	assert.Equal(t, 2, run.TotalSales)
	assert.Equal(t, 1, run.TotalMatched)

	persisted, err := repo.GetMatchedSales(result.RunID)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "sws-025-189", persisted[0].CardID)
	assert.Equal(t, "Full Art", persisted[0].Variant)
	assert.Equal(t, 45.0, persisted[0].Price)

	stats, err := repo.GetCardStats(result.RunID)
	require.NoError(t, err)
	// one whole-card record plus one Full Art variant record
	assert.Len(t, stats, 2)
}

func TestTrackerService_RunScrape_SourceFailure(t *testing.T) {
	source := &stubSource{err: errors.New("ebay changed its markup again")}
	repo := storage.NewMockRepository()
	svc := newTestService(t, source, repo)

	result, err := svc.RunScrape(context.Background(), RunRequest{})

	require.Error(t, err)
	assert.Nil(t, result)

	runs, listErr := repo.ListRuns(1)
	require.NoError(t, listErr)
	require.Len(t, runs, 1)
	assert.Equal(t, storage.RunStatusFailed, runs[0].Status)
}

func TestTrackerService_MatchBatch(t *testing.T) {
	repo := storage.NewMockRepository()
	svc := newTestService(t, &stubSource{}, repo)

	result := svc.MatchBatch([]sources.RawSale{
		{Title: "TAG 10 Pokemon Pikachu 025/189", Price: "£45.00"},
	})

	assert.Equal(t, 1, result.TotalMatched)
	assert.Equal(t, 0, result.TotalUnmatched)

	// Nothing is persisted by a pure match
	runs, err := repo.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestTrackerService_ReloadCatalog_SwapsSnapshot(t *testing.T) {
	cfg := config.LoadFromEnv()
	dir := t.TempDir()
	cfg.Catalog.Dir = dir
	loader := catalog.NewLoader(dir, nil)
	svc := NewTrackerService(cfg, loader, &stubSource{}, storage.NewMockRepository(), nil)

	// Initially empty
	assert.Empty(t, svc.Snapshot().Cards)

	// Catalog file appears on disk, reload picks it up
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sword-shield.json"), []byte(pikachuSetJSON), 0o644))
	snap := svc.ReloadCatalog()

	assert.Len(t, snap.Cards, 1)
	assert.Same(t, snap, svc.Snapshot())
}

func TestTrackerService_EmptyCatalog_AllUnmatched(t *testing.T) {
	cfg := config.LoadFromEnv()
	cfg.Catalog.Dir = filepath.Join(t.TempDir(), "missing")
	loader := catalog.NewLoader(cfg.Catalog.Dir, nil)
	svc := NewTrackerService(cfg, loader, &stubSource{}, storage.NewMockRepository(), nil)

	result := svc.MatchBatch([]sources.RawSale{
		{Title: "TAG 10 Pokemon Pikachu 025/189", Price: "£45.00"},
	})

	assert.Equal(t, 0, result.TotalMatched)
	assert.Equal(t, 1, result.TotalUnmatched)
}
