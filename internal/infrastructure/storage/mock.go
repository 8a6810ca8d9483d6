package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// MockRepository is an in-memory implementation of Repository for testing.
type MockRepository struct {
	mu    sync.Mutex
	runs  map[string]*ScrapeRun
	sales []MatchedSaleRecord
	stats []CardStatsRecord

	// Hooks for test assertions
	SaveRunCalled         bool
	CompleteRunCalled     bool
	SaveMatchedSalesCalls int
	SaveCardStatsCalls    int

	// Error injection for testing error paths
	SaveRunErr          error
	CompleteRunErr      error
	SaveMatchedSalesErr error
	SaveCardStatsErr    error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates an empty in-memory repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs: make(map[string]*ScrapeRun),
	}
}

func (m *MockRepository) SaveRun(run *ScrapeRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveRunCalled = true
	if m.SaveRunErr != nil {
		return m.SaveRunErr
	}

	stored := *run
	if stored.StartedAt.IsZero() {
		stored.StartedAt = time.Now().UTC()
	}
	if stored.Status == "" {
		stored.Status = RunStatusRunning
	}
	m.runs[run.ID] = &stored
	return nil
}

func (m *MockRepository) CompleteRun(runID string, totalSales, matched, unmatched int, status, errorMessage string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CompleteRunCalled = true
	if m.CompleteRunErr != nil {
		return m.CompleteRunErr
	}

	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}

	now := time.Now().UTC()
	run.CompletedAt = &now
	run.TotalSales = totalSales
	run.TotalMatched = matched
	run.TotalUnmatched = unmatched
	run.Status = status
	run.ErrorMessage = errorMessage
	return nil
}

func (m *MockRepository) GetRun(runID string) (*ScrapeRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[runID]
	if !ok {
		return nil, nil
	}
	clone := *run
	return &clone, nil
}

func (m *MockRepository) ListRuns(limit int) ([]ScrapeRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runs := make([]ScrapeRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, *run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MockRepository) SaveMatchedSales(sales []MatchedSaleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveMatchedSalesCalls++
	if m.SaveMatchedSalesErr != nil {
		return m.SaveMatchedSalesErr
	}
	m.sales = append(m.sales, sales...)
	return nil
}

func (m *MockRepository) GetMatchedSales(runID string) ([]MatchedSaleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []MatchedSaleRecord
	for _, sale := range m.sales {
		if sale.RunID == runID {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (m *MockRepository) SaveCardStats(stats []CardStatsRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCardStatsCalls++
	if m.SaveCardStatsErr != nil {
		return m.SaveCardStatsErr
	}
	m.stats = append(m.stats, stats...)
	return nil
}

func (m *MockRepository) GetCardStats(runID string) ([]CardStatsRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []CardStatsRecord
	for _, record := range m.stats {
		if record.RunID == runID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (m *MockRepository) Close() error {
	return nil
}
