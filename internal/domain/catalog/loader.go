// Package catalog loads the canonical card catalog from disk.
//
// Each set is a JSON file of the shape { setInfo, cards: [...] } or with
// the set header inlined at the top level, matching the files produced by
// the dataset build scripts. A file that fails to parse is skipped with a
// warning; the rest of the catalog still loads.
package catalog

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader reads catalog set files from a directory.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// NewLoader creates a loader for the given catalog directory.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dir: dir, logger: logger}
}

// setFile is the on-disk shape of one catalog unit. Older files inline
// the set header at the top level; newer ones nest it under "setInfo".
type setFile struct {
	SetInfo *SetRecord `json:"setInfo"`
	SetRecord
	Cards []CanonicalCard `json:"cards"`
}

// Load reads every set file, merging card lists into one flat slice for
// matching and keeping per-set grouping for browsing. An unreadable
// directory yields an empty snapshot, never an error: the matching
// pipeline then reports everything unmatched instead of crashing.
func (l *Loader) Load() *Snapshot {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		l.logger.Warn("catalog directory unreadable, starting with empty catalog",
			"dir", l.dir, "error", err)
		return EmptySnapshot()
	}

	snap := EmptySnapshot()

	// Stable iteration order so tie-breaks in matching are deterministic
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(l.dir, name)
		unit, err := l.loadUnit(path)
		if err != nil {
			l.logger.Warn("skipping malformed catalog set file", "file", name, "error", err)
			continue
		}

		snap.Cards = append(snap.Cards, unit.Cards...)
		snap.Sets[unit.Info.SetCode] = unit
		l.logger.Debug("loaded catalog set",
			"set", unit.Info.SetCode, "cards", len(unit.Cards))
	}

	l.logger.Info("catalog loaded", "sets", len(snap.Sets), "cards", len(snap.Cards))
	return snap
}

// loadUnit parses a single set file.
func (l *Loader) loadUnit(path string) (SetGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SetGroup{}, err
	}

	var f setFile
	if err := json.Unmarshal(data, &f); err != nil {
		return SetGroup{}, err
	}

	info := f.SetRecord
	if f.SetInfo != nil {
		info = *f.SetInfo
	}

	// Backfill the set code from the cards when the header omits it
	if info.SetCode == "" && len(f.Cards) > 0 {
		info.SetCode = f.Cards[0].SetCode
		info.Name = f.Cards[0].SetName
	}

	return SetGroup{Info: info, Cards: f.Cards}, nil
}
