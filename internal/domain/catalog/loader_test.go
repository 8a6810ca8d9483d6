package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const destinedRivalsJSON = `{
  "name": "Destined Rivals",
  "setCode": "SV10",
  "series": "Scarlet & Violet",
  "totalCards": 244,
  "cards": [
    {
      "id": "destined-rivals-025-182",
      "name": "Pikachu",
      "setName": "Destined Rivals",
      "setCode": "SV10",
      "cardNumber": "025",
      "fullNumber": "025/182",
      "matchingKeywords": ["pikachu", "electric"]
    },
    {
      "id": "destined-rivals-026-182",
      "name": "Raichu",
      "setName": "Destined Rivals",
      "setCode": "SV10",
      "cardNumber": "026",
      "fullNumber": "026/182",
      "matchingKeywords": ["raichu"]
    }
  ]
}`

const surgingSparksJSON = `{
  "setInfo": {
    "name": "Surging Sparks",
    "setCode": "SV8",
    "totalCards": 252
  },
  "cards": [
    {
      "id": "surging-sparks-057-191",
      "name": "Pikachu ex",
      "setName": "Surging Sparks",
      "setCode": "SV8",
      "cardNumber": "057",
      "fullNumber": "057/191",
      "matchingKeywords": ["pikachu", "pikachu ex"]
    }
  ]
}`

func writeSet(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_MergesAllSets(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	writeSet(t, dir, "destined-rivals.json", destinedRivalsJSON)
	writeSet(t, dir, "surging-sparks.json", surgingSparksJSON)

	// Act
	snap := NewLoader(dir, nil).Load()

	// Assert
	assert.Len(t, snap.Cards, 3)
	assert.Len(t, snap.Sets, 2)
	assert.Equal(t, "Destined Rivals", snap.Sets["SV10"].Info.Name)
	assert.Equal(t, "Surging Sparks", snap.Sets["SV8"].Info.Name)
	assert.Len(t, snap.Sets["SV10"].Cards, 2)
}

func TestLoader_SkipsMalformedFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	writeSet(t, dir, "destined-rivals.json", destinedRivalsJSON)
	writeSet(t, dir, "broken.json", "{not json")

	// Act
	snap := NewLoader(dir, nil).Load()

	// Assert - the malformed unit is skipped, the rest loads
	assert.Len(t, snap.Cards, 2)
	assert.Len(t, snap.Sets, 1)
}

func TestLoader_IgnoresNonJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "destined-rivals.json", destinedRivalsJSON)
	writeSet(t, dir, "README.md", "# not a set")

	snap := NewLoader(dir, nil).Load()

	assert.Len(t, snap.Sets, 1)
}

func TestLoader_UnreadableDir_EmptySnapshot(t *testing.T) {
	// Act
	snap := NewLoader(filepath.Join(t.TempDir(), "missing"), nil).Load()

	// Assert - fail soft: empty catalog, not an error
	require.NotNil(t, snap)
	assert.Empty(t, snap.Cards)
	assert.Empty(t, snap.Sets)
}

func TestLoader_DeterministicCardOrder(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir, "destined-rivals.json", destinedRivalsJSON)
	writeSet(t, dir, "surging-sparks.json", surgingSparksJSON)

	first := NewLoader(dir, nil).Load()
	second := NewLoader(dir, nil).Load()

	require.Equal(t, len(first.Cards), len(second.Cards))
	for i := range first.Cards {
		assert.Equal(t, first.Cards[i].ID, second.Cards[i].ID)
	}
}
