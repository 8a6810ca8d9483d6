package matcher

import (
	"testing"

	"github.com/Veeeetzzzz/tag-sales-scraper/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pikachu() catalog.CanonicalCard {
	return catalog.CanonicalCard{
		ID:               "sws-025-189",
		Name:             "Pikachu",
		SetName:          "Sword & Shield",
		SetCode:          "SWS",
		CardNumber:       "025",
		FullNumber:       "025/189",
		MatchingKeywords: []string{"pikachu", "electric"},
	}
}

func raichu() catalog.CanonicalCard {
	return catalog.CanonicalCard{
		ID:               "sws-026-189",
		Name:             "Raichu",
		SetName:          "Sword & Shield",
		SetCode:          "SWS",
		CardNumber:       "026",
		FullNumber:       "026/189",
		MatchingKeywords: []string{"raichu"},
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	titles := []string{
		"  TAG 10 Pokemon Pikachu  ",
		"ALL CAPS TITLE",
		"already normalized",
		"",
		"\tTabs and spaces \n",
	}

	for _, title := range titles {
		once := Normalize(title)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", title)
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	cards := []catalog.CanonicalCard{pikachu(), raichu(), {Name: "X"}}
	titles := []string{
		"tag 10 pokemon pikachu 025/189 full art",
		"psa 10 charizard pokemon card",
		"random garbage",
		"",
		"tag pikachu electric sws 025/189 sword & shield",
	}

	for _, title := range titles {
		for i := range cards {
			score := m.Score(Normalize(title), &cards[i])
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestMatchCard_PikachuScenario(t *testing.T) {
	// Arrange
	m := NewMatcher(DefaultConfig())
	cards := []catalog.CanonicalCard{raichu(), pikachu()}

	// Act
	result := m.MatchCard("TAG 10 Pokemon Pikachu 025/189 Full Art", cards)

	// Assert
	require.NotNil(t, result)
	assert.Equal(t, "sws-025-189", result.Card.ID)
	assert.Greater(t, result.Confidence, 0.5)
	assert.Contains(t, result.MatchedKeywords, "pikachu")
}

func TestScore_EarlyReject_NoHobbyTerm(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	card := pikachu()

	// Neither "pokemon" nor "tag" appears
	score := m.Score(Normalize("Charizard Base Set Holo 4/102"), &card)

	assert.Equal(t, 0.0, score)
}

func TestMatchCard_PSAOnly_Unmatched(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	cards := []catalog.CanonicalCard{pikachu()}

	// Mentions pokemon but is PSA graded and names a different card
	result := m.MatchCard("PSA 10 Charizard Pokemon Card", cards)

	assert.Nil(t, result)
}

func TestScore_GradingPenalty_ScalesNotZeroes(t *testing.T) {
	// Arrange
	m := NewMatcher(DefaultConfig())
	card := pikachu()

	clean := m.Score(Normalize("TAG 9 Pokemon Pikachu 025/189 electric sws"), &card)
	penalized := m.Score(Normalize("TAG 9 Pokemon Pikachu 025/189 electric sws PSA comparison"), &card)

	// Assert - penalty multiplies the base score rather than forcing zero
	require.Greater(t, clean, 0.0)
	assert.Greater(t, penalized, 0.0)
	assert.InDelta(t, clean*0.1, penalized, 0.0001)
}

func TestScore_GradingPenalty_HighVsLowBase(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	strong := pikachu()
	weak := raichu()

	title := Normalize("TAG 9 Pokemon Pikachu 025/189 electric sws PSA comparison")

	strongScore := m.Score(title, &strong)
	weakScore := m.Score(title, &weak)

	// The high-base-score card survives scaling better than the decoy
	assert.Greater(t, strongScore, weakScore)
}

func TestScore_PartialNumberCredit(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	card := pikachu()

	full := m.Score(Normalize("tag pokemon pikachu electric sws sword & shield 025/189"), &card)
	partial := m.Score(Normalize("tag pokemon pikachu electric sws sword & shield 025/ graded"), &card)
	none := m.Score(Normalize("tag pokemon pikachu electric sws sword & shield"), &card)

	assert.Greater(t, full, partial)
	assert.Greater(t, partial, none)
}

func TestScore_SetNameVariants(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	card := catalog.CanonicalCard{
		Name:             "Mewtwo",
		SetName:          "Scarlet & Violet",
		SetCode:          "SV1",
		CardNumber:       "150",
		FullNumber:       "150/198",
		MatchingKeywords: []string{"mewtwo"},
	}

	base := m.Score(Normalize("tag 10 pokemon mewtwo"), &card)
	withCode := m.Score(Normalize("tag 10 pokemon mewtwo sv1"), &card)
	withAnd := m.Score(Normalize("tag 10 pokemon mewtwo scarlet and violet"), &card)
	squashed := m.Score(Normalize("tag 10 pokemon mewtwo scarletviolet"), &card)

	assert.Greater(t, withCode, base)
	assert.Greater(t, withAnd, base)
	assert.Greater(t, squashed, base)
}

func TestMatchCard_NeverAtOrBelowThreshold(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMatcher(cfg)
	cards := []catalog.CanonicalCard{pikachu(), raichu()}

	titles := []string{
		"TAG 10 Pokemon Pikachu 025/189 Full Art",
		"tag pokemon",
		"pokemon raichu",
		"tag 9 pokemon pikachu psa",
		"nothing relevant at all",
	}

	for _, title := range titles {
		if result := m.MatchCard(title, cards); result != nil {
			assert.Greater(t, result.Confidence, cfg.MinConfidence,
				"matched %q must be strictly above threshold", title)
		}
	}
}

func TestMatchCard_TieBreak_FirstSeenWins(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	twin := pikachu()
	twin.ID = "sws-025-189-duplicate"
	cards := []catalog.CanonicalCard{pikachu(), twin}

	result := m.MatchCard("TAG 10 Pokemon Pikachu 025/189", cards)

	require.NotNil(t, result)
	assert.Equal(t, "sws-025-189", result.Card.ID)
}

func TestMatchCard_EmptyTitle(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	assert.Nil(t, m.MatchCard("   ", []catalog.CanonicalCard{pikachu()}))
}

func TestMatchCard_EmptyCatalog(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	assert.Nil(t, m.MatchCard("TAG 10 Pokemon Pikachu", nil))
}
