package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/tcgdex/tcgdex"
)

func testCard() *tcgdex.Card {
	return &tcgdex.Card{
		ID:          "swsh3-136",
		LocalID:     "136",
		Name:        "Furret",
		Category:    "Pokemon",
		Rarity:      "Uncommon",
		Illustrator: "tetsuya koizumi",
		HP:          110,
		Types:       []string{"Colorless"},
		Stage:       "Stage1",
		EvolveFrom:  "Sentret",
		Retreat:     1,
		Image:       "https://assets.tcgdex.net/en/swsh/swsh3/136",
		Set:         tcgdex.SetBrief{ID: "swsh3", Name: "Darkness Ablaze", CardCount: tcgdex.CardCountBrief{Official: 189, Total: 201}},
		Variants:    tcgdex.Variants{Normal: true, Reverse: true},
		Legal:       tcgdex.Legal{Expanded: true},
		Attacks: []tcgdex.Attack{
			{Name: "Tail Smash", Cost: []string{"Colorless", "Colorless", "Colorless"}, Damage: "90"},
		},
		Weaknesses: []tcgdex.Weakness{{Type: "Fighting", Value: "×2"}},
	}
}

func TestNew(t *testing.T) {
	f, err := New("tree", Options{})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleFormatter{}, f)

	f, err = New(" JSON ", Options{})
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	f, err = New("", Options{})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleFormatter{}, f)

	_, err = New("yaml", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestConsoleFormatCards(t *testing.T) {
	f := NewConsoleFormatter(Options{})

	out, err := f.FormatCards(tcgdex.CardList{
		{ID: "swsh3-136", Name: "Furret"},
		{ID: "base1-4", Name: "Charizard"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Cards (2):")
	assert.Contains(t, out, "├── Furret [swsh3-136]")
	assert.Contains(t, out, "╰── Charizard [base1-4]")

	out, err = f.FormatCards(tcgdex.CardList{{ID: "swsh3-136", Name: "Furret"}})
	require.NoError(t, err)
	assert.Contains(t, out, "Card (1):")

	out, err = f.FormatCards(nil)
	require.NoError(t, err)
	assert.Equal(t, "No cards found\n", out)
}

func TestConsoleFormatCard(t *testing.T) {
	t.Run("without details", func(t *testing.T) {
		out, err := NewConsoleFormatter(Options{}).FormatCard(testCard())
		require.NoError(t, err)

		assert.Contains(t, out, "╰── Furret [swsh3-136]")
		assert.Contains(t, out, "Set: Darkness Ablaze [swsh3] #136/189")
		assert.Contains(t, out, "HP: 110")
		assert.Contains(t, out, "Stage: Stage1 (from Sentret)")
		assert.Contains(t, out, "Attack: Tail Smash 90 (Colorless, Colorless, Colorless)")
		assert.Contains(t, out, "Weakness: Fighting ×2")
		assert.NotContains(t, out, "Illustrator")
		assert.NotContains(t, out, "Resistance")
	})

	t.Run("with details", func(t *testing.T) {
		out, err := NewConsoleFormatter(Options{ShowDetails: true}).FormatCard(testCard())
		require.NoError(t, err)

		assert.Contains(t, out, "Illustrator: tetsuya koizumi")
		assert.Contains(t, out, "Variants: normal, reverse")
		assert.Contains(t, out, "Legal: expanded")
		assert.Contains(t, out, "Image: https://assets.tcgdex.net/en/swsh/swsh3/136/high.png")
	})
}

func TestConsoleFormatSet(t *testing.T) {
	set := &tcgdex.Set{
		ID:          "swsh3",
		Name:        "Darkness Ablaze",
		ReleaseDate: "2020-08-14",
		Serie:       tcgdex.SerieBrief{ID: "swsh", Name: "Sword & Shield"},
		CardCount:   tcgdex.CardCount{Official: 189, Total: 201},
		Cards:       tcgdex.CardList{{ID: "swsh3-1", LocalID: "1", Name: "Butterfree V"}},
	}

	out, err := NewConsoleFormatter(Options{ShowDetails: true}).FormatSet(set)
	require.NoError(t, err)
	assert.Contains(t, out, "Serie: Sword & Shield [swsh]")
	assert.Contains(t, out, "Released: 2020-08-14")
	assert.Contains(t, out, "Cards: 189 (+12 secret)")
	assert.Contains(t, out, "  - 1 Butterfree V")
	assert.Contains(t, out, "Legal: none")
}

func TestConsoleFormatSeries(t *testing.T) {
	f := NewConsoleFormatter(Options{})

	out, err := f.FormatSeries(tcgdex.SerieList{{ID: "swsh", Name: "Sword & Shield"}})
	require.NoError(t, err)
	assert.Contains(t, out, "Serie (1):")
	assert.Contains(t, out, "╰── Sword & Shield [swsh]")

	out, err = f.FormatSerie(&tcgdex.Serie{
		ID:   "swsh",
		Name: "Sword & Shield",
		Sets: tcgdex.SetList{{ID: "swsh1", Name: "Sword & Shield"}, {ID: "swsh3", Name: "Darkness Ablaze"}},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Sets: 2")
	assert.Contains(t, out, "  - Darkness Ablaze [swsh3]")
}

func TestConsoleFormatValues(t *testing.T) {
	f := NewConsoleFormatter(Options{})

	out, err := f.FormatValues("Types", []string{"Colorless", "Fire"})
	require.NoError(t, err)
	assert.Contains(t, out, "Types (2):")
	assert.Equal(t, 2, strings.Count(out, "── "))

	out, err = f.FormatValues("Retreats", nil)
	require.NoError(t, err)
	assert.Equal(t, "No retreats found\n", out)
}

func TestJSONFormatter(t *testing.T) {
	f := NewJSONFormatter()

	out, err := f.FormatCard(testCard())
	require.NoError(t, err)

	var card tcgdex.Card
	require.NoError(t, json.Unmarshal([]byte(out), &card))
	assert.Equal(t, "Furret", card.Name)
	assert.Equal(t, tcgdex.Damage("90"), card.Attacks[0].Damage)

	out, err = f.FormatCards(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	out, err = f.FormatValues("HP", []string{"30", "40"})
	require.NoError(t, err)
	assert.JSONEq(t, `["30", "40"]`, out)
}
