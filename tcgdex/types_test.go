package tcgdex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDamageUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Damage
		wantErr  bool
	}{
		{"number", `90`, "90", false},
		{"string with modifier", `"30+"`, "30+", false},
		{"multiplier", `"20×"`, "20×", false},
		{"null", `null`, "", false},
		{"object", `{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Damage
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestCardBriefHelpers(t *testing.T) {
	brief := CardBrief{ID: "swsh3-136", Name: "Furret", Image: "https://assets.tcgdex.net/en/swsh/swsh3/136"}

	assert.Equal(t, "swsh3", brief.SetID())
	assert.Equal(t, "136", brief.LocalNumber())
	assert.Equal(t, "https://assets.tcgdex.net/en/swsh/swsh3/136/high.png", brief.ImageURL("", ""))
	assert.Equal(t, "https://assets.tcgdex.net/en/swsh/swsh3/136/low.webp", brief.ImageURL("low", "webp"))

	brief.LocalID = "TG01"
	assert.Equal(t, "TG01", brief.LocalNumber())

	assert.Empty(t, CardBrief{ID: "x"}.ImageURL("high", "png"))
}

func TestSplitCardID(t *testing.T) {
	tests := []struct {
		id    string
		set   string
		local string
		ok    bool
	}{
		{"swsh3-136", "swsh3", "136", true},
		{"sm7.5-1", "sm7.5", "1", true},
		{"swsh12.5-GG01", "swsh12.5", "GG01", true},
		{"A-B-C", "A-B", "C", true},
		{"nodash", "", "", false},
		{"-1", "", "", false},
		{"swsh3-", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			set, local, ok := splitCardID(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.set, set)
			assert.Equal(t, tt.local, local)
		})
	}
}

func TestRecordIsEmpty(t *testing.T) {
	var nilCard *Card
	assert.True(t, nilCard.IsEmpty())
	assert.True(t, (&Card{}).IsEmpty())
	assert.False(t, (&Card{ID: "swsh3-136"}).IsEmpty())

	var nilSet *Set
	assert.True(t, nilSet.IsEmpty())
	assert.False(t, (&Set{Name: "Darkness Ablaze"}).IsEmpty())

	var nilSerie *Serie
	assert.True(t, nilSerie.IsEmpty())
	assert.False(t, (&Serie{ID: "swsh"}).IsEmpty())

	assert.True(t, CardList(nil).IsEmpty())
	assert.False(t, SetList{{ID: "swsh3"}}.IsEmpty())
	assert.True(t, SerieList{}.IsEmpty())
}

func TestSetDecode(t *testing.T) {
	body := `{
		"id": "swsh3",
		"name": "Darkness Ablaze",
		"cardCount": {"total": 201, "official": 189, "normal": 100, "reverse": 150, "holo": 50, "firstEd": 0},
		"serie": {"id": "swsh", "name": "Sword & Shield"},
		"releaseDate": "2020-08-14",
		"legal": {"standard": false, "expanded": true},
		"cards": [{"id": "swsh3-1", "localId": "1", "name": "Butterfree V"}]
	}`

	var set Set
	require.NoError(t, json.Unmarshal([]byte(body), &set))
	assert.Equal(t, "Sword & Shield", set.Serie.Name)
	assert.Equal(t, "2020-08-14", set.ReleaseDate)
	assert.True(t, set.Legal.Expanded)
	assert.Len(t, set.Cards, 1)

	brief := set.Brief()
	assert.Equal(t, CardCountBrief{Total: 201, Official: 189}, brief.CardCount)
}

func TestCardBrief(t *testing.T) {
	card := &Card{ID: "swsh3-136", LocalID: "136", Name: "Furret", HP: 110}
	assert.Equal(t, CardBrief{ID: "swsh3-136", LocalID: "136", Name: "Furret"}, card.Brief())
}
