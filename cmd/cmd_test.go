package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blang/semver"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/tcgdex/config"
	"github.com/s0up4200/tcgdex/filter"
	"github.com/s0up4200/tcgdex/formatter"
	"github.com/s0up4200/tcgdex/tcgdex"
)

var testCards = map[string]map[string]any{
	"swsh3-136": {
		"id": "swsh3-136", "localId": "136", "name": "Furret", "category": "Pokemon", "hp": 110,
		"types": []string{"Colorless"}, "set": map[string]any{"id": "swsh3", "name": "Darkness Ablaze"},
	},
	"swsh3-25": {
		"id": "swsh3-25", "localId": "25", "name": "Charizard V", "category": "Pokemon", "hp": 220,
		"types": []string{"Fire"}, "set": map[string]any{"id": "swsh3", "name": "Darkness Ablaze"},
	},
}

// setupTestApp points the package globals at a fake TCGdex server
func setupTestApp(t *testing.T) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/en/cards", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery == "name=nothing" {
			_ = json.NewEncoder(w).Encode([]any{})
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "swsh3-136", "localId": "136", "name": "Furret"},
			{"id": "swsh3-25", "localId": "25", "name": "Charizard V"},
		})
	})
	mux.HandleFunc("GET /v2/en/cards/{id}", func(w http.ResponseWriter, r *http.Request) {
		card, ok := testCards[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"type": "https://tcgdex.dev/errors/not-found", "title": "The resource was not found",
				"status": 404, "endpoint": r.URL.Path, "method": "GET",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(card)
	})
	mux.HandleFunc("GET /v2/en/hp", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]int{30, 40, 50})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var err error
	cfg, err = config.Load("")
	require.NoError(t, err)
	logger = zerolog.Nop()
	client, err = tcgdex.NewClient(logger, tcgdex.WithBaseURL(server.URL+"/v2"))
	require.NoError(t, err)
	output, err = formatter.New("tree", formatter.Options{})
	require.NoError(t, err)
	filters = filter.NewManager()
	t.Cleanup(func() { _ = filters.Close(context.Background()) })
	require.NoError(t, filters.RegisterFilter("heavy", "HP >= 200"))

	cardFlags = listFlags{}
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestListFlagsSpec(t *testing.T) {
	tests := []struct {
		name    string
		flags   listFlags
		want    string
		wantErr bool
	}{
		{
			name:  "empty",
			flags: listFlags{order: "ASC"},
			want:  "",
		},
		{
			name:  "filters",
			flags: listFlags{terms: []string{"name=furret", "hp=110"}, order: "ASC"},
			want:  "name=furret&hp=110",
		},
		{
			name:  "sorting and pagination",
			flags: listFlags{sort: "name", order: "desc", page: 2, perPage: 10},
			want:  "pagination:page=2&pagination:itemsPerPage=10&sort:field=name&sort:order=DESC",
		},
		{
			name:    "invalid order",
			flags:   listFlags{sort: "name", order: "sideways"},
			wantErr: true,
		},
		{
			name:    "page without size",
			flags:   listFlags{page: 2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := tt.flags.spec()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tcgdex.ByFilter{}, spec)
			assert.Equal(t, tt.want, spec.Encode())
		})
	}
}

func TestListFlagsFilter(t *testing.T) {
	setupTestApp(t)

	f, err := (&listFlags{}).filter()
	require.NoError(t, err)
	assert.Nil(t, f)

	cfg.Filter.DefaultExpression = "HP > 100"
	f, err = (&listFlags{}).filter()
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "HP > 100", f.Expression())

	f, err = (&listFlags{preset: "heavy"}).filter()
	require.NoError(t, err)
	assert.Equal(t, "HP >= 200", f.Expression())

	_, err = (&listFlags{preset: "missing"}).filter()
	assert.ErrorIs(t, err, filter.ErrUnknownFilter)
}

func TestRunCardsList(t *testing.T) {
	setupTestApp(t)
	cmd, out := testCommand()

	require.NoError(t, runCards(cmd, nil))
	assert.Contains(t, out.String(), "Cards (2)")
	assert.Contains(t, out.String(), "Furret [swsh3-136]")
}

func TestRunCardsBriefWhere(t *testing.T) {
	setupTestApp(t)
	cmd, out := testCommand()
	cardFlags.where = `name=furret`

	require.NoError(t, runCards(cmd, nil))
	assert.Contains(t, out.String(), "Card (1)")
	assert.NotContains(t, out.String(), "Charizard")
}

func TestRunCardsWarnsOnDetailField(t *testing.T) {
	setupTestApp(t)
	var logs bytes.Buffer
	logger = zerolog.New(&logs)
	cmd, out := testCommand()
	cardFlags.where = "HP > 100"

	require.NoError(t, runCards(cmd, nil))
	assert.Equal(t, "No cards found\n", out.String())
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), `"fields":["HP"]`)
}

func TestRunCardsDetailsPreset(t *testing.T) {
	setupTestApp(t)
	cmd, out := testCommand()
	cardFlags.details = true
	cardFlags.preset = "heavy"

	require.NoError(t, runCards(cmd, nil))
	assert.Contains(t, out.String(), "Charizard V [swsh3-25]")
	assert.Contains(t, out.String(), "HP: 220")
	assert.NotContains(t, out.String(), "Furret")
}

func TestRunCardsEmpty(t *testing.T) {
	setupTestApp(t)
	cmd, out := testCommand()
	cardFlags.terms = []string{"name=nothing"}

	require.NoError(t, runCards(cmd, nil))
	assert.Equal(t, "No cards found\n", out.String())
}

func TestRunCardsByID(t *testing.T) {
	setupTestApp(t)
	cmd, out := testCommand()
	cardFlags.id = "swsh3-136"

	require.NoError(t, runCards(cmd, nil))
	assert.Contains(t, out.String(), "Furret [swsh3-136]")
	assert.Contains(t, out.String(), "Set: Darkness Ablaze [swsh3]")
}

func TestRunCardsNotFound(t *testing.T) {
	setupTestApp(t)
	cmd, _ := testCommand()
	cardFlags.id = "nope-1"

	err := runCards(cmd, nil)
	require.Error(t, err)
	assert.True(t, tcgdex.IsAPIError(err))
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "/v2/en/cards/nope-1")
}

func TestIntValuesCommand(t *testing.T) {
	setupTestApp(t)

	valuesHP := intValuesCmd("hp", "HP", "List HP", (*tcgdex.Client).HP)
	var buf bytes.Buffer
	valuesHP.SetOut(&buf)
	valuesHP.SetContext(context.Background())

	require.NoError(t, valuesHP.RunE(valuesHP, nil))
	assert.Contains(t, buf.String(), "HP (3)")
	assert.Contains(t, buf.String(), "╰── 50")
}

func TestRunPresets(t *testing.T) {
	setupTestApp(t)
	require.NoError(t, filters.RegisterFilter("fire", `hasType("Fire")`))
	presetTerms = []string{"name=char"}
	t.Cleanup(func() { presetTerms = nil })

	cmd, out := testCommand()
	require.NoError(t, runPresets(cmd, nil))
	assert.Contains(t, out.String(), "Preset matches (2)")
	assert.Contains(t, out.String(), "fire: 1/2 (hasType(\"Fire\"))")
	assert.Contains(t, out.String(), "heavy: 1/2 (HP >= 200)")

	cmd, out = testCommand()
	require.NoError(t, runPresets(cmd, []string{"heavy"}))
	assert.Contains(t, out.String(), "Preset matches (1)")
	assert.NotContains(t, out.String(), "fire:")

	cmd, _ = testCommand()
	err := runPresets(cmd, []string{"missing"})
	assert.ErrorIs(t, err, filter.ErrUnknownFilter)
}

func TestIsNewer(t *testing.T) {
	current := semver.MustParse("1.2.0")

	assert.True(t, isNewer("v1.3.0", current))
	assert.True(t, isNewer("1.2.1", current))
	assert.False(t, isNewer("v1.2.0", current))
	assert.False(t, isNewer("1.1.9", current))
	assert.False(t, isNewer("not-a-version", current))
}

func TestItoa(t *testing.T) {
	assert.Equal(t, []string{"30", "120"}, itoa([]int{30, 120}))
	assert.Empty(t, itoa(nil))
}
