package tcgdex

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests against the public API. Enable with TCGDEX_LIVE=1.
func liveClient(t *testing.T) *Client {
	t.Helper()
	if testing.Short() || os.Getenv("TCGDEX_LIVE") != "1" {
		t.Skip("set TCGDEX_LIVE=1 to run tests against api.tcgdex.net")
	}

	client, err := NewClient(zerolog.Nop(), WithTimeout(15*time.Second))
	require.NoError(t, err)
	return client
}

func TestLiveSet(t *testing.T) {
	client := liveClient(t)

	set, err := client.Sets().Get(context.Background(), "swsh3")
	require.NoError(t, err)
	assert.Equal(t, "Darkness Ablaze", set.Name)
	assert.Equal(t, "2020-08-14", set.ReleaseDate)
	assert.Equal(t, "Sword & Shield", set.Serie.Name)
	assert.NotEmpty(t, set.Cards)
}

func TestLiveCardNotFound(t *testing.T) {
	client := liveClient(t)

	_, err := client.Cards().Get(context.Background(), "sih3-136")
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok, "expected a problem document, got %v", err)
	assert.Equal(t, "https://tcgdex.dev/errors/not-found", apiErr.Type)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "/en/cards/sih3-136", apiErr.Endpoint)
	assert.Equal(t, "GET", apiErr.Method)
}

func TestLiveFilteredCards(t *testing.T) {
	client := liveClient(t)

	cards, err := client.Cards().List(context.Background(),
		NewQuery().WithFiltering("name=furret").WithSorting("localId", Asc).WithPagination(1, 5))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(cards), 5)
}

func TestLiveValues(t *testing.T) {
	client := liveClient(t)

	types, err := client.Types().List(context.Background())
	require.NoError(t, err)
	assert.Contains(t, types, "Fire")

	hp, err := client.HP().List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, hp)
}
