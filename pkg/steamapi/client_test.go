package steamapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zerolog.Nop())
}

func TestPlayerBans(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, bansPath, r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		assert.Equal(t, "1,2,3", r.URL.Query().Get("steamids"))
		fmt.Fprint(w, `{"players":[
			{"SteamId":"1","VACBanned":true,"NumberOfVACBans":1,"DaysSinceLastBan":40,"NumberOfGameBans":0,"EconomyBan":"none"},
			{"SteamId":"2","VACBanned":false,"NumberOfGameBans":0,"EconomyBan":"probation"}
		]}`)
	})

	bans, err := c.PlayerBans(context.Background(), "k", []string{"1", "2", "3", "2", ""})
	require.NoError(t, err)
	require.Len(t, bans, 2)
	assert.True(t, bans["1"].VACBanned)
	assert.Equal(t, 40, bans["1"].DaysSinceLastBan)
	assert.Equal(t, "probation", bans["2"].EconomyBan)
	_, found := bans["3"]
	assert.False(t, found)
}

func TestPlayerSummaries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, summariesPath, r.URL.Path)
		fmt.Fprint(w, `{"response":{"players":[{"steamid":"76561198000000001","personaname":"Alice"}]}}`)
	})

	got, err := c.PlayerSummaries(context.Background(), "k", []string{"76561198000000001"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", got["76561198000000001"].PersonaName)
}

func TestMissingKeyMakesNoRequest(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := c.PlayerBans(context.Background(), " ", []string{"1"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestEmptyBatchMakesNoRequest(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	got, err := c.PlayerBans(context.Background(), "k", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestLargeBatchesAreSplit(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		ids := strings.Split(r.URL.Query().Get("steamids"), ",")
		assert.LessOrEqual(t, len(ids), MaxBatch)
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf(`{"SteamId":%q,"EconomyBan":"none"}`, id))
		}
		fmt.Fprintf(w, `{"players":[%s]}`, strings.Join(parts, ","))
	})

	ids := make([]string, 0, 250)
	for i := 0; i < 250; i++ {
		ids = append(ids, fmt.Sprint(76561198000000000+i))
	}
	got, err := c.PlayerBans(context.Background(), "k", ids)
	require.NoError(t, err)
	assert.Len(t, got, 250)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPErrorsAreWrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	_, err := c.PlayerBans(context.Background(), "secret-key", []string{"1"})
	var re *RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusForbidden, re.StatusCode)
	assert.Equal(t, "GetPlayerBans", re.Endpoint)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestMalformedBodyIsRequestError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>`)
	})

	_, err := c.PlayerSummaries(context.Background(), "k", []string{"1"})
	var re *RequestError
	assert.True(t, errors.As(err, &re))
}

func TestTransportErrorHidesKey(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, zerolog.Nop())
	_, err := c.PlayerBans(context.Background(), "secret-key", []string{"1"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-key")
}
