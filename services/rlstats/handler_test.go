package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yannismate/rlstats/libs/ratelimit"
	"github.com/yannismate/rlstats/libs/rest/rlstats"
	"github.com/yannismate/rlstats/libs/rlapi"
)

type memCache struct {
	values map[string]string
}

func newMemCache() *memCache {
	return &memCache{values: map[string]string{}}
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memCache) SetWithTtl(_ context.Context, key string, value string, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memCache) SetKeepTtl(_ context.Context, key string, value string) error {
	m.values[key] = value
	return nil
}

type fakeSource struct {
	records map[string]*rlapi.PlayerRecord
	err     error
	calls   int
}

func (f *fakeSource) FetchPlayer(_ context.Context, platform rlapi.Platform, user string) (*rlapi.PlayerRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[string(platform)+":"+user]
	if !ok {
		return nil, &PlayerNotFoundError{}
	}
	return rec, nil
}

type fakeSnapshots struct {
	players []*rlapi.Player
	err     error
}

func (f *fakeSnapshots) InsertSnapshots(_ context.Context, player *rlapi.Player, _ time.Time) error {
	f.players = append(f.players, player)
	return f.err
}

type fakeApiUsers map[string]*ApiUser

func (f fakeApiUsers) GetApiUserByKey(_ context.Context, apiKey string) (*ApiUser, error) {
	u, ok := f[apiKey]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return u, nil
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func alicePayload() *rlapi.PlayerRecord {
	return &rlapi.PlayerRecord{
		UserName: strp("Alice"),
		PlayerSkills: []rlapi.PlaylistRecord{
			{Playlist: intp(13), Tier: intp(16), Division: intp(2), Skill: intp(1100)},
			{Playlist: intp(4242), Tier: intp(3)},
		},
		SeasonRewards: &rlapi.SeasonRewardsRecord{Level: intp(4), Wins: intp(2)},
	}
}

func newTestServer() (*server, *memCache, *fakeSource, *fakeSnapshots) {
	c := newMemCache()
	src := &fakeSource{records: map[string]*rlapi.PlayerRecord{"epic:Alice": alicePayload()}}
	snaps := &fakeSnapshots{}
	s := &server{
		cache:       c,
		upstream:    src,
		snapshots:   snaps,
		apiUsers:    fakeApiUsers{"key1": {UserId: 1, ApiKey: "key1", RateLimit300: 2}},
		ratelimiter: ratelimit.NewSharedRateLimiter(c),
		breakdown:   rlapi.TierBreakdown{13: {16: {2: {Begin: 1090, End: 1120}}}},
		cacheTtl:    time.Minute,
	}
	return s, c, src, snaps
}

func doGet(h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPlayerHandler_BadRequests(t *testing.T) {
	s, _, _, _ := newTestServer()
	h := s.playerHandler()

	tests := []struct {
		name   string
		target string
	}{
		{"missing platform", "/player?user=Alice"},
		{"unknown platform", "/player?platform=switch&user=Alice"},
		{"missing user", "/player?platform=epic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(h, tt.target, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPlayerHandler_Success(t *testing.T) {
	s, c, src, snaps := newTestServer()

	rec := doGet(s.playerHandler(), "/player?platform=epic&user=Alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res rlstats.GetPlayerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "epic", res.Platform)
	assert.Equal(t, "Alice", res.PlayerId)
	assert.Equal(t, 16, res.HighestTier)
	assert.Equal(t, "Champion I", res.HighestRank)
	assert.True(t, res.SeasonRewards.RewardReady)
	require.Len(t, res.Playlists, 2)

	std, ok := res.Playlist(rlapi.Standard)
	require.True(t, ok)
	assert.Equal(t, "Champion I Div III", std.Rank)
	require.NotNil(t, std.Estimates)

	assert.Equal(t, 4242, res.Playlists[1].Id)
	assert.False(t, res.Playlists[1].Known)

	assert.Equal(t, 1, src.calls)
	assert.Contains(t, c.values, "player:epic:alice")
	require.Len(t, snaps.players, 1)
	assert.Equal(t, "Alice", snaps.players[0].PlayerID)
}

func TestPlayerHandler_ServesFromCache(t *testing.T) {
	s, _, src, _ := newTestServer()
	h := s.playerHandler()

	first := doGet(h, "/player?platform=epic&user=Alice", nil)
	require.Equal(t, http.StatusOK, first.Code)
	second := doGet(h, "/player?platform=EPIC&user=alice", nil)
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, 1, src.calls)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestPlayerHandler_NotFound(t *testing.T) {
	s, _, _, snaps := newTestServer()

	rec := doGet(s.playerHandler(), "/player?platform=steam&user=Nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, snaps.players)
}

func TestPlayerHandler_UpstreamError(t *testing.T) {
	s, _, src, _ := newTestServer()
	src.err = errors.New("connection refused")

	rec := doGet(s.playerHandler(), "/player?platform=epic&user=Alice", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPlayerHandler_MalformedPayload(t *testing.T) {
	s, _, src, _ := newTestServer()
	src.records["epic:Broken"] = &rlapi.PlayerRecord{
		PlayerSkills: []rlapi.PlaylistRecord{{Tier: intp(5)}},
	}

	rec := doGet(s.playerHandler(), "/player?platform=epic&user=Broken", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPlayerHandler_SnapshotFailureStillServes(t *testing.T) {
	s, _, _, snaps := newTestServer()
	snaps.err = errors.New("db down")

	rec := doGet(s.playerHandler(), "/player?platform=epic&user=Alice", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithRateLimit(t *testing.T) {
	s, _, _, _ := newTestServer()
	h := s.withRateLimit(s.playerHandler())
	target := "/player?platform=epic&user=Alice"

	rec := doGet(h, target, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doGet(h, target, map[string]string{"X-API-KEY": "unknown"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doGet(h, target, map[string]string{"X-API-KEY": "key1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("RateLimit-Remaining"))

	rec = doGet(h, target+"&api_key=key1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))

	rec = doGet(h, target, map[string]string{"X-API-KEY": "key1"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
