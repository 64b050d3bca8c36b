package rlstats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yannismate/rlstats/libs/rlapi"
)

func TestFromPlayer(t *testing.T) {
	payload := `{
		"user_name": "Alice",
		"user_id": "76561198000000000",
		"player_skills": [
			{"playlist": 13, "tier": 16, "division": 2, "skill": 1100},
			{"playlist": 9999, "tier": 3},
			{"playlist": 11, "tier": 19}
		],
		"season_rewards": {"level": 5, "wins": 7}
	}`
	var rec rlapi.PlayerRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))

	tb := rlapi.TierBreakdown{13: {16: {2: {Begin: 1090, End: 1120}}}}
	p, err := rlapi.NewPlayer(rlapi.Steam, rec, tb)
	require.NoError(t, err)

	res := FromPlayer(p)
	assert.Equal(t, "steam", res.Platform)
	assert.Equal(t, "Alice", res.UserName)
	assert.Equal(t, "76561198000000000", res.PlayerId)
	assert.Equal(t, 19, res.HighestTier)
	assert.Equal(t, "Grand Champion", res.HighestRank)
	assert.Equal(t, SeasonRewards{Level: 5, Wins: 7, RewardReady: true}, res.SeasonRewards)

	require.Len(t, res.Playlists, 3)
	assert.Equal(t, "doubles", res.Playlists[0].Name)
	assert.Equal(t, "Grand Champion", res.Playlists[0].Rank)
	assert.Nil(t, res.Playlists[0].Estimates)

	std, ok := res.Playlist(rlapi.Standard)
	require.True(t, ok)
	assert.Equal(t, "Champion I Div III", std.Rank)
	require.NotNil(t, std.Estimates)
	require.NotNil(t, std.Estimates.DivUp)
	assert.Equal(t, 21, *std.Estimates.DivUp)

	raw := res.Playlists[2]
	assert.Equal(t, 9999, raw.Id)
	assert.Equal(t, "9999", raw.Name)
	assert.False(t, raw.Known)

	_, ok = res.Playlist(rlapi.Hoops)
	assert.False(t, ok)
}

func TestFromPlayer_Empty(t *testing.T) {
	p, err := rlapi.NewPlayer(rlapi.Epic, rlapi.PlayerRecord{}, nil)
	require.NoError(t, err)

	res := FromPlayer(p)
	assert.Equal(t, "Unranked", res.HighestRank)
	assert.NotNil(t, res.Playlists)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"playlists":[]`)
}
