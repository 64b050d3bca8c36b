package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yannismate/rlstats/libs/rest/rlstats"
	"github.com/yannismate/rlstats/libs/rlapi"
)

type fakeClient struct {
	calls    map[string]int
	failures int
}

func (f *fakeClient) GetPlayer(_ context.Context, platform string, user string) (*rlstats.GetPlayerResponse, error) {
	f.calls[user]++
	switch user {
	case "Nobody":
		return nil, &rlstats.PlayerNotFoundError{}
	case "Flaky":
		if f.calls[user] <= f.failures {
			return nil, errors.New("connection reset")
		}
	}
	return &rlstats.GetPlayerResponse{
		Platform:      platform,
		UserName:      user,
		PlayerId:      "id-" + user,
		HighestTier:   15,
		HighestRank:   "Diamond III",
		SeasonRewards: rlstats.SeasonRewards{Level: 4, Wins: 2, RewardReady: true},
		Playlists: []rlstats.Playlist{
			{Id: int(rlapi.Standard), Known: true, Rank: "Diamond III Div I", Tier: 15, Skill: 1100},
		},
	}, nil
}

func newTestSeeder(client playerClient, playlist rlapi.PlaylistKey) *seeder {
	return &seeder{client: client, playlist: playlist, maxRetries: 2}
}

func TestRun(t *testing.T) {
	client := &fakeClient{calls: map[string]int{}}
	in := strings.NewReader("platform,user\nepic,Alice\nps,Nobody\nswitch,Carl\nsteam\n")
	var out bytes.Buffer

	rows, err := newTestSeeder(client, rlapi.Standard).run(context.Background(), in, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	expected := "platform,user,player_id,highest_tier,rank,skill,reward_level,reward_ready\n" +
		"epic,Alice,id-Alice,15,Diamond III Div I,1100,4,true\n" +
		"ps4,Nobody,Not found,,,,,\n" +
		"switch,Carl,Invalid platform,,,,,\n"
	assert.Equal(t, expected, out.String())
	assert.Equal(t, 1, client.calls["Nobody"])
}

func TestRun_MissingPlaylist(t *testing.T) {
	client := &fakeClient{calls: map[string]int{}}
	var out bytes.Buffer

	_, err := newTestSeeder(client, rlapi.Hoops).run(context.Background(), strings.NewReader("p,u\nxbox,Bob\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "xboxone,Bob,id-Bob,15,No data,,4,true\n")
}

func TestFetch_Retries(t *testing.T) {
	client := &fakeClient{calls: map[string]int{}, failures: 2}
	res, err := newTestSeeder(client, rlapi.Standard).fetch(context.Background(), "epic", "Flaky")
	require.NoError(t, err)
	assert.Equal(t, "id-Flaky", res.PlayerId)
	assert.Equal(t, 3, client.calls["Flaky"])

	client = &fakeClient{calls: map[string]int{}, failures: 5}
	_, err = newTestSeeder(client, rlapi.Standard).fetch(context.Background(), "epic", "Flaky")
	assert.Error(t, err)
	assert.Equal(t, 3, client.calls["Flaky"])
}
