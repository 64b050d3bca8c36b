package rlapi

import (
	"errors"
	"fmt"
	"sort"
)

var ErrMissingPlaylist = errors.New("playlist record has no playlist id")

// Player is a Rocket League player built from one API response.
//
// PlayerID equals UserName except on platforms with separate account ids
// (Steam). The highest tier and the season rewards are recomputed whenever a
// playlist is added.
type Player struct {
	Platform      Platform
	UserName      string
	PlayerID      string
	TierBreakdown TierBreakdown

	playlists     map[PlaylistID]*Playlist
	highestTier   int
	rewardsRecord SeasonRewardsRecord
	seasonRewards SeasonRewards
}

func NewPlayer(platform Platform, rec PlayerRecord, tierBreakdown TierBreakdown) (*Player, error) {
	userName := valueOr(rec.UserName, "")
	p := &Player{
		Platform:      platform,
		UserName:      userName,
		PlayerID:      valueOr(rec.UserID, userName),
		TierBreakdown: tierBreakdown,
		playlists:     make(map[PlaylistID]*Playlist, len(rec.PlayerSkills)),
	}
	if p.TierBreakdown == nil {
		p.TierBreakdown = TierBreakdown{}
	}
	if rec.SeasonRewards != nil {
		p.rewardsRecord = *rec.SeasonRewards
	}

	for i, skill := range rec.PlayerSkills {
		if err := p.insertPlaylist(skill); err != nil {
			return nil, fmt.Errorf("player_skills[%d]: %w", i, err)
		}
	}
	p.refreshAggregates()
	return p, nil
}

// AddPlaylist builds a Playlist from rec and stores it, replacing any playlist
// with the same id. rec is not modified.
func (p *Player) AddPlaylist(rec PlaylistRecord) error {
	if err := p.insertPlaylist(rec); err != nil {
		return err
	}
	p.refreshAggregates()
	return nil
}

func (p *Player) insertPlaylist(rec PlaylistRecord) error {
	if rec.Playlist == nil {
		return ErrMissingPlaylist
	}
	raw := *rec.Playlist
	id := ResolvePlaylistID(raw)
	p.playlists[id] = NewPlaylist(id, p.TierBreakdown[raw], rec)
	return nil
}

func (p *Player) refreshAggregates() {
	highest := 0
	for _, pl := range p.playlists {
		if pl.Tier > highest {
			highest = pl.Tier
		}
	}
	p.highestTier = highest
	p.seasonRewards = NewSeasonRewards(p.rewardsRecord, highest)
}

// Playlist returns the playlist stored under id. A raw id of a known playlist
// finds the same entry as its KnownPlaylist form.
func (p *Player) Playlist(id PlaylistID) (*Playlist, bool) {
	pl, ok := p.playlists[ResolvePlaylistID(id.Int())]
	return pl, ok
}

// Playlists returns the player's playlists ordered by playlist id.
func (p *Player) Playlists() []*Playlist {
	out := make([]*Playlist, 0, len(p.playlists))
	for _, pl := range p.playlists {
		out = append(out, pl)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.Int() < out[j].Key.Int()
	})
	return out
}

func (p *Player) HighestTier() int {
	return p.highestTier
}

func (p *Player) SeasonRewards() SeasonRewards {
	return p.seasonRewards
}
