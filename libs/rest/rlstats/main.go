package rlstats

import "github.com/yannismate/rlstats/libs/rlapi"

type GetPlayerResponse struct {
	Platform      string        `json:"platform"`
	UserName      string        `json:"user_name"`
	PlayerId      string        `json:"player_id"`
	HighestTier   int           `json:"highest_tier"`
	HighestRank   string        `json:"highest_rank"`
	SeasonRewards SeasonRewards `json:"season_rewards"`
	Playlists     []Playlist    `json:"playlists"`
}

type SeasonRewards struct {
	Level       int  `json:"level"`
	Wins        int  `json:"wins"`
	RewardReady bool `json:"reward_ready"`
}

type Playlist struct {
	Id            int        `json:"id"`
	Name          string     `json:"name"`
	Known         bool       `json:"known"`
	Rank          string     `json:"rank"`
	Tier          int        `json:"tier"`
	Division      int        `json:"division"`
	TierMax       int        `json:"tier_max"`
	Skill         int        `json:"skill"`
	Mu            float64    `json:"mu"`
	Sigma         float64    `json:"sigma"`
	WinStreak     int        `json:"win_streak"`
	MatchesPlayed int        `json:"matches_played"`
	Estimates     *Estimates `json:"estimates,omitempty"`
}

type Estimates struct {
	Tier     *int `json:"tier,omitempty"`
	Division *int `json:"division,omitempty"`
	DivDown  *int `json:"div_down,omitempty"`
	DivUp    *int `json:"div_up,omitempty"`
	TierDown *int `json:"tier_down,omitempty"`
	TierUp   *int `json:"tier_up,omitempty"`
}

func FromPlayer(p *rlapi.Player) GetPlayerResponse {
	highestRank, ok := rlapi.RankName(p.HighestTier())
	if !ok {
		highestRank = "Unknown"
	}
	rewards := p.SeasonRewards()

	res := GetPlayerResponse{
		Platform:    string(p.Platform),
		UserName:    p.UserName,
		PlayerId:    p.PlayerID,
		HighestTier: p.HighestTier(),
		HighestRank: highestRank,
		SeasonRewards: SeasonRewards{
			Level:       rewards.Level,
			Wins:        rewards.Wins,
			RewardReady: rewards.RewardReady,
		},
		Playlists: make([]Playlist, 0),
	}

	for _, pl := range p.Playlists() {
		res.Playlists = append(res.Playlists, fromPlaylist(pl))
	}
	return res
}

func fromPlaylist(pl *rlapi.Playlist) Playlist {
	out := Playlist{
		Id:            pl.Key.Int(),
		Name:          pl.Key.String(),
		Known:         pl.Key.IsKnown(),
		Rank:          pl.String(),
		Tier:          pl.Tier,
		Division:      pl.Division,
		TierMax:       pl.TierMax,
		Skill:         pl.Skill,
		Mu:            pl.Mu,
		Sigma:         pl.Sigma,
		WinStreak:     pl.WinStreak,
		MatchesPlayed: pl.MatchesPlayed,
	}
	est := pl.TierEstimates
	if est.Tier != nil {
		out.Estimates = &Estimates{
			Tier:     est.Tier,
			Division: est.Division,
			DivDown:  est.DivDown,
			DivUp:    est.DivUp,
			TierDown: est.TierDown,
			TierUp:   est.TierUp,
		}
	}
	return out
}

// Playlist returns the entry for a known playlist key.
func (r *GetPlayerResponse) Playlist(key rlapi.PlaylistKey) (*Playlist, bool) {
	for i := range r.Playlists {
		if r.Playlists[i].Known && r.Playlists[i].Id == int(key) {
			return &r.Playlists[i], true
		}
	}
	return nil, false
}
