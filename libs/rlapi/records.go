package rlapi

// Raw API records. Every field is optional except PlaylistRecord.Playlist;
// nil means the key was absent or null in the payload.

type PlayerRecord struct {
	UserName      *string              `json:"user_name"`
	UserID        *string              `json:"user_id"`
	PlayerSkills  []PlaylistRecord     `json:"player_skills"`
	SeasonRewards *SeasonRewardsRecord `json:"season_rewards"`
}

type PlaylistRecord struct {
	Playlist      *int     `json:"playlist"`
	Tier          *int     `json:"tier"`
	Division      *int     `json:"division"`
	Mu            *float64 `json:"mu"`
	Skill         *int     `json:"skill"`
	Sigma         *float64 `json:"sigma"`
	WinStreak     *int     `json:"win_streak"`
	MatchesPlayed *int     `json:"matches_played"`
	TierMax       *int     `json:"tier_max"`
}

type SeasonRewardsRecord struct {
	Level *int `json:"level"`
	Wins  *int `json:"wins"`
}

// SkillRange is the skill interval [Begin, End] covered by one division.
type SkillRange struct {
	Begin float64
	End   float64
}

// Breakdown maps tier -> division -> skill range for one playlist.
type Breakdown map[int]map[int]SkillRange

// TierBreakdown maps a raw playlist id to its Breakdown.
type TierBreakdown map[int]Breakdown

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
