package rlapi

import "math"

const (
	defaultMu      = 25.0
	defaultSigma   = 8.333
	defaultTierMax = 19
)

var ranks = [...]string{
	"Unranked",
	"Bronze I", "Bronze II", "Bronze III",
	"Silver I", "Silver II", "Silver III",
	"Gold I", "Gold II", "Gold III",
	"Platinum I", "Platinum II", "Platinum III",
	"Diamond I", "Diamond II", "Diamond III",
	"Champion I", "Champion II", "Champion III",
	"Grand Champion",
}

var divisions = [...]string{"I", "II", "III", "IV"}

// RankName returns the display name of tier, false when tier has no name.
func RankName(tier int) (string, bool) {
	if tier < 0 || tier >= len(ranks) {
		return "", false
	}
	return ranks[tier], true
}

// DivisionName returns the roman label of a zero based division.
func DivisionName(division int) (string, bool) {
	if division < 0 || division >= len(divisions) {
		return "", false
	}
	return divisions[division], true
}

// Playlist is the rank snapshot of a player on one playlist.
type Playlist struct {
	Key           PlaylistID
	Tier          int
	Division      int
	Mu            float64
	Skill         int
	Sigma         float64
	WinStreak     int
	MatchesPlayed int
	TierMax       int
	Breakdown     Breakdown
	TierEstimates TierEstimates
}

func NewPlaylist(id PlaylistID, breakdown Breakdown, rec PlaylistRecord) *Playlist {
	p := &Playlist{
		Key:           id,
		Tier:          valueOr(rec.Tier, 0),
		Division:      valueOr(rec.Division, 0),
		Mu:            valueOr(rec.Mu, defaultMu),
		Sigma:         valueOr(rec.Sigma, defaultSigma),
		WinStreak:     valueOr(rec.WinStreak, 0),
		MatchesPlayed: valueOr(rec.MatchesPlayed, 0),
		TierMax:       valueOr(rec.TierMax, defaultTierMax),
		Breakdown:     breakdown,
	}
	// skill falls back to the resolved mu
	p.Skill = valueOr(rec.Skill, int(math.Round(p.Mu*20+100)))
	if p.Breakdown == nil {
		p.Breakdown = Breakdown{}
	}
	p.TierEstimates = EstimateTiers(p)
	return p
}

// String returns the rank, e.g. "Champion I Div III". Tiers without
// divisions (unranked and the top tier) return the bare rank name.
func (p *Playlist) String() string {
	rank, ok := RankName(p.Tier)
	if !ok {
		return "Unknown"
	}
	if p.Tier == 0 || p.Tier == p.TierMax {
		return rank
	}
	div, ok := DivisionName(p.Division)
	if !ok {
		return "Unknown"
	}
	return rank + " Div " + div
}
