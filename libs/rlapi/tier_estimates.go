package rlapi

import (
	"math"
	"sort"
)

// TierEstimates holds the estimated rank of a playlist and the skill points
// needed to move a division or tier up or down. A nil field means the value
// could not be estimated from the playlist's breakdown.
type TierEstimates struct {
	Tier     *int
	Division *int
	DivDown  *int
	DivUp    *int
	TierDown *int
	TierUp   *int
}

func EstimateTiers(p *Playlist) TierEstimates {
	var est TierEstimates
	if len(p.Breakdown) == 0 {
		return est
	}

	tier, division := estimateCurrent(p)
	est.Tier = &tier
	est.Division = &division
	if tier == 0 {
		return est
	}

	skill := float64(p.Skill)
	atTop := tier == p.TierMax

	downDiv := division
	if atTop {
		downDiv = 0
	}
	if !(tier == 1 && downDiv == 0) {
		if r, ok := p.Breakdown.lookup(tier, downDiv); ok {
			est.DivDown = roundedPtr(r.Begin - skill - 1)
		}
	}
	if tier > 1 {
		if r, ok := p.Breakdown.lookup(tier, 0); ok {
			est.TierDown = roundedPtr(r.Begin - skill - 1)
		}
	}
	if atTop {
		return est
	}

	if r, ok := p.Breakdown.lookup(tier, division); ok {
		est.DivUp = roundedPtr(r.End - skill + 1)
	}
	if top, ok := p.Breakdown.topDivision(tier); ok {
		r := p.Breakdown[tier][top]
		est.TierUp = roundedPtr(r.End - skill + 1)
	}
	return est
}

func estimateCurrent(p *Playlist) (int, int) {
	if p.Tier != 0 {
		return p.Tier, p.Division
	}
	// Touching ranges resolve to the lowest tier and division.
	skill := float64(p.Skill)
	for _, tier := range sortedKeys(p.Breakdown) {
		divs := p.Breakdown[tier]
		for _, div := range sortedKeys(divs) {
			if r := divs[div]; r.Begin <= skill && skill <= r.End {
				return tier, div
			}
		}
	}
	return 0, 0
}

func sortedKeys[M ~map[int]V, V any](m M) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (b Breakdown) lookup(tier, division int) (SkillRange, bool) {
	divs, ok := b[tier]
	if !ok {
		return SkillRange{}, false
	}
	r, ok := divs[division]
	return r, ok
}

func (b Breakdown) topDivision(tier int) (int, bool) {
	divs, ok := b[tier]
	if !ok || len(divs) == 0 {
		return 0, false
	}
	top := -1
	for div := range divs {
		if div > top {
			top = div
		}
	}
	return top, true
}

func roundedPtr(v float64) *int {
	i := int(math.Round(v))
	return &i
}
