package rlapi

// SeasonRewards is the season reward progress of a player.
// One reward level covers three competitive tiers; a reward is ready when
// the player has no level yet or their rank is ahead of their level.
type SeasonRewards struct {
	Level       int
	Wins        int
	RewardReady bool
}

func NewSeasonRewards(rec SeasonRewardsRecord, highestTier int) SeasonRewards {
	level := valueOr(rec.Level, 0)
	return SeasonRewards{
		Level:       level,
		Wins:        valueOr(rec.Wins, 0),
		RewardReady: level == 0 || level*3 < highestTier,
	}
}
