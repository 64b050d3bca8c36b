package main

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yannismate/rlstats/libs/rest/rlstats"
	"github.com/yannismate/rlstats/libs/rlapi"
)

var tokenMatcher = regexp.MustCompile(`\$\(((\w|\.)+)\)`)

// formatRankResponse replaces the $(...) tokens of format with the player's
// stats. Tokens it does not know, like $(user) and $(reply), are kept.
func formatRankResponse(response *rlstats.GetPlayerResponse, format string) string {
	return tokenMatcher.ReplaceAllStringFunc(format, func(match string) string {
		token := match[2 : len(match)-1]
		return evalToken(response, token)
	})
}

var tokenExtractor = regexp.MustCompile(`^([12s3hrdnt])\.([rdmwg])(?:\.([ls]))?$`)

func evalToken(response *rlstats.GetPlayerResponse, token string) string {
	switch token {
	case "name":
		return response.UserName
	case "highest":
		return response.HighestRank
	case "highest.s":
		return shortRank(response.HighestTier)
	case "rewards.level":
		return strconv.Itoa(response.SeasonRewards.Level)
	case "rewards.wins":
		return strconv.Itoa(response.SeasonRewards.Wins)
	case "rewards.ready":
		if response.SeasonRewards.RewardReady {
			return "yes"
		}
		return "no"
	}

	matches := tokenExtractor.FindStringSubmatch(token)
	if matches == nil {
		return "$(" + token + ")"
	}

	playlist, _ := rlapi.ParsePlaylistAbbr(matches[1])
	stat := matches[2]
	modifier := matches[3]
	if modifier == "" {
		modifier = "l"
	}

	pl, ok := response.Playlist(playlist)
	if !ok {
		return "[err:" + token + "]"
	}

	switch stat {
	case "r":
		if modifier == "s" {
			return shortPlaylistRank(pl)
		}
		return pl.Rank
	case "d":
		if modifier == "s" {
			return strconv.Itoa(pl.Division + 1)
		}
		div, ok := rlapi.DivisionName(pl.Division)
		if !ok {
			return "?"
		}
		return div
	case "m":
		return strconv.Itoa(pl.Skill)
	case "w":
		return strconv.Itoa(pl.WinStreak)
	case "g":
		return strconv.Itoa(pl.MatchesPlayed)
	}

	return "[err:" + token + "]"
}

var ranksS = [...]string{
	"UR", "B1", "B2", "B3", "S1", "S2", "S3", "G1", "G2", "G3",
	"P1", "P2", "P3", "D1", "D2", "D3", "C1", "C2", "C3", "GC",
}

func shortRank(tier int) string {
	if tier < 0 || tier >= len(ranksS) {
		return "?"
	}
	return ranksS[tier]
}

func shortPlaylistRank(pl *rlstats.Playlist) string {
	rank := shortRank(pl.Tier)
	if rank == "?" || pl.Tier == 0 || pl.Tier == pl.TierMax {
		return rank
	}
	return rank + " D" + strconv.Itoa(pl.Division+1)
}

// buildReply fills in the caller and strips the $(reply) marker, reporting
// whether the message should be sent as a reply.
func buildReply(replyStr string, userName string) (string, bool) {
	replyStr = strings.Replace(replyStr, "$(user)", userName, -1)
	asReply := strings.HasPrefix(replyStr, "$(reply)")
	replyStr = strings.TrimPrefix(replyStr, "$(reply)")
	replyStr = strings.TrimLeft(replyStr, "/ ")
	return substr(replyStr, 0, 500), asReply
}

func substr(input string, start int, length int) string {
	asRunes := []rune(input)

	if start >= len(asRunes) {
		return ""
	}

	if start+length > len(asRunes) {
		length = len(asRunes) - start
	}

	return string(asRunes[start : start+length])
}
