package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/yannismate/rlstats/libs/rlapi"
)

type StatsDb struct {
	pool *pgxpool.Pool
}

type ApiUser struct {
	UserId       int
	ApiKey       string
	RateLimit300 int
}

func NewStatsDb(ctx context.Context, uri string) (*StatsDb, error) {
	dbPool, err := pgxpool.Connect(ctx, uri)
	if err != nil {
		return nil, err
	}

	return &StatsDb{pool: dbPool}, nil
}

func (db *StatsDb) Close() {
	db.pool.Close()
}

func (db *StatsDb) GetApiUserByKey(ctx context.Context, apiKey string) (*ApiUser, error) {
	var userId int32
	var ratelimit300 int32

	err := db.pool.QueryRow(ctx, "select user_id, api_key, ratelimit_300 from users_api where api_key=$1", apiKey).
		Scan(&userId, &apiKey, &ratelimit300)
	if err != nil {
		return nil, err
	}

	return &ApiUser{
		UserId:       int(userId),
		ApiKey:       apiKey,
		RateLimit300: int(ratelimit300),
	}, nil
}

// GetTierBreakdown loads the skill ranges of every playlist division.
func (db *StatsDb) GetTierBreakdown(ctx context.Context) (rlapi.TierBreakdown, error) {
	rows, err := db.pool.Query(ctx, `select playlist, tier, division, begin_skill, end_skill from tier_breakdown;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tb := rlapi.TierBreakdown{}
	for rows.Next() {
		var playlist, tier, division int32
		var r rlapi.SkillRange
		if err = rows.Scan(&playlist, &tier, &division, &r.Begin, &r.End); err != nil {
			return nil, err
		}
		addRange(tb, int(playlist), int(tier), int(division), r)
	}
	return tb, rows.Err()
}

func addRange(tb rlapi.TierBreakdown, playlist, tier, division int, r rlapi.SkillRange) {
	breakdown, ok := tb[playlist]
	if !ok {
		breakdown = rlapi.Breakdown{}
		tb[playlist] = breakdown
	}
	divs, ok := breakdown[tier]
	if !ok {
		divs = map[int]rlapi.SkillRange{}
		breakdown[tier] = divs
	}
	divs[division] = r
}

// InsertSnapshots stores one row per playlist of the player.
func (db *StatsDb) InsertSnapshots(ctx context.Context, player *rlapi.Player, fetchedAt time.Time) error {
	playlists := player.Playlists()
	if len(playlists) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, pl := range playlists {
		batch.Queue(`insert into playlist_snapshots (platform, player_id, playlist, tier, division, skill, mu, sigma,
			win_streak, matches_played, fetched_at) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
			string(player.Platform), player.PlayerID, pl.Key.Int(), pl.Tier, pl.Division, pl.Skill, pl.Mu, pl.Sigma,
			pl.WinStreak, pl.MatchesPlayed, fetchedAt)
	}

	br := db.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range playlists {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
