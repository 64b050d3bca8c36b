package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tkanos/gonfig"
	"github.com/yannismate/rlstats/libs/rest/rlstats"
	"github.com/yannismate/rlstats/libs/rlapi"
)

var configuration = Configuration{}

var outHeader = []string{"platform", "user", "player_id", "highest_tier", "rank", "skill", "reward_level", "reward_ready"}

func main() {
	err := gonfig.GetConf("config.json", &configuration)
	if err != nil {
		log.WithField("event", "load_config").Fatal(err)
		return
	}
	if configuration.RetryPauseSeconds <= 0 {
		configuration.RetryPauseSeconds = 20
	}
	if configuration.MaxRetries <= 0 {
		configuration.MaxRetries = 3
	}

	playlistStr := flag.String("playlist", "3", "Playlist (1, 2, s, 3, h, r, d, n, t)")
	inName := flag.String("in", "", "-in [in.csv]")
	outName := flag.String("out", "out.csv", "-out [out.csv]")

	flag.Parse()

	playlist, ok := rlapi.ParsePlaylistAbbr(*playlistStr)
	if !ok {
		log.Fatalf("Unknown playlist %v", *playlistStr)
		return
	}

	if *inName == "" {
		log.Fatal("Usage: seeding -in [file.csv]")
		return
	}

	inFile, err := os.Open(*inName)
	if err != nil {
		log.Fatal("Could not open file! ", err)
		return
	}
	defer inFile.Close()

	outFile, err := os.Create(*outName)
	if err != nil {
		log.Fatal("Could not create output file! ", err)
		return
	}
	defer outFile.Close()

	s := &seeder{
		client:     rlstats.NewClient(configuration.RlStatsServiceUrl, "rlstats/services/seeding", configuration.RlStatsApiKey),
		playlist:   playlist,
		retryPause: time.Duration(configuration.RetryPauseSeconds) * time.Second,
		maxRetries: configuration.MaxRetries,
	}

	rows, err := s.run(context.Background(), inFile, outFile)
	if err != nil {
		log.WithField("event", "seeding").Fatal(err)
		return
	}
	log.WithField("event", "seeding").WithField("rows", rows).Info("Done")
}

type playerClient interface {
	GetPlayer(ctx context.Context, platform string, user string) (*rlstats.GetPlayerResponse, error)
}

type seeder struct {
	client     playerClient
	playlist   rlapi.PlaylistKey
	retryPause time.Duration
	maxRetries int
}

// run reads platform,user rows from in (skipping the header) and writes one
// result row per player to out. It returns the number of players written.
func (s *seeder) run(ctx context.Context, in io.Reader, out io.Writer) (int, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	writer := csv.NewWriter(out)
	if err := writer.Write(outHeader); err != nil {
		return 0, err
	}

	rows := 0
	firstLine := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		if firstLine {
			firstLine = false
			continue
		}
		if len(record) < 2 || strings.TrimSpace(record[1]) == "" {
			log.Warnf("Unexpected line `%v`", strings.Join(record, ","))
			continue
		}

		if err := writer.Write(s.row(ctx, strings.TrimSpace(record[0]), strings.TrimSpace(record[1]))); err != nil {
			return rows, err
		}
		rows++
	}

	writer.Flush()
	return rows, writer.Error()
}

func (s *seeder) row(ctx context.Context, platformStr string, user string) []string {
	platform, ok := rlapi.ParsePlatform(platformStr)
	if !ok {
		log.Warnf("Unknown platform %v for player %v", platformStr, user)
		return []string{platformStr, user, "Invalid platform", "", "", "", "", ""}
	}

	res, err := s.fetch(ctx, string(platform), user)
	if err != nil {
		var notFound *rlstats.PlayerNotFoundError
		if errors.As(err, &notFound) {
			log.Warnf("Player %v was not found on %v!", user, platform)
			return []string{string(platform), user, "Not found", "", "", "", "", ""}
		}
		log.Errorf("Giving up on player %v: %v", user, err)
		return []string{string(platform), user, "Error", "", "", "", "", ""}
	}

	rank, skill := "No data", ""
	if pl, ok := res.Playlist(s.playlist); ok {
		rank = pl.Rank
		skill = strconv.Itoa(pl.Skill)
	}

	return []string{
		string(platform),
		user,
		res.PlayerId,
		strconv.Itoa(res.HighestTier),
		rank,
		skill,
		strconv.Itoa(res.SeasonRewards.Level),
		strconv.FormatBool(res.SeasonRewards.RewardReady),
	}
}

func (s *seeder) fetch(ctx context.Context, platform string, user string) (*rlstats.GetPlayerResponse, error) {
	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			log.Errorf("Error fetching data for player %v: %v, try again after %v pause", user, err, s.retryPause)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryPause):
			}
		}
		log.Printf("Getting ranks for player %v", user)

		var res *rlstats.GetPlayerResponse
		res, err = s.client.GetPlayer(ctx, platform, user)
		if err == nil {
			return res, nil
		}
		var notFound *rlstats.PlayerNotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}
	}
	return nil, err
}
