package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yannismate/rlstats/libs/cache"
	"github.com/yannismate/rlstats/libs/ratelimit"
	"github.com/yannismate/rlstats/libs/rest/rlstats"
	"github.com/yannismate/rlstats/libs/rlapi"
)

type payloadCache interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTtl(ctx context.Context, key string, value string, ttl time.Duration) error
}

type playerSource interface {
	FetchPlayer(ctx context.Context, platform rlapi.Platform, user string) (*rlapi.PlayerRecord, error)
}

type snapshotStore interface {
	InsertSnapshots(ctx context.Context, player *rlapi.Player, fetchedAt time.Time) error
}

type apiUserStore interface {
	GetApiUserByKey(ctx context.Context, apiKey string) (*ApiUser, error)
}

type server struct {
	cache       payloadCache
	upstream    playerSource
	snapshots   snapshotStore
	apiUsers    apiUserStore
	ratelimiter *ratelimit.SharedRateLimiter
	breakdown   rlapi.TierBreakdown
	cacheTtl    time.Duration
}

func (s *server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-API-KEY")
		if apiKey == "" {
			apiKey = r.URL.Query().Get("api_key")
		}
		if apiKey == "" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("No api key specified"))
			return
		}

		limitRemaining, err := s.ratelimiter.AllowIfTracked(r.Context(), "apikey:"+apiKey)
		if err != nil {
			apiUser, err := s.apiUsers.GetApiUserByKey(r.Context(), apiKey)
			if err != nil {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte("Api key invalid"))
				return
			}

			limitRemaining, err = s.ratelimiter.AllowNew(r.Context(), "apikey:"+apiKey, apiUser.RateLimit300, time.Second*300)
			if err != nil {
				log.WithField("event", "ratelimiter_allow_new").Error(err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		} else if limitRemaining < 0 {
			metricRateLimited.Inc()
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("Rate limit exceeded"))
			return
		}

		w.Header().Set("RateLimit-Remaining", strconv.Itoa(limitRemaining))
		next.ServeHTTP(w, r)
	})
}

func (s *server) playerHandler() http.Handler {
	fn := func(rw http.ResponseWriter, r *http.Request) {
		platform, ok := rlapi.ParsePlatform(r.URL.Query().Get("platform"))
		if !ok {
			rw.WriteHeader(http.StatusBadRequest)
			_, _ = rw.Write([]byte("Unknown platform"))
			return
		}

		user := r.URL.Query().Get("user")
		if user == "" {
			rw.WriteHeader(http.StatusBadRequest)
			_, _ = rw.Write([]byte("No user specified"))
			return
		}

		rec, err := s.loadRecord(r.Context(), platform, user)
		if err != nil {
			var notFound *PlayerNotFoundError
			if errors.As(err, &notFound) {
				rw.WriteHeader(http.StatusNotFound)
				return
			}
			metricUpstreamErrors.Inc()
			log.WithField("event", "get_player").Warn(err)
			rw.WriteHeader(http.StatusInternalServerError)
			return
		}

		player, err := rlapi.NewPlayer(platform, *rec, s.breakdown)
		if err != nil {
			log.WithField("event", "build_player").WithField("user", user).Error(err)
			rw.WriteHeader(http.StatusBadGateway)
			return
		}

		for _, pl := range player.Playlists() {
			if !pl.Key.IsKnown() {
				metricUnknownPlaylists.Inc()
				log.WithField("event", "unknown_playlist").WithField("playlist", pl.Key.Int()).Debug("Unknown playlist id")
			}
		}

		if s.snapshots != nil {
			err = s.snapshots.InsertSnapshots(r.Context(), player, time.Now())
			if err != nil {
				log.WithField("event", "insert_snapshots").Error(err)
			}
		}

		jData, err := json.Marshal(rlstats.FromPlayer(player))
		if err != nil {
			log.WithField("event", "json_encode").Error(err)
			rw.WriteHeader(http.StatusInternalServerError)
			return
		}

		metricPlayersServed.Inc()
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)
		_, err = rw.Write(jData)
		if err != nil {
			log.WithField("event", "write_response").Error(err)
		}
	}
	return http.HandlerFunc(fn)
}

func cacheKey(platform rlapi.Platform, user string) string {
	return "player:" + string(platform) + ":" + strings.ToLower(user)
}

// loadRecord returns the cached payload of a player or fetches and caches it.
func (s *server) loadRecord(ctx context.Context, platform rlapi.Platform, user string) (*rlapi.PlayerRecord, error) {
	key := cacheKey(platform, user)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		rec := rlapi.PlayerRecord{}
		if err = json.Unmarshal([]byte(cached), &rec); err == nil {
			log.WithField("event", "cache_hit").Debug(key)
			metricCacheHits.Inc()
			return &rec, nil
		}
		log.WithField("event", "cache_decode").Warn(err)
	} else if !cache.IsMiss(err) {
		log.WithField("event", "cache_get").Warn(err)
	}

	rec, err := s.upstream.FetchPlayer(ctx, platform, user)
	if err != nil {
		return nil, err
	}

	jData, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	err = s.cache.SetWithTtl(ctx, key, string(jData), s.cacheTtl)
	if err != nil {
		log.WithField("event", "cache_set").Error(err)
	}
	return rec, nil
}
