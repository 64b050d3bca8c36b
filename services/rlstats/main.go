package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	metrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"
	"github.com/tkanos/gonfig"
	"github.com/yannismate/rlstats/libs/cache"
	"github.com/yannismate/rlstats/libs/httplog"
	"github.com/yannismate/rlstats/libs/ratelimit"
)

var configuration = Configuration{}

func main() {
	err := gonfig.GetConf("config.json", &configuration)
	if err != nil {
		log.WithField("event", "load_config").Fatal(err)
		return
	}
	configuration.applyDefaults()

	level, err := log.ParseLevel(configuration.LogLevel)
	if err != nil {
		log.WithField("event", "load_config").Fatal(err)
		return
	}
	log.SetLevel(level)

	metricsServer := http.NewServeMux()
	metricsServer.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(configuration.MetricsListen, metricsServer)
		if err != nil {
			log.WithField("event", "start_metrics_server").Fatal(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	statsDb, err := NewStatsDb(ctx, configuration.DbUri)
	if err != nil {
		cancel()
		log.WithField("event", "connect_db").Fatal(err)
		return
	}
	defer statsDb.Close()

	breakdown, err := statsDb.GetTierBreakdown(ctx)
	cancel()
	if err != nil {
		log.WithField("event", "load_tier_breakdown").Fatal(err)
		return
	}
	gaugeBreakdownPlaylists.Set(float64(len(breakdown)))
	log.WithField("event", "load_tier_breakdown").WithField("playlists", len(breakdown)).Info("Tier breakdown loaded")

	redisCache := cache.NewCache(configuration.Cache.RedisUrl)
	defer redisCache.Close()

	srv := &server{
		cache:       redisCache,
		upstream:    NewUpstream(configuration.Upstream, configuration.ScraperUrl),
		snapshots:   statsDb,
		apiUsers:    statsDb,
		ratelimiter: ratelimit.NewSharedRateLimiter(redisCache),
		breakdown:   breakdown,
		cacheTtl:    time.Second * time.Duration(configuration.Cache.TtlSeconds),
	}

	mdlw := middleware.New(middleware.Config{
		Recorder: metrics.NewRecorder(metrics.Config{}),
	})

	handler := srv.playerHandler()
	if configuration.PublicApi {
		handler = srv.withRateLimit(handler)
	}

	http.Handle("/player", httplog.WithLogging(std.Handler("/player", mdlw, handler)))
	log.WithField("event", "start_server").WithField("addr", configuration.Listen).Info("Starting rlstats...")
	err = http.ListenAndServe(configuration.Listen, nil)
	if err != nil {
		log.WithField("event", "start_server").Fatal(err)
	}
}
