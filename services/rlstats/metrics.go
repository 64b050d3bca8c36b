package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricPlayersServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rlstats_players_served",
		Help: "The total number of player responses served",
	})
	metricCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rlstats_cache_hits",
		Help: "Total number of player payloads served from cache",
	})
	metricUpstreamErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rlstats_upstream_errors",
		Help: "Total number of failed upstream requests",
	})
	metricUnknownPlaylists = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rlstats_unknown_playlists",
		Help: "Total number of playlists with an unrecognised id",
	})
	metricRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rlstats_rate_limited",
		Help: "Total number of requests rejected by the api key rate limit",
	})
	gaugeBreakdownPlaylists = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rlstats_breakdown_playlists",
		Help: "Number of playlists with a loaded tier breakdown",
	})
)
