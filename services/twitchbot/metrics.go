package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricMessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twitchbot_messages_received",
		Help: "The total number of received messages",
	})
	metricChannelsConfigured = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "twitchbot_channels_configured",
		Help: "Number of channels the rank command is enabled for",
	})
	metricRankCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twitchbot_rank_commands_total",
		Help: "Rank commands by channel and result (ok, not_found, error, throttled)",
	}, []string{"channel", "result"})
)
