package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gempir/go-twitch-irc/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tkanos/gonfig"
	"github.com/yannismate/rlstats/libs/cache"
	"github.com/yannismate/rlstats/libs/rest/rlstats"
	"github.com/yannismate/rlstats/libs/rlapi"
)

var configuration Configuration
var redisCache *cache.Cache
var statsClient *rlstats.Client
var channels map[string]ChannelConfig

func main() {
	log.Info("Starting twitchbot...")
	err := gonfig.GetConf("config.json", &configuration)
	if err != nil {
		log.WithField("event", "load_config").Fatal(err)
		return
	}
	if configuration.MetricsListen == "" {
		configuration.MetricsListen = ":8081"
	}
	if configuration.CooldownSeconds <= 0 {
		configuration.CooldownSeconds = 10
	}

	metricsServer := http.NewServeMux()
	metricsServer.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(configuration.MetricsListen, metricsServer)
		if err != nil {
			log.WithField("event", "start_metrics_server").Fatal(err)
		}
	}()
	log.WithField("event", "start_metrics_server").Info("Metrics server started")

	channels, err = loadChannels(configuration.Channels, configuration.DefaultFormat)
	if err != nil {
		log.WithField("event", "load_channels").Fatal(err)
		return
	}

	metricChannelsConfigured.Set(float64(len(channels)))

	redisCache = cache.NewCache(configuration.CacheUrl)
	statsClient = rlstats.NewClient(configuration.RlStatsServiceUrl, "rlstats/services/twitchbot", configuration.RlStatsApiKey)

	client := twitch.NewClient(configuration.TwitchUsername, configuration.TwitchToken)
	client.SetJoinRateLimiter(twitch.CreateDefaultRateLimiter())

	client.OnPrivateMessage(func(message twitch.PrivateMessage) {
		go handleMessage(message, client)
	})

	client.OnConnect(func() {
		log.WithField("event", "irc_connected").Info("IRC connected")
		names := make([]string, 0, len(channels))
		for name := range channels {
			names = append(names, name)
		}
		client.Join(names...)
		log.WithField("event", "channels_join").WithField("channels", len(names)).Info("Joined channels")
	})

	err = client.Connect()
	if err != nil {
		log.WithField("event", "irc_connect").Fatal(err)
	}
}

type invalidChannelError struct {
	channel string
	reason  string
}

func (e *invalidChannelError) Error() string {
	return "channel " + e.channel + ": " + e.reason
}

// loadChannels validates the configured channels and keys them by lowercase
// channel name.
func loadChannels(configured []ChannelConfig, defaultFormat string) (map[string]ChannelConfig, error) {
	result := make(map[string]ChannelConfig, len(configured))
	for _, ch := range configured {
		name := strings.ToLower(strings.TrimPrefix(ch.Channel, "#"))
		if name == "" {
			return nil, &invalidChannelError{channel: ch.Channel, reason: "empty channel name"}
		}
		platform, ok := rlapi.ParsePlatform(ch.Platform)
		if !ok {
			return nil, &invalidChannelError{channel: name, reason: "valid platforms: epic, steam, ps, xbox"}
		}
		if ch.Username == "" {
			return nil, &invalidChannelError{channel: name, reason: "no username set"}
		}
		ch.Channel = name
		ch.Platform = string(platform)
		ch.Command = strings.TrimPrefix(ch.Command, "!")
		if ch.Command == "" {
			ch.Command = "rank"
		}
		if len(ch.Command) > 50 {
			return nil, &invalidChannelError{channel: name, reason: "command is too long"}
		}
		if ch.Format == "" {
			ch.Format = defaultFormat
		}
		result[name] = ch
	}
	return result, nil
}

func isCommand(message string, command string) bool {
	msg := strings.ToLower(strings.TrimSpace(message))
	cmd := "!" + strings.ToLower(command)
	return msg == cmd || strings.HasPrefix(msg, cmd+" ")
}

func handleMessage(message twitch.PrivateMessage, client *twitch.Client) {
	metricMessagesReceived.Inc()

	ch, ok := channels[strings.ToLower(message.Channel)]
	if !ok || !isCommand(message.Message, ch.Command) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fresh, err := redisCache.SetIfAbsent(ctx, "twitch:cooldown:"+ch.Channel, message.User.Name,
		time.Second*time.Duration(configuration.CooldownSeconds))
	if err != nil {
		log.WithField("event", "rank_command_cooldown").Error(err)
	} else if !fresh {
		metricRankCommands.WithLabelValues(ch.Channel, "throttled").Inc()
		return
	}

	log.WithField("event", "rank_command").WithField("channel", message.Channel).Info("Executing rank command")

	replyStr, err := GetRankString(ctx, statsClient, ch.Platform, ch.Username, ch.Format)
	if err != nil {
		var notFound *rlstats.PlayerNotFoundError
		if errors.As(err, &notFound) {
			metricRankCommands.WithLabelValues(ch.Channel, "not_found").Inc()
			client.Say(message.Channel, "Player "+ch.Username+" was not found on platform "+ch.Platform)
			return
		}
		metricRankCommands.WithLabelValues(ch.Channel, "error").Inc()
		client.Say(message.Channel, "There was an error getting the rank for player "+ch.Username+" on platform "+ch.Platform)
		log.WithField("event", "rank_command_get_rank_str").Error(err)
		return
	}

	metricRankCommands.WithLabelValues(ch.Channel, "ok").Inc()
	text, asReply := buildReply(replyStr, message.User.Name)
	if asReply {
		client.Reply(message.Channel, message.ID, text)
		return
	}
	client.Say(message.Channel, text)
}
