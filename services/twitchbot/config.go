package main

type Configuration struct {
	TwitchUsername    string          `json:"twitchUsername" env:"TWITCH_USER"`
	TwitchToken       string          `json:"twitchToken" env:"TWITCH_TOKEN"`
	CacheUrl          string          `json:"cacheUrl"`
	RlStatsServiceUrl string          `json:"rlStatsServiceUrl"`
	RlStatsApiKey     string          `json:"rlStatsApiKey" env:"RLSTATS_API_KEY"`
	MetricsListen     string          `json:"metricsListen"`
	DefaultFormat     string          `json:"defaultFormat"`
	CooldownSeconds   int             `json:"cooldownSeconds"`
	Channels          []ChannelConfig `json:"channels"`
}

type ChannelConfig struct {
	Channel  string `json:"channel"`
	Command  string `json:"command"`
	Platform string `json:"platform"`
	Username string `json:"username"`
	Format   string `json:"format"`
}
