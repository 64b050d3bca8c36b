package main

type Configuration struct {
	RlStatsServiceUrl string `json:"rlStatsServiceUrl"`
	RlStatsApiKey     string `json:"rlStatsApiKey" env:"RLSTATS_API_KEY"`
	RetryPauseSeconds int    `json:"retryPauseSeconds"`
	MaxRetries        int    `json:"maxRetries"`
}
