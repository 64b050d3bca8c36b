package main

type Configuration struct {
	Listen        string         `json:"listen"`
	MetricsListen string         `json:"metricsListen"`
	LogLevel      string         `json:"logLevel"`
	PublicApi     bool           `json:"publicApi"`
	DbUri         string         `json:"dbUri" env:"RLSTATS_DB_URI"`
	ScraperUrl    string         `json:"scraperUrl"`
	Upstream      UpstreamConfig `json:"upstream"`
	Cache         CacheConfig    `json:"cache"`
}

type UpstreamConfig struct {
	// BaseUrl may contain the $(platform) and $(user) placeholders.
	BaseUrl        string `json:"baseUrl"`
	ApiKey         string `json:"apiKey" env:"RLSTATS_UPSTREAM_API_KEY"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

type CacheConfig struct {
	RedisUrl   string `json:"redisUrl"`
	TtlSeconds int    `json:"ttlSeconds"`
}

func (c *Configuration) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.MetricsListen == "" {
		c.MetricsListen = ":8081"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		c.Upstream.TimeoutSeconds = 10
	}
	if c.Cache.TtlSeconds <= 0 {
		c.Cache.TtlSeconds = 300
	}
}
