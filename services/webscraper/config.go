package main

type Configuration struct {
	Listen        string         `json:"listen"`
	MetricsListen string         `json:"metricsListen"`
	Selenium      SeleniumConfig `json:"selenium"`
}

type SeleniumConfig struct {
	Url string `json:"url"`
	// PageLoadTimeout in milliseconds
	PageLoadTimeout int `json:"pageLoadTimeout"`
}
