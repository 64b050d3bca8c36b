package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricScrapes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webscraper_scrapes_total",
		Help: "Scrapes by result (success, error)",
	}, []string{"result"})
	metricScrapeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "webscraper_scrape_duration_seconds",
		Help:    "Time spent loading a page in the browser",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
	})
)
