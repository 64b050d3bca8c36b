package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tkanos/gonfig"
	"github.com/yannismate/rlstats/libs/httplog"
	"github.com/yannismate/rlstats/libs/rest/webscraper"
)

var configuration = Configuration{}

func main() {
	err := gonfig.GetConf("config.json", &configuration)
	if err != nil {
		log.WithField("event", "load_config").Fatal(err)
		return
	}
	if configuration.Listen == "" {
		configuration.Listen = ":8080"
	}

	if configuration.MetricsListen != "" {
		metricsServer := http.NewServeMux()
		metricsServer.Handle("/metrics", promhttp.Handler())
		go func() {
			err := http.ListenAndServe(configuration.MetricsListen, metricsServer)
			if err != nil {
				log.WithField("event", "start_metrics_server").Fatal(err)
			}
		}()
	}

	http.Handle("/scrape", httplog.WithLogging(scrapeHandler(remoteBrowser)))
	err = http.ListenAndServe(configuration.Listen, nil)
	if err != nil {
		log.WithField("event", "start_server").Fatal(err)
	}
}

var selCaps = selenium.Capabilities{"browserName": "chrome"}

// browser is the part of selenium.WebDriver used for scraping.
type browser interface {
	SetPageLoadTimeout(timeout time.Duration) error
	Get(url string) error
	FindElement(by, value string) (selenium.WebElement, error)
	PageSource() (string, error)
	Quit() error
}

type browserFactory func() (browser, error)

func remoteBrowser() (browser, error) {
	return selenium.NewRemote(selCaps, configuration.Selenium.Url)
}

// scrape returns the text of the first <pre> element, which is how browsers
// render raw JSON, or the page source when there is none.
func scrape(newBrowser browserFactory, url string, timeout time.Duration) (string, error) {
	remote, err := newBrowser()
	if err != nil {
		log.WithField("event", "selenium_new_remote").Error(err)
		return "", err
	}
	defer func() {
		_ = remote.Quit()
	}()

	if err = remote.SetPageLoadTimeout(timeout); err != nil {
		log.WithField("event", "selenium_set_timeout").Error(err)
		return "", err
	}

	if err = remote.Get(url); err != nil {
		log.WithField("event", "selenium_get").Error(err)
		return "", err
	}

	element, err := remote.FindElement(selenium.ByTagName, "pre")
	if err != nil {
		src, err := remote.PageSource()
		if err != nil {
			log.WithField("event", "page_get_source").Error(err)
			return "", err
		}
		return src, nil
	}

	text, err := element.Text()
	if err != nil {
		log.WithField("event", "element_get_text").Error(err)
		return "", err
	}
	return text, nil
}

func scrapeHandler(newBrowser browserFactory) http.Handler {
	fn := func(rw http.ResponseWriter, r *http.Request) {
		url := r.URL.Query().Get("url")
		if url == "" {
			rw.WriteHeader(http.StatusBadRequest)
			return
		}

		timeout := time.Millisecond * time.Duration(configuration.Selenium.PageLoadTimeout)
		start := time.Now()
		content, err := scrape(newBrowser, url, timeout)
		metricScrapeDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metricScrapes.WithLabelValues("error").Inc()
			rw.WriteHeader(http.StatusInternalServerError)
			return
		}

		jData, err := json.Marshal(webscraper.GetScrapeResponse{Content: content})
		if err != nil {
			metricScrapes.WithLabelValues("error").Inc()
			log.WithField("event", "json_encode").Error(err)
			rw.WriteHeader(http.StatusInternalServerError)
			return
		}

		metricScrapes.WithLabelValues("success").Inc()
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)
		_, err = rw.Write(jData)
		if err != nil {
			log.WithField("event", "write_response").Error(err)
		}
	}
	return http.HandlerFunc(fn)
}
