package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yannismate/rlstats/libs/rest/webscraper"
	"github.com/yannismate/rlstats/libs/rlapi"
)

type PlayerNotFoundError struct{}

func (p PlayerNotFoundError) Error() string {
	return "player not found"
}

// Upstream fetches raw player records from the stats API, either directly or
// through the webscraper service when ScraperUrl is configured.
type Upstream struct {
	baseUrl    string
	apiKey     string
	scraperUrl string
	httpClient *http.Client
}

func NewUpstream(cfg UpstreamConfig, scraperUrl string) *Upstream {
	return &Upstream{
		baseUrl:    cfg.BaseUrl,
		apiKey:     cfg.ApiKey,
		scraperUrl: scraperUrl,
		httpClient: &http.Client{
			Timeout: time.Second * time.Duration(cfg.TimeoutSeconds),
		},
	}
}

type upstreamResponse struct {
	Errors []map[string]interface{} `json:"errors"`
	rlapi.PlayerRecord
}

func (u *Upstream) playerUrl(platform rlapi.Platform, user string) string {
	escaped := strings.Replace(url.QueryEscape(user), "+", "%20", -1)
	return strings.NewReplacer("$(platform)", string(platform), "$(user)", escaped).Replace(u.baseUrl)
}

func (u *Upstream) FetchPlayer(ctx context.Context, platform rlapi.Platform, user string) (*rlapi.PlayerRecord, error) {
	body, err := u.fetch(ctx, u.playerUrl(platform, user))
	if err != nil {
		return nil, err
	}

	res := upstreamResponse{}
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode player record: %w", err)
	}
	if len(res.Errors) > 0 {
		return nil, &PlayerNotFoundError{}
	}
	return &res.PlayerRecord, nil
}

func (u *Upstream) fetch(ctx context.Context, requestUrl string) ([]byte, error) {
	if u.scraperUrl == "" {
		return u.get(ctx, requestUrl, true)
	}

	body, err := u.get(ctx, u.scraperUrl+"?url="+url.QueryEscape(requestUrl), false)
	if err != nil {
		return nil, err
	}
	scraperRes := webscraper.GetScrapeResponse{}
	if err = json.Unmarshal(body, &scraperRes); err != nil {
		return nil, fmt.Errorf("decode scraper response: %w", err)
	}
	return []byte(scraperRes.Content), nil
}

func (u *Upstream) get(ctx context.Context, requestUrl string, authorize bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "rlstats/services/rlstats")
	if authorize && u.apiKey != "" {
		req.Header.Set("Authorization", "Token "+u.apiKey)
	}

	res, err := u.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, &PlayerNotFoundError{}
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", res.StatusCode)
	}

	return io.ReadAll(res.Body)
}
