package rlstats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type PlayerNotFoundError struct{}

func (p PlayerNotFoundError) Error() string {
	return "Player not found"
}

// Client calls the /player endpoint of the rlstats service.
type Client struct {
	serviceUrl string
	userAgent  string
	apiKey     string
	httpClient *http.Client
}

func NewClient(serviceUrl string, userAgent string, apiKey string) *Client {
	return &Client{
		serviceUrl: serviceUrl,
		userAgent:  userAgent,
		apiKey:     apiKey,
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
	}
}

func (c *Client) GetPlayer(ctx context.Context, platform string, user string) (*GetPlayerResponse, error) {
	reqUrl := c.serviceUrl + "/player?platform=" + url.QueryEscape(platform) + "&user=" + url.QueryEscape(user)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, &PlayerNotFoundError{}
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rlstats returned status %d", res.StatusCode)
	}

	var playerRes GetPlayerResponse
	if err = json.NewDecoder(res.Body).Decode(&playerRes); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &playerRes, nil
}
