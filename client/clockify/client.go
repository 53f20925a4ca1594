package clockify

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cloyt/client"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.clockify.me/api/v1"

type TimeInterval struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end"`
}

type TimeEntry struct {
	ID           string       `json:"id"`
	Description  string       `json:"description"`
	TimeInterval TimeInterval `json:"timeInterval"`
}

type Client struct {
	baseURL string
	token   string

	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL, token string, timeout time.Duration, transport http.RoundTripper) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &client.TracingTransport{Transport: transport},
		},
		// clockify rations requests per addon token, stay below the quota
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// TimeEntries returns the most recent time entries of a user, newest first.
// A zero start disables the server side start-date filter.
func (c *Client) TimeEntries(ctx context.Context, workspaceID, userID string, pageSize int, start time.Time) ([]TimeEntry, error) {
	q := url.Values{}
	if pageSize > 0 {
		q.Set("page-size", strconv.Itoa(pageSize))
	}
	if !start.IsZero() {
		q.Set("start", start.UTC().Format("2006-01-02T15:04:05Z"))
	}
	u := c.baseURL + "/workspaces/" + url.PathEscape(workspaceID) +
		"/user/" + url.PathEscape(userID) + "/time-entries"
	if len(q) > 0 {
		u = u + "?" + q.Encode()
	}

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	entries := []TimeEntry{}
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !client.StatusIsSuccess(resp.StatusCode) {
		return nil, client.NewApiError(req, resp, string(body))
	}
	return body, nil
}
