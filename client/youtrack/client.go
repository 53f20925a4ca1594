package youtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"cloyt/client"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// ErrUnauthorized reports a rejected YouTrack token. Callers abandon the
// remainder of the employee's cycle when they see it.
var ErrUnauthorized = errors.New("youtrack: unauthorized")

// work item types of a project barely change, cache them across the
// project loop of one cycle
var workItemTypeCache = cache.New(time.Minute, 5*time.Minute)

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type WorkItemType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type IssueWorkItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type DurationValue struct {
	Minutes int `json:"minutes"`
}

type WorkItemTypeRef struct {
	ID string `json:"id"`
}

type IssueWorkItemCreation struct {
	// Date is the work item date in unix milliseconds.
	Date     int64            `json:"date"`
	Duration DurationValue    `json:"duration"`
	Text     string           `json:"text"`
	Type     *WorkItemTypeRef `json:"type,omitempty"`
}

type Client struct {
	baseURL string
	token   string

	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL, token string, timeout time.Duration, transport http.RoundTripper) *Client {
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
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Projects lists the projects visible to the token owner.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	u := c.apiURL("/api/admin/projects", url.Values{"fields": []string{"id,name,shortName"}})
	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	projects := []Project{}
	if err := json.Unmarshal(body, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) WorkItemTypes(ctx context.Context, projectID string) ([]WorkItemType, error) {
	if cached, found := workItemTypeCache.Get(c.baseURL + "/" + projectID); found {
		return cached.([]WorkItemType), nil
	}

	u := c.apiURL("/api/admin/projects/"+url.PathEscape(projectID)+"/timeTrackingSettings/workItemTypes",
		url.Values{"fields": []string{"id,name"}})
	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	workItemTypes := []WorkItemType{}
	if err := json.Unmarshal(body, &workItemTypes); err != nil {
		return nil, err
	}
	workItemTypeCache.Set(c.baseURL+"/"+projectID, workItemTypes, cache.DefaultExpiration)
	return workItemTypes, nil
}

// IssueWorkItems lists the existing work items of an issue, used by the
// legacy text-scan duplicate detection.
func (c *Client) IssueWorkItems(ctx context.Context, issueID string) ([]IssueWorkItem, error) {
	u := c.apiURL("/api/issues/"+url.PathEscape(issueID)+"/timeTracking/workItems",
		url.Values{"fields": []string{"id,text"}})
	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	items := []IssueWorkItem{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateIssueWorkItem(ctx context.Context, issueID string, creation IssueWorkItemCreation) (*IssueWorkItem, error) {
	u := c.apiURL("/api/issues/"+url.PathEscape(issueID)+"/timeTracking/workItems",
		url.Values{"fields": []string{"id,text"}})
	reqBody, err := json.Marshal(&creation)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPost, u, reqBody)
	if err != nil {
		return nil, err
	}
	item := IssueWorkItem{}
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) apiURL(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		u = u + "?" + q.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, u string, reqBody []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	var reader *bytes.Reader
	if reqBody == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s %s, status: %s", ErrUnauthorized, method, u, resp.Status)
	}
	if !client.StatusIsSuccess(resp.StatusCode) {
		return nil, client.NewApiError(req, resp, string(body))
	}
	return body, nil
}
