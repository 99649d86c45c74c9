package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lessbyless/lessbyless/internal/server"
	"github.com/lessbyless/lessbyless/pkg/tracker"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) ListTrackers(ctx context.Context) ([]tracker.Record, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/trackers", nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("list trackers: %s", res.Status)
	}
	var response server.TrackerListResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, err
	}
	return response.Trackers, nil
}

func (c *Client) GetTracker(ctx context.Context, id string) (*tracker.Record, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/trackers/"+id, nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("get tracker %s: %s", id, res.Status)
	}
	var out tracker.Record
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTracker(ctx context.Context, name string, kind tracker.Kind, startedAt string, usageValue float64, usageUnit tracker.Unit) (*tracker.Record, error) {
	payload := map[string]any{
		"name":                name,
		"kind":                kind,
		"started_at":          startedAt,
		"current_usage_value": usageValue,
		"current_usage_unit":  usageUnit,
	}
	res, err := c.post(ctx, "/trackers", payload)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 201 {
		return nil, fmt.Errorf("create tracker %s: %s", name, res.Status)
	}
	var out tracker.Record
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProgress(ctx context.Context, id string) (*server.ProgressResponse, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/trackers/"+id+"/progress", nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("progress %s: %s", id, res.Status)
	}
	var out server.ProgressResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetStreaks(ctx context.Context, id string) (*server.StreaksResponse, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/trackers/"+id+"/streaks", nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("streaks %s: %s", id, res.Status)
	}
	var out server.StreaksResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDosageToday(ctx context.Context, id string) (*server.DosageTodayResponse, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/trackers/"+id+"/dosage/today", nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("dosage today %s: %s", id, res.Status)
	}
	var out server.DosageTodayResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDosageDaily(ctx context.Context, id string, week int) (*server.DosageDailyResponse, error) {
	url := fmt.Sprintf("%s/trackers/%s/dosage/daily?week=%d", c.BaseURL, id, week)
	req, _ := http.NewRequestWithContext(ctx, "GET", url, nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("dosage daily %s: %s", id, res.Status)
	}
	var out server.DosageDailyResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddDoseLog(ctx context.Context, id string, value float64, unit tracker.Unit, note string) (*tracker.DoseLog, error) {
	payload := map[string]any{
		"value": value,
		"unit":  unit,
		"note":  note,
	}
	res, err := c.post(ctx, "/trackers/"+id+"/doses", payload)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 201 {
		return nil, fmt.Errorf("log dose %s: %s", id, res.Status)
	}
	var out tracker.DoseLog
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetTracker(ctx context.Context, id string) (*tracker.Record, error) {
	res, err := c.post(ctx, "/trackers/"+id+"/reset", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("reset tracker %s: %s", id, res.Status)
	}
	var out tracker.Record
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTracker(ctx context.Context, id string) error {
	req, _ := http.NewRequestWithContext(ctx, "DELETE", c.BaseURL+"/trackers/"+id, nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != 204 {
		return fmt.Errorf("delete tracker %s: %s", id, res.Status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, err
		}
	}
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, &body)
	req.Header.Set("Content-Type", "application/json")
	return c.HTTP.Do(req)
}
