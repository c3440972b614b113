// Package apiclient is a thin typed client for the habitd HTTP API, used by
// the CLI commands and the reminder job.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dpramesti/habitd/internal/bundle"
	"github.com/dpramesti/habitd/internal/stats"
	"github.com/dpramesti/habitd/pkg/habit"
	"github.com/dpramesti/habitd/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(res.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, res.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	var out []habit.Habit
	err := c.do(ctx, http.MethodGet, "/api/habits", nil, &out)
	return out, err
}

func (c *Client) CreateHabit(ctx context.Context, name string, t habit.HabitType) (habit.Habit, error) {
	var out habit.Habit
	err := c.do(ctx, http.MethodPost, "/api/habits", map[string]any{"name": name, "type": t}, &out)
	return out, err
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/habits/"+id, nil, nil)
}

func (c *Client) Track(ctx context.Context, habitID string, completed bool) (habit.HabitLog, error) {
	var out habit.HabitLog
	err := c.do(ctx, http.MethodPost, "/api/habits/"+habitID+"/track",
		map[string]bool{"completed": completed}, &out)
	return out, err
}

func (c *Client) HabitStats(ctx context.Context, habitID string) (stats.HabitStats, error) {
	var out stats.HabitStats
	err := c.do(ctx, http.MethodGet, "/api/habits/"+habitID+"/stats", nil, &out)
	return out, err
}

func (c *Client) Stats(ctx context.Context) (habit.StatSummary, error) {
	var out habit.StatSummary
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, &out)
	return out, err
}

func (c *Client) Settings(ctx context.Context) (habit.UserSettings, error) {
	var out habit.UserSettings
	err := c.do(ctx, http.MethodGet, "/api/settings", nil, &out)
	return out, err
}

func (c *Client) Export(ctx context.Context) (bundle.Bundle, error) {
	var out bundle.Bundle
	err := c.do(ctx, http.MethodGet, "/api/export", nil, &out)
	return out, err
}

func (c *Client) Import(ctx context.Context, b bundle.Bundle) error {
	return c.do(ctx, http.MethodPost, "/api/import", b, nil)
}

func (c *Client) Version(ctx context.Context) (versioninfo.VersionInfo, error) {
	var out versioninfo.VersionInfo
	err := c.do(ctx, http.MethodGet, "/version", nil, &out)
	return out, err
}
