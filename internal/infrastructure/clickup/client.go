package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

const defaultBaseURL = "https://api.clickup.com/api/v2"

// Config carries the OAuth app credentials used for the code exchange.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
}

// Client is a read-only ClickUp API client backing the task import picker.
// Every call uses the caller's bearer token; the client itself holds only the
// OAuth app credentials.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log,
	}
}

// ExchangeCode trades an OAuth authorization code for an access token. The
// exchange runs server-side so the client secret never reaches the browser.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("clickup oauth: empty access token")
	}
	return out.AccessToken, nil
}

// Workspaces lists the teams the token can see.
func (c *Client) Workspaces(ctx context.Context, token string) ([]ports.ImportWorkspace, error) {
	var out struct {
		Teams []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"teams"`
	}
	if err := c.get(ctx, token, "/team", &out); err != nil {
		return nil, err
	}

	workspaces := make([]ports.ImportWorkspace, 0, len(out.Teams))
	for _, t := range out.Teams {
		workspaces = append(workspaces, ports.ImportWorkspace{ID: t.ID, Name: t.Name})
	}
	return workspaces, nil
}

// Lists returns the task lists inside a space.
func (c *Client) Lists(ctx context.Context, token, spaceID string) ([]ports.ImportList, error) {
	var out struct {
		Lists []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"lists"`
	}
	if err := c.get(ctx, token, "/space/"+url.PathEscape(spaceID)+"/list", &out); err != nil {
		return nil, err
	}

	lists := make([]ports.ImportList, 0, len(out.Lists))
	for _, l := range out.Lists {
		lists = append(lists, ports.ImportList{ID: l.ID, Name: l.Name})
	}
	return lists, nil
}

// Tasks returns the tasks in a list.
func (c *Client) Tasks(ctx context.Context, token, listID string) ([]ports.ImportTask, error) {
	var out struct {
		Tasks []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"tasks"`
	}
	if err := c.get(ctx, token, "/list/"+url.PathEscape(listID)+"/task", &out); err != nil {
		return nil, err
	}

	tasks := make([]ports.ImportTask, 0, len(out.Tasks))
	for _, t := range out.Tasks {
		tasks = append(tasks, ports.ImportTask{ID: t.ID, Name: t.Name})
	}
	return tasks, nil
}

func (c *Client) get(ctx context.Context, token, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("clickup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Str("path", req.URL.Path).Msg("clickup api error")
		return fmt.Errorf("clickup api: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("clickup decode: %w", err)
	}
	return nil
}
