// Package api is the HTTP client for the todod item endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/idilsaglam/todoterm/internal/model"
)

// Client talks to a todod server. The zero Token means unauthenticated;
// callers normally fill it from auth.GetToken.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	return hc.Do(req)
}

// List retrieves the full item collection.
func (c *Client) List(ctx context.Context) ([]model.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/items", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get items: unexpected status %s", resp.Status)
	}
	var items []model.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// Create posts a new item and returns it with the server-assigned ID.
func (c *Client) Create(ctx context.Context, it model.Item) (model.Item, error) {
	body, err := json.Marshal(it)
	if err != nil {
		return model.Item{}, fmt.Errorf("marshal item: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/items", bytes.NewReader(body))
	if err != nil {
		return model.Item{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(req)
	if err != nil {
		return model.Item{}, fmt.Errorf("post item: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return model.Item{}, fmt.Errorf("post item: unexpected status %s", resp.Status)
	}
	var created model.Item
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return model.Item{}, fmt.Errorf("decode item: %w", err)
	}
	return created, nil
}

// Delete removes the item with the given ID on the server.
func (c *Client) Delete(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/items/%d", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete item %d: unexpected status %s", id, resp.Status)
	}
	return nil
}

// WebsocketURL derives the change-feed endpoint from the base URL.
func (c *Client) WebsocketURL() string {
	u := c.BaseURL + "/ws"
	switch {
	case strings.HasPrefix(u, "https://"):
		return "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		return "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u
}
