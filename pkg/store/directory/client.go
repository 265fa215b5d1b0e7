package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/de-tools/top-users/pkg/models/store"
	"github.com/hashicorp/go-retryablehttp"
)

// Client fetches user records from the directory service.
type Client interface {
	GetUser(ctx context.Context, identity string) (*store.UserRecord, error)
}

type Settings struct {
	BaseURL  string
	User     string
	Password string
}

type restClient struct {
	settings Settings
	http     *retryablehttp.Client
}

func NewClient(settings Settings) Client {
	c := retryablehttp.NewClient()
	c.Logger = nil
	return &restClient{settings: settings, http: c}
}

func (c *restClient) GetUser(ctx context.Context, identity string) (*store.UserRecord, error) {
	url := fmt.Sprintf("%s/user/%s", c.settings.BaseURL, identity)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", identity, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.settings.User != "" {
		req.SetBasicAuth(c.settings.User, c.settings.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", identity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch user %s: unexpected status %d", identity, resp.StatusCode)
	}

	var record store.UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", identity, err)
	}
	return &record, nil
}
