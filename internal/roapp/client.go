package roapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client talks to the ROAPP retail-management API. The HTTP client is
// injected so tests can point it at a local server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type listEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Count int             `json:"count"`
}

func (c *Client) getList(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("roapp: %s returned status %d", path, resp.StatusCode)
	}

	var envelope listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("roapp: decode %s response: %w", path, err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}

	return json.Unmarshal(envelope.Data, out)
}

// FetchCategories downloads the full category list.
func (c *Client) FetchCategories(ctx context.Context) ([]RawCategory, error) {
	var categories []RawCategory
	if err := c.getList(ctx, "/warehouse/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchProducts walks the paged goods listing until an empty page.
func (c *Client) FetchProducts(ctx context.Context) ([]RawProduct, error) {
	var all []RawProduct

	for page := 1; ; page++ {
		var batch []RawProduct
		path := fmt.Sprintf("/warehouse/goods?page=%d", page)
		if err := c.getList(ctx, path, &batch); err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			return all, nil
		}
		all = append(all, batch...)
	}
}

// FetchProduct loads a single good by its roapp id, for targeted webhook
// re-syncs. A 404 returns (nil, nil).
func (c *Client) FetchProduct(ctx context.Context, id int64) (*RawProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/warehouse/goods/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roapp: good %d returned status %d", id, resp.StatusCode)
	}

	var envelope struct {
		Data RawProduct `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("roapp: decode good %d: %w", id, err)
	}
	return &envelope.Data, nil
}
