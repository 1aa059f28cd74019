package novaposhta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client proxies the Nova Poshta carrier API: one POST endpoint, the method
// selected in the request body.
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

type apiRequest struct {
	APIKey           string      `json:"apiKey"`
	ModelName        string      `json:"modelName"`
	CalledMethod     string      `json:"calledMethod"`
	MethodProperties interface{} `json:"methodProperties"`
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// City is one settlement suggestion for the checkout city picker.
type City struct {
	Present string `json:"Present"`
	Ref     string `json:"Ref"`
	CityRef string `json:"DeliveryCity"`
}

// Warehouse is one pickup point in a settlement.
type Warehouse struct {
	Description string `json:"Description"`
	Ref         string `json:"Ref"`
	Number      string `json:"Number"`
}

func (c *Client) call(ctx context.Context, model, method string, props, out interface{}) error {
	body, err := json.Marshal(apiRequest{
		APIKey:           c.apiKey,
		ModelName:        model,
		CalledMethod:     method,
		MethodProperties: props,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("novaposhta: %s.%s returned status %d", model, method, resp.StatusCode)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("novaposhta: decode %s.%s response: %w", model, method, err)
	}
	if !envelope.Success {
		return fmt.Errorf("novaposhta: %s.%s failed: %s", model, method, strings.Join(envelope.Errors, "; "))
	}
	if len(envelope.Data) == 0 {
		return nil
	}

	return json.Unmarshal(envelope.Data, out)
}

// SearchCities suggests settlements matching the query prefix.
func (c *Client) SearchCities(ctx context.Context, query string, limit int) ([]City, error) {
	if limit <= 0 {
		limit = 10
	}

	props := map[string]interface{}{
		"CityName": query,
		"Limit":    limit,
	}

	var data []struct {
		Addresses []City `json:"Addresses"`
	}
	if err := c.call(ctx, "Address", "searchSettlements", props, &data); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return []City{}, nil
	}
	return data[0].Addresses, nil
}

// GetWarehouses lists pickup points for a settlement ref.
func (c *Client) GetWarehouses(ctx context.Context, cityRef string) ([]Warehouse, error) {
	props := map[string]interface{}{
		"SettlementRef": cityRef,
	}

	var warehouses []Warehouse
	if err := c.call(ctx, "AddressGeneral", "getWarehouses", props, &warehouses); err != nil {
		return nil, err
	}
	if warehouses == nil {
		warehouses = []Warehouse{}
	}
	return warehouses, nil
}
