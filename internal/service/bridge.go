package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"compactor/internal/item"
	"compactor/internal/recipe"
)

// =============================================================================
// HTTP BRIDGE ADAPTER
// =============================================================================

// Bridge is an Inventory backed by the HTTP bridge that fronts the crafting
// service. Calls are synchronous request/response; a 404 from the bridge
// means "absent" and maps to the false branch of the optional returns.
type Bridge struct {
	baseURL string
	client  *http.Client
}

// NewBridge creates a bridge client. An empty baseURL targets the local
// bridge on its default port.
func NewBridge(baseURL string, timeout time.Duration) *Bridge {
	if baseURL == "" {
		baseURL = "http://localhost:8575"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Bridge{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Close releases idle connections held by the underlying client.
func (b *Bridge) Close() {
	b.client.CloseIdleConnections()
}

// ListPatterns returns all recipe identifiers known to the bridge.
func (b *Bridge) ListPatterns(ctx context.Context) ([]recipe.PatternInfo, error) {
	var resp patternListResponse
	if _, err := b.get(ctx, "/patterns", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Patterns, nil
}

// GetPattern resolves one identifier to its full definition.
func (b *Bridge) GetPattern(ctx context.Context, info recipe.PatternInfo) (recipe.Definition, bool, error) {
	q := url.Values{}
	q.Set("name", info.Name)
	q.Set("damage", strconv.Itoa(info.Damage))

	var def recipe.Definition
	found, err := b.get(ctx, "/pattern", q, &def)
	if err != nil || !found {
		return recipe.Definition{}, false, err
	}
	return def, true, nil
}

// GetItem reports current stock of one item type.
func (b *Bridge) GetItem(ctx context.Context, ref item.Ref) (item.Stack, bool, error) {
	q := url.Values{}
	q.Set("name", ref.Name)
	q.Set("damage", strconv.Itoa(ref.Damage))

	var stack item.Stack
	found, err := b.get(ctx, "/item", q, &stack)
	if err != nil || !found {
		return item.Stack{}, false, err
	}
	return stack, true, nil
}

// ScheduleTask submits one crafting request to the bridge scheduler.
func (b *Bridge) ScheduleTask(ctx context.Context, info recipe.PatternInfo, quantity int) error {
	body, err := json.Marshal(scheduleRequest{
		Name:     info.Name,
		Label:    info.Label,
		Damage:   info.Damage,
		Quantity: quantity,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal schedule request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/schedule", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bridge returned status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

// Connected reports whether the bridge has a live link to the crafting
// service. Any transport or decode failure counts as not connected.
func (b *Bridge) Connected(ctx context.Context) bool {
	var h healthResponse
	found, err := b.get(ctx, "/health", nil, &h)
	return err == nil && found && h.Connected
}

// get performs a GET and decodes the JSON body into out. The bool is false
// for a 404 without an error; other non-200 statuses are errors.
func (b *Bridge) get(ctx context.Context, path string, query url.Values, out any) (bool, error) {
	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("bridge returned status %d: %s", resp.StatusCode, string(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return true, nil
}

// =============================================================================
// BRIDGE WIRE TYPES
// =============================================================================

type patternListResponse struct {
	Patterns []recipe.PatternInfo `json:"patterns"`
}

type scheduleRequest struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Damage   int    `json:"damage"`
	Quantity int    `json:"quantity"`
}

type healthResponse struct {
	Connected bool `json:"connected"`
}
