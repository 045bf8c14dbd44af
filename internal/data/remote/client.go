// Package remote implements the JSON-over-HTTP client for the CMMS
// system of record. The remote API owns all canonical record identity;
// this client never invents ids.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/foreman"
)

// DefaultTimeout bounds individual API calls when the config does not
// override it.
const DefaultTimeout = 30 * time.Second

// Client talks to the CMMS REST API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	log     zerolog.Logger
}

var _ foreman.Remote = (*Client)(nil)

// NewClient creates a client for the API at baseURL. token may be
// empty for unauthenticated deployments. A zero timeout falls back to
// DefaultTimeout.
func NewClient(baseURL, token string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// listEnvelope is the standard collection response shape.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// apiError is the error body the API returns on non-2xx responses.
type apiError struct {
	Message string `json:"message"`
}

// bundleRequest is the full-record update payload. Parts is always
// present and always empty from this client; the endpoint requires the
// field.
type bundleRequest struct {
	WorkOrder maintenance.WorkOrder `json:"workOrder"`
	Tasks     []maintenance.Task    `json:"tasks"`
	Parts     []any                 `json:"parts"`
}

type bundleResponse struct {
	Success bool `json:"success"`
}

// FetchSnapshot loads every entity collection the resolver operates
// over in one pass.
func (c *Client) FetchSnapshot(ctx context.Context) (maintenance.Snapshot, error) {
	var (
		snap maintenance.Snapshot
		err  error
	)

	if snap.Companies, err = list[maintenance.Company](ctx, c, "/api/companies"); err != nil {
		return maintenance.Snapshot{}, fmt.Errorf("fetch companies: %w", err)
	}
	if snap.Assets, err = list[maintenance.Asset](ctx, c, "/api/assets"); err != nil {
		return maintenance.Snapshot{}, fmt.Errorf("fetch assets: %w", err)
	}
	if snap.Plans, err = list[maintenance.MaintenancePlan](ctx, c, "/api/maintenance-plans"); err != nil {
		return maintenance.Snapshot{}, fmt.Errorf("fetch maintenance plans: %w", err)
	}
	if snap.PlanSteps, err = list[maintenance.PlanStep](ctx, c, "/api/plan-steps"); err != nil {
		return maintenance.Snapshot{}, fmt.Errorf("fetch plan steps: %w", err)
	}
	if snap.WorkOrders, err = list[maintenance.WorkOrder](ctx, c, "/api/work-orders"); err != nil {
		return maintenance.Snapshot{}, fmt.Errorf("fetch work orders: %w", err)
	}

	c.log.Debug().
		Int("companies", len(snap.Companies)).
		Int("assets", len(snap.Assets)).
		Int("plans", len(snap.Plans)).
		Int("plan_steps", len(snap.PlanSteps)).
		Int("work_orders", len(snap.WorkOrders)).
		Msg("snapshot fetched")

	return snap, nil
}

// CreateWorkOrder persists a draft and returns the canonical identity
// assigned by the system of record. The draft's temporary id is
// ignored by the API.
func (c *Client) CreateWorkOrder(ctx context.Context, draft maintenance.WorkOrder) (foreman.CreatedIdentity, error) {
	var identity foreman.CreatedIdentity
	if err := c.do(ctx, http.MethodPost, "/api/work-orders", draft, &identity); err != nil {
		return foreman.CreatedIdentity{}, fmt.Errorf("create work order: %w", err)
	}
	if identity.ID == "" || identity.Number == "" {
		return foreman.CreatedIdentity{}, fmt.Errorf("create work order: response missing id or number")
	}
	return identity, nil
}

// SaveWorkOrderBundle re-sends the finalized work order with its
// checklist. The API reports a success flag; false is a failure even
// on a 2xx status, since the record state is then unknown.
func (c *Client) SaveWorkOrderBundle(ctx context.Context, wo maintenance.WorkOrder, tasks []maintenance.Task) error {
	req := bundleRequest{WorkOrder: wo, Tasks: tasks, Parts: []any{}}

	var resp bundleResponse
	path := "/api/work-orders/" + url.PathEscape(wo.ID) + "/bundle"
	if err := c.do(ctx, http.MethodPut, path, req, &resp); err != nil {
		return fmt.Errorf("save work order bundle: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("save work order bundle: remote reported failure for %s", wo.ID)
	}
	return nil
}

// list fetches a collection endpoint and unwraps its data envelope.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var env listEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// do executes one API call: marshal body (when present), send, check
// status, decode into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		bits, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(bits)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("API error (status %d)", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
