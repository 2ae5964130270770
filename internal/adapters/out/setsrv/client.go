// Package setsrv implements the SetGateway port as a JSON-over-HTTP client
// of the set service. The set service owns the named material collections
// that plans and orders reference by UUID.
package setsrv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/remote"
	"workplans/internal/core/ports"
	"workplans/internal/pkg/errs"
)

// Client is the HTTP client for the set service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a set service client.
//
// Parameters:
//   - baseURL: root URL of the set service, without trailing slash.
//   - timeout: per-request deadline; expiry surfaces as ports.ErrRemoteTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type setPayload struct {
	UUID      string   `json:"uuid"`
	Name      string   `json:"name"`
	Locked    bool     `json:"locked"`
	Materials []string `json:"materials,omitempty"`
}

// Find retrieves a set without resolving its materials.
func (c *Client) Find(ctx context.Context, setUUID kernel.UUID) (*remote.Set, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/sets/%s", c.baseURL, setUUID))
}

// FindWithMaterials retrieves a set together with its material ids.
func (c *Client) FindWithMaterials(ctx context.Context, setUUID kernel.UUID) (*remote.Set, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/sets/%s?include=materials", c.baseURL, setUUID))
}

// CreateLockedClone copies the given set into a new set with the given name
// and locks it. Locking is a separate call on the set service; a clone that
// was created but could not be locked is reported as an error and left
// behind for manual cleanup.
func (c *Client) CreateLockedClone(
	ctx context.Context,
	setUUID kernel.UUID,
	name string,
) (*remote.Set, error) {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/sets/%s/clone", c.baseURL, setUUID),
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	clone, err := c.do(req)
	if err != nil {
		return nil, err
	}

	return c.lock(ctx, clone)
}

func (c *Client) lock(ctx context.Context, set *remote.Set) (*remote.Set, error) {
	body, err := json.Marshal(map[string]bool{"locked": true})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPatch,
		fmt.Sprintf("%s/sets/%s", c.baseURL, set.UUID),
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	locked, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("lock cloned set %s: %w", set.UUID, err)
	}

	return locked, nil
}

func (c *Client) fetch(ctx context.Context, url string) (*remote.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*remote.Set, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.NewObjectNotFoundError("set", req.URL.String())
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("set service returned %s", resp.Status)
	}

	var payload setPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	return toDomain(payload)
}

func toDomain(payload setPayload) (*remote.Set, error) {
	setUUID, err := kernel.UUIDFromString(payload.UUID)
	if err != nil {
		return nil, err
	}

	return &remote.Set{
		UUID:        setUUID,
		Name:        payload.Name,
		Locked:      payload.Locked,
		MaterialIDs: payload.Materials,
	}, nil
}

// classify maps transport timeouts to the port's timeout sentinel so callers
// can distinguish transient failures from hard errors.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ports.ErrRemoteTimeout, err)
	}
	return err
}
