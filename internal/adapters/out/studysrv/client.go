// Package studysrv implements the StudyGateway port as a JSON-over-HTTP
// client of the study service, which owns the project tree that plans are
// billed against.
//
// Node lookups and permission listings are wrapped in singleflight: the
// submission scheduler and the plan listing fire bursts of identical
// lookups, and collapsing them keeps the study service out of the hot path.
package studysrv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/remote"
	"workplans/internal/core/ports"
	"workplans/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

// Client is the HTTP client for the study service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
}

// NewClient creates a study service client.
//
// Parameters:
//   - baseURL: root URL of the study service, without trailing slash.
//   - timeout: per-request deadline; expiry surfaces as ports.ErrRemoteTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type nodePayload struct {
	ID              int64  `json:"id"`
	NodeUUID        string `json:"node_uuid"`
	Name            string `json:"name"`
	CostCode        string `json:"cost_code"`
	DataReleaseUUID string `json:"data_release_uuid"`
	ParentID        *int64 `json:"parent_id"`
	Subproject      bool   `json:"subproject"`
}

type permissionPayload struct {
	Permitted bool `json:"permitted"`
}

type nodeListPayload struct {
	IDs []int64 `json:"node_ids"`
}

// FindNode retrieves one node of the project tree by id. Concurrent lookups
// of the same node share a single request.
func (c *Client) FindNode(ctx context.Context, nodeID int64) (*remote.ProjectNode, error) {
	key := fmt.Sprintf("node:%d", nodeID)
	result, err, _ := c.group.Do(key, func() (any, error) {
		return c.fetchNode(ctx, nodeID)
	})
	if err != nil {
		return nil, err
	}

	return result.(*remote.ProjectNode), nil
}

// HasSpendPermission reports whether the user may spend against the given
// project node.
func (c *Client) HasSpendPermission(ctx context.Context, user kernel.User, nodeID int64) (bool, error) {
	query := url.Values{}
	query.Set("user", user.Email().String())
	query.Set("permission", "spend")

	var payload permissionPayload
	err := c.get(ctx, fmt.Sprintf("%s/nodes/%d/permissions?%s", c.baseURL, nodeID, query.Encode()), &payload)
	if err != nil {
		return false, err
	}

	return payload.Permitted, nil
}

// SpendableProjectIDs lists every project node id the user may spend
// against. Concurrent listings for the same user share a single request.
func (c *Client) SpendableProjectIDs(ctx context.Context, user kernel.User) ([]int64, error) {
	key := "spendable:" + user.Email().String()
	result, err, _ := c.group.Do(key, func() (any, error) {
		query := url.Values{}
		query.Set("user", user.Email().String())
		query.Set("permission", "spend")

		var payload nodeListPayload
		if getErr := c.get(ctx, fmt.Sprintf("%s/nodes?%s", c.baseURL, query.Encode()), &payload); getErr != nil {
			return nil, getErr
		}
		return payload.IDs, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]int64), nil
}

func (c *Client) fetchNode(ctx context.Context, nodeID int64) (*remote.ProjectNode, error) {
	var payload nodePayload
	if err := c.get(ctx, fmt.Sprintf("%s/nodes/%d", c.baseURL, nodeID), &payload); err != nil {
		return nil, err
	}

	nodeUUID, err := kernel.UUIDFromString(payload.NodeUUID)
	if err != nil {
		return nil, err
	}

	return &remote.ProjectNode{
		ID:              payload.ID,
		UUID:            nodeUUID,
		Name:            payload.Name,
		CostCode:        payload.CostCode,
		DataReleaseUUID: payload.DataReleaseUUID,
		ParentID:        payload.ParentID,
		IsSubproject:    payload.Subproject,
	}, nil
}

func (c *Client) get(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundError("node", requestURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("study service returned %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
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
