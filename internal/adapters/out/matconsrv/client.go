// Package matconsrv implements the MaterialGateway and ContainerGateway
// ports as JSON-over-HTTP clients of the materials service. The service
// pages its results; both gateways expose the pages as pagination cursors
// so callers never hold more than one page in flight.
package matconsrv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"workplans/internal/core/domain/model/remote"
	"workplans/internal/core/ports"
	"workplans/internal/pkg/pagination"
)

// Client is the HTTP client for the materials service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a materials service client.
//
// Parameters:
//   - baseURL: root URL of the materials service, without trailing slash.
//   - timeout: per-request deadline; expiry surfaces as ports.ErrRemoteTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// pageMeta is the paging envelope the materials service wraps results in.
type pageMeta struct {
	Page       int `json:"page"`
	MaxResults int `json:"max_results"`
	Total      int `json:"total"`
}

type materialPage struct {
	Items []materialPayload `json:"_items"`
	Meta  pageMeta          `json:"_meta"`
}

type materialPayload struct {
	ID         string         `json:"_id"`
	Attributes map[string]any `json:"attributes"`
}

type containerPage struct {
	Items []containerPayload `json:"_items"`
	Meta  pageMeta           `json:"_meta"`
}

type containerPayload struct {
	Barcode   string        `json:"barcode"`
	NumOfRows int           `json:"num_of_rows"`
	NumOfCols int           `json:"num_of_cols"`
	Slots     []slotPayload `json:"slots"`
}

type slotPayload struct {
	Address  string `json:"address"`
	Material string `json:"material"`
}

// QueryByIDs retrieves the materials with the given ids as a paginated
// cursor. Missing ids are simply absent from the result.
func (c *Client) QueryByIDs(
	ctx context.Context,
	materialIDs []string,
) (pagination.Cursor[*remote.Material], error) {
	where, err := json.Marshal(map[string]any{"_id": map[string]any{"$in": materialIDs}})
	if err != nil {
		return nil, err
	}

	return c.materialPage(ctx, string(where), 1)
}

// QueryBySlotMaterialIDs retrieves, as a paginated cursor, every container
// holding at least one of the given materials in its slots.
func (c *Client) QueryBySlotMaterialIDs(
	ctx context.Context,
	materialIDs []string,
) (pagination.Cursor[*remote.Container], error) {
	where, err := json.Marshal(map[string]any{"slots.material": map[string]any{"$in": materialIDs}})
	if err != nil {
		return nil, err
	}

	return c.containerPage(ctx, string(where), 1)
}

func (c *Client) materialPage(
	ctx context.Context,
	where string,
	page int,
) (pagination.Cursor[*remote.Material], error) {
	var decoded materialPage
	if err := c.getPage(ctx, "materials", where, page, &decoded); err != nil {
		return nil, err
	}

	materials := make([]*remote.Material, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		materials = append(materials, &remote.Material{
			ID:         item.ID,
			Attributes: item.Attributes,
		})
	}

	return &materialCursor{
		client:  c,
		where:   where,
		page:    decoded.Meta,
		entries: materials,
	}, nil
}

func (c *Client) containerPage(
	ctx context.Context,
	where string,
	page int,
) (pagination.Cursor[*remote.Container], error) {
	var decoded containerPage
	if err := c.getPage(ctx, "containers", where, page, &decoded); err != nil {
		return nil, err
	}

	containers := make([]*remote.Container, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		slots := make([]remote.Slot, 0, len(item.Slots))
		for _, slot := range item.Slots {
			if slot.Material == "" {
				continue
			}
			slots = append(slots, remote.Slot{
				Address:    slot.Address,
				MaterialID: slot.Material,
			})
		}
		containers = append(containers, &remote.Container{
			Barcode: item.Barcode,
			NumRows: item.NumOfRows,
			NumCols: item.NumOfCols,
			Slots:   slots,
		})
	}

	return &containerCursor{
		client:  c,
		where:   where,
		page:    decoded.Meta,
		entries: containers,
	}, nil
}

func (c *Client) getPage(ctx context.Context, resource, where string, page int, out any) error {
	query := url.Values{}
	query.Set("where", where)
	query.Set("page", fmt.Sprintf("%d", page))

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/%s?%s", c.baseURL, resource, query.Encode()),
		nil,
	)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("materials service returned %s for %s", resp.Status, resource)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// hasNext reports whether pages remain after the given one.
func hasNext(meta pageMeta) bool {
	if meta.MaxResults <= 0 {
		return false
	}
	return meta.Page*meta.MaxResults < meta.Total
}

type materialCursor struct {
	client  *Client
	where   string
	page    pageMeta
	entries []*remote.Material
}

func (c *materialCursor) CurrentPage() []*remote.Material {
	return c.entries
}

func (c *materialCursor) HasNext() bool {
	return hasNext(c.page)
}

func (c *materialCursor) Next(ctx context.Context) (pagination.Cursor[*remote.Material], error) {
	return c.client.materialPage(ctx, c.where, c.page.Page+1)
}

type containerCursor struct {
	client  *Client
	where   string
	page    pageMeta
	entries []*remote.Container
}

func (c *containerCursor) CurrentPage() []*remote.Container {
	return c.entries
}

func (c *containerCursor) HasNext() bool {
	return hasNext(c.page)
}

func (c *containerCursor) Next(ctx context.Context) (pagination.Cursor[*remote.Container], error) {
	return c.client.containerPage(ctx, c.where, c.page.Page+1)
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
