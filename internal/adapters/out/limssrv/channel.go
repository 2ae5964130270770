// Package limssrv implements the SubmissionChannel port: it delivers
// finished submission documents to the execution LIMS named by the product's
// catalogue.
package limssrv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"workplans/internal/core/domain/model/submission"
	"workplans/internal/core/ports"
)

// Channel posts submission documents to a LIMS over HTTP.
type Channel struct {
	httpClient *http.Client
}

// NewChannel creates a submission channel.
// timeout bounds each delivery; expiry surfaces as ports.ErrRemoteTimeout.
func NewChannel(timeout time.Duration) *Channel {
	return &Channel{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Post delivers the document to the given LIMS URL. Delivery is not
// idempotent on the receiving side; callers must not retry blindly.
func (c *Channel) Post(ctx context.Context, url string, doc *submission.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return fmt.Errorf("%w: %v", ports.ErrRemoteTimeout, err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("LIMS at %s returned %s", url, resp.Status)
	}

	return nil
}
