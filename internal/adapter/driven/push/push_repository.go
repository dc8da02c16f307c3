package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
	"github.com/gregohare/finout-top-costs/internal/domain/repository"
)

// PushRepositoryImpl implements PushRepository with a plain JSON POST. No
// retries: a failed push fails the run.
type PushRepositoryImpl struct {
	client *http.Client
}

// NewPushRepository creates a new push collaborator.
func NewPushRepository() repository.PushRepository {
	return &PushRepositoryImpl{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Push POSTs the payload as JSON and returns the response status and body.
func (r *PushRepositoryImpl) Push(ctx context.Context, payload entity.PushPayload, url string) (int, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("error encoding push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("error building push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("error pushing to %s: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("error reading push response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, string(respBody), fmt.Errorf("push endpoint returned %d: %s", resp.StatusCode, string(respBody))
	}

	return resp.StatusCode, string(respBody), nil
}
