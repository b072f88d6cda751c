package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.EmailQueue = (*QueueClient)(nil)

// QueueClient talks to the platform's mail-queue service over HTTP.
type QueueClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewQueueClient(baseURL, apiKey string) *QueueClient {
	return &QueueClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type enqueueRequest struct {
	To         string            `json:"to"`
	TemplateID string            `json:"template_id"`
	Variables  map[string]string `json:"variables"`
}

type enqueueResponse struct {
	Queued  bool   `json:"queued"`
	Message string `json:"message"`
}

func (c *QueueClient) Enqueue(ctx context.Context, to, templateID string, variables map[string]string) (bool, error) {
	jsonData, err := json.Marshal(enqueueRequest{To: to, TemplateID: templateID, Variables: variables})
	if err != nil {
		return false, fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := c.baseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("mail queue error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var response enqueueResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return false, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}
	return response.Queued, nil
}
