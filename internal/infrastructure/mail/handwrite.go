package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ekoink.backend/internal/config"
	domainerrors "ekoink.backend/internal/domain/errors"
)

// Client submits physical card orders to the Handwrite fulfillment API.
type Client struct {
	apiKey        string
	baseURL       string
	handwritingID string
	httpClient    *http.Client
}

func NewClient(cfg config.HandwriteConfig) *Client {
	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       cfg.BaseURL,
		handwritingID: cfg.HandwritingID,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Order is a single card to be written and mailed.
type Order struct {
	Message          string
	RecipientName    string
	RecipientAddress string
}

type orderRequest struct {
	Message     string `json:"message"`
	Handwriting string `json:"handwriting"`
	Recipient   struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"recipient"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// CreateOrder submits the card and returns the fulfillment order ID.
func (c *Client) CreateOrder(ctx context.Context, order Order) (string, error) {
	reqBody := orderRequest{
		Message:     order.Message,
		Handwriting: c.handwritingID,
	}
	reqBody.Recipient.Name = order.RecipientName
	reqBody.Recipient.Address = order.RecipientAddress

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read order response: %v", domainerrors.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: handwrite status %d", domainerrors.ErrUpstream, resp.StatusCode)
	}

	var parsed orderResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode order response: %v", domainerrors.ErrUpstream, err)
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("%w: order response missing id", domainerrors.ErrUpstream)
	}
	return parsed.ID, nil
}
