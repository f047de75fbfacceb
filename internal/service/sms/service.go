package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"citizen-portal/internal/config"
)

var ErrGatewayNotConfigured = errors.New("sms gateway is not configured")

// Service sends short messages through an external SMS gateway.
type Service interface {
	Send(ctx context.Context, toNumber, message string) error
}

type service struct {
	httpClient *http.Client
	gatewayURL string
	apiKey     string
	senderID   string
}

func NewService(cfg *config.Config) Service {
	return &service{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		gatewayURL: cfg.SMSGatewayURL,
		apiKey:     cfg.SMSAPIKey,
		senderID:   cfg.SMSSenderID,
	}
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

func (s *service) Send(ctx context.Context, toNumber, message string) error {
	if s.gatewayURL == "" {
		return ErrGatewayNotConfigured
	}

	payload, err := json.Marshal(sendRequest{
		To:      toNumber,
		From:    s.senderID,
		Message: message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
