package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const fcmSendURL = "https://fcm.googleapis.com/fcm/send"

// FCMMessenger delivers payloads through the FCM HTTP send endpoint.
type FCMMessenger struct {
	key      string
	endpoint string
	http     *retryablehttp.Client
}

func NewFCMMessenger(serverKey string) *FCMMessenger {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	rc.HTTPClient.Timeout = 10 * time.Second

	return &FCMMessenger{
		key:      serverKey,
		endpoint: fcmSendURL,
		http:     rc,
	}
}

func (m *FCMMessenger) Send(ctx context.Context, p Payload) error {
	body := map[string]any{
		"to": p.Token,
		"notification": map[string]string{
			"title": p.Title,
			"body":  p.Body,
		},
		"data": p.Data,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode fcm message: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+m.key)

	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("fcm returned %d", resp.StatusCode)
	}
	return nil
}
