package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultMandrillURL = "https://mandrillapp.com/api/1.0"

// MandrillSender sends through the Mandrill messages API.
type MandrillSender struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewMandrill(apiKey, baseURL string) *MandrillSender {
	if baseURL == "" {
		baseURL = DefaultMandrillURL
	}
	return &MandrillSender{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type mandrillRecipient struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

type mandrillMessage struct {
	HTML               string              `json:"html"`
	Subject            string              `json:"subject"`
	FromEmail          string              `json:"from_email"`
	FromName           string              `json:"from_name"`
	To                 []mandrillRecipient `json:"to"`
	Important          bool                `json:"important"`
	TrackOpens         bool                `json:"track_opens"`
	TrackClicks        bool                `json:"track_clicks"`
	AutoText           bool                `json:"auto_text"`
	Tags               []string            `json:"tags"`
	Headers            map[string]string   `json:"headers"`
	PreserveRecipients bool                `json:"preserve_recipients"`
}

type mandrillResult struct {
	Email        string `json:"email"`
	Status       string `json:"status"`
	RejectReason string `json:"reject_reason"`
}

func (s *MandrillSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return &Error{Reason: "no recipients"}
	}
	to := make([]mandrillRecipient, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, mandrillRecipient{Email: addr, Type: "to"})
	}
	payload, err := json.Marshal(map[string]any{
		"key": s.apiKey,
		"message": mandrillMessage{
			HTML:      msg.HTML,
			Subject:   msg.Subject,
			FromEmail: msg.FromEmail,
			FromName:  msg.FromName,
			To:        to,
			AutoText:  true,
			Tags:      msg.Tags,
			Headers:   map[string]string{"Reply-To": msg.FromEmail},
		},
		"async": true,
	})
	if err != nil {
		return &Error{Reason: "encode message", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages/send.json", bytes.NewReader(payload))
	if err != nil {
		return &Error{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return &Error{Reason: "provider unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &Error{Reason: fmt.Sprintf("provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var results []mandrillResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return &Error{Reason: "decode response", Err: err}
	}
	for _, r := range results {
		if r.Status == "sent" || r.Status == "queued" || r.Status == "scheduled" {
			return nil
		}
	}
	if len(results) > 0 {
		return &Error{Reason: fmt.Sprintf("%s: %s", results[0].Status, results[0].RejectReason)}
	}
	return nil
}
