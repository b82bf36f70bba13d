package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"worklog-panel/pkg/utils"

	"go.uber.org/zap"
)

const successCode = "00"

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrEmptyMessage = errors.New("empty message")
	ErrProvider     = errors.New("sms provider error")
)

// Message is a single SMS. Encoding is the provider's language/encoding tag
// ("TR" enables Turkish characters).
type Message struct {
	Phone    string
	Text     string
	Encoding string
}

// Result carries the provider-specific detail of a send.
type Result struct {
	Success     bool   `json:"success"`
	Code        string `json:"code"`
	JobID       string `json:"job_id,omitempty"`
	Description string `json:"description,omitempty"`
	Raw         string `json:"-"`
}

// Sender is implemented by every SMS gateway client.
type Sender interface {
	Send(ctx context.Context, msg Message) (*Result, error)
}

// NetgsmClient talks to the Netgsm REST v2 send endpoint.
type NetgsmClient struct {
	apiURL   string
	user     string
	password string
	header   string
	encoding string
	client   *http.Client
	logger   *zap.Logger
}

func NewNetgsmClient(cfg utils.SMSConfig, logger *zap.Logger) *NetgsmClient {
	return &NetgsmClient{
		apiURL:   cfg.APIURL,
		user:     cfg.User,
		password: cfg.Password,
		header:   cfg.Header,
		encoding: cfg.Encoding,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.Named("NetgsmClient"),
	}
}

type netgsmRequest struct {
	MsgHeader string          `json:"msgheader"`
	Encoding  string          `json:"encoding,omitempty"`
	Messages  []netgsmMessage `json:"messages"`
}

type netgsmMessage struct {
	Msg string `json:"msg"`
	No  string `json:"no"`
}

type netgsmResponse struct {
	Code        string `json:"code"`
	JobID       string `json:"jobid"`
	Description string `json:"description"`
}

// Send posts one message. A non-"00" provider code is returned as a Result
// with Success=false together with an ErrProvider-wrapped error.
func (c *NetgsmClient) Send(ctx context.Context, msg Message) (*Result, error) {
	phone, err := NormalizePhone(msg.Phone)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(msg.Text) == "" {
		return nil, ErrEmptyMessage
	}

	encoding := msg.Encoding
	if encoding == "" {
		encoding = c.encoding
	}

	payload, err := json.Marshal(netgsmRequest{
		MsgHeader: c.header,
		Encoding:  encoding,
		Messages:  []netgsmMessage{{Msg: msg.Text, No: phone}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Failed to reach SMS provider", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrProvider, err)
	}

	result := &Result{Raw: string(body)}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("SMS provider returned HTTP error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", result.Raw))
		return result, fmt.Errorf("%w: http status %d", ErrProvider, resp.StatusCode)
	}

	var parsed netgsmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return result, fmt.Errorf("%w: decode response: %v", ErrProvider, err)
	}

	result.Code = parsed.Code
	result.JobID = parsed.JobID
	result.Description = parsed.Description
	result.Success = parsed.Code == successCode

	if !result.Success {
		c.logger.Warn("SMS rejected by provider",
			zap.String("code", parsed.Code),
			zap.String("description", parsed.Description),
			zap.String("phone", utils.MaskPhone(phone)))
		return result, fmt.Errorf("%w: code %s", ErrProvider, parsed.Code)
	}

	c.logger.Info("SMS sent",
		zap.String("job_id", parsed.JobID),
		zap.String("phone", utils.MaskPhone(phone)))
	return result, nil
}

// NormalizePhone strips formatting and the Turkish country/trunk prefix,
// returning the 10-digit subscriber number.
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	switch {
	case len(d) == 12 && strings.HasPrefix(d, "90"):
		d = d[2:]
	case len(d) == 11 && strings.HasPrefix(d, "0"):
		d = d[1:]
	}

	if len(d) != 10 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	return d, nil
}
