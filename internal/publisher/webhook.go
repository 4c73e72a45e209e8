package publisher

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
)

const (
	headerRunID    = "X-Jdoop-Run-Id"
	headerArtifact = "X-Jdoop-Artifact"
)

// WebhookPublisher posts each artifact as the body of a request to a URL.
type WebhookPublisher struct {
	client *resty.Client
	url    string
	token  string
	logger hclog.Logger
}

// NewWebhookPublisher creates a WebhookPublisher. A nil client gets a default one.
func NewWebhookPublisher(client *resty.Client, cfg config.WebhookPublish, logger hclog.Logger) *WebhookPublisher {
	if client == nil {
		client = resty.New()
	}
	return &WebhookPublisher{
		client: client,
		url:    cfg.URL,
		token:  cfg.Token,
		logger: logger,
	}
}

func (p *WebhookPublisher) Name() string {
	return "webhook"
}

func (p *WebhookPublisher) Publish(ctx context.Context, runID string, a Artifact) (string, error) {
	req := p.client.R().
		SetContext(ctx).
		SetHeader(headerRunID, runID).
		SetHeader(headerArtifact, a.Name).
		SetBody(a.Data)
	if a.ContentType != "" {
		req.SetHeader("Content-Type", a.ContentType)
	}
	if p.token != "" {
		req.SetAuthToken(p.token)
	}

	resp, err := req.Post(p.url)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", p.url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("request to %s failed with status %s", p.url, resp.Status())
	}

	p.logger.Debug("webhook accepted artifact", "url", p.url, "status", resp.StatusCode())
	return p.url, nil
}
