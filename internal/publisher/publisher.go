package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
)

// Artifact is one generated report file.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Publisher ships artifacts to a remote destination.
type Publisher interface {
	Name() string
	// Publish stores a and returns where it ended up.
	Publish(ctx context.Context, runID string, a Artifact) (string, error)
}

// FromConfig builds a publisher for every destination configured in cfg.
// The resty client is only used when a webhook is configured.
func FromConfig(cfg *config.Config, client *resty.Client, logger hclog.Logger) ([]Publisher, error) {
	var pubs []Publisher

	if cfg.Publish.S3.Bucket != "" {
		s3p, err := NewS3Publisher(cfg.Publish.S3, logger)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, s3p)
	}
	if cfg.Publish.Webhook.URL != "" {
		pubs = append(pubs, NewWebhookPublisher(client, cfg.Publish.Webhook, logger))
	}
	return pubs, nil
}

// PublishAll sends every artifact to every publisher. A failing destination
// does not stop the others; all failures are returned joined.
func PublishAll(ctx context.Context, pubs []Publisher, runID string, artifacts []Artifact, logger hclog.Logger) error {
	var errs []error
	for _, p := range pubs {
		for _, a := range artifacts {
			location, err := p.Publish(ctx, runID, a)
			if err != nil {
				logger.Error("failed to publish artifact", "publisher", p.Name(), "artifact", a.Name, "err", err)
				errs = append(errs, fmt.Errorf("%s: %s: %w", p.Name(), a.Name, err))
				continue
			}
			logger.Info("artifact published", "publisher", p.Name(), "artifact", a.Name, "location", location)
		}
	}
	return errors.Join(errs...)
}
