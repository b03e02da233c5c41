package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/notification"
)

// PubSubConfig selects the topic alerts are published to
type PubSubConfig struct {
	ProjectID       string
	TopicID         string
	CredentialsJSON string // empty means Application Default Credentials
}

// PubSubNotifier publishes alerts to a Google Pub/Sub topic
type PubSubNotifier struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	logger coreport.Logger
}

// NewPubSubNotifier connects to Pub/Sub and binds the configured topic
func NewPubSubNotifier(ctx context.Context, cfg PubSubConfig, logger coreport.Logger) (*PubSubNotifier, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("pubsub project ID is required")
	}
	if cfg.TopicID == "" {
		return nil, errors.New("pubsub topic is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	logger.Info("Pub/Sub notifier ready", map[string]any{
		"project_id": cfg.ProjectID,
		"topic":      cfg.TopicID,
	})

	return &PubSubNotifier{
		client: client,
		topic:  client.Topic(cfg.TopicID),
		logger: logger,
	}, nil
}

// Notify publishes the alert and waits for the server-assigned message ID
func (n *PubSubNotifier) Notify(ctx context.Context, txn *entity.Transaction) error {
	data, attrs, err := EncodeAlert(txn)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}

	result := n.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})

	id, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}

	n.logger.Debug("Alert published", map[string]any{
		"transaction_id": txn.ID,
		"message_id":     id,
	})
	return nil
}

// Close flushes pending publishes and closes the client
func (n *PubSubNotifier) Close() error {
	n.topic.Stop()
	return n.client.Close()
}

var _ notification.Notifier = (*PubSubNotifier)(nil)
