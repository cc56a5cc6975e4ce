package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
)

// Asset event actions carried on the queue.
const (
	// ActionAssetOrphaned marks an asset whose cleanup failed after its
	// product row was already deleted.
	ActionAssetOrphaned = "asset_orphaned"

	// ActionReconcileRequested asks the reconcile worker to verify a
	// product's asset and re-upload or flag it.
	ActionReconcileRequested = "reconcile_requested"
)

// PublisherAPI defines the interface for SQS operations used by Publisher.
type PublisherAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Publisher handles publishing asset-consistency events to AWS SQS.
type Publisher struct {
	client   PublisherAPI
	queueURL string
}

// NewPublisher creates a new SQS Publisher with the given client and queue URL.
func NewPublisher(client PublisherAPI, queueURL string) *Publisher {
	return &Publisher{
		client:   client,
		queueURL: queueURL,
	}
}

// AssetMessage represents an asset-consistency event for one product.
type AssetMessage struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	ProductID int64  `json:"product_id"`
	AssetKey  string `json:"asset_key"`
}

// PublishAssetMessage publishes an asset event to the SQS queue,
// assigning a message ID when the caller left it empty.
func (p *Publisher) PublishAssetMessage(ctx context.Context, msg AssetMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	messageBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(messageBody)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
