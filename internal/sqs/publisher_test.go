package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSQSClient is a mock implementation of the SQS client for testing.
type mockSQSClient struct {
	sendMessageFunc func(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

func (m *mockSQSClient) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if m.sendMessageFunc != nil {
		return m.sendMessageFunc(ctx, params, optFns...)
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestPublisher_PublishAssetMessage(t *testing.T) {
	queueURL := "https://sqs.us-east-1.amazonaws.com/123456789/asset-events"

	t.Run("successful message publish assigns id", func(t *testing.T) {
		ctx := context.Background()

		var sentBody string
		mockClient := &mockSQSClient{
			sendMessageFunc: func(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
				assert.Equal(t, queueURL, *params.QueueUrl)
				require.NotNil(t, params.MessageBody)
				sentBody = *params.MessageBody
				return &sqs.SendMessageOutput{MessageId: aws.String("test-message-id")}, nil
			},
		}

		publisher := NewPublisher(mockClient, queueURL)

		msg := AssetMessage{
			Action:    ActionAssetOrphaned,
			ProductID: 42,
			AssetKey:  "Wolf-of-Wilderness",
		}

		err := publisher.PublishAssetMessage(ctx, msg)
		require.NoError(t, err)

		var sent AssetMessage
		require.NoError(t, json.Unmarshal([]byte(sentBody), &sent))
		assert.NotEmpty(t, sent.ID)
		assert.Equal(t, ActionAssetOrphaned, sent.Action)
		assert.Equal(t, int64(42), sent.ProductID)
		assert.Equal(t, "Wolf-of-Wilderness", sent.AssetKey)
	})

	t.Run("send failure is returned", func(t *testing.T) {
		mockClient := &mockSQSClient{
			sendMessageFunc: func(_ context.Context, _ *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
				return nil, errors.New("queue unavailable")
			},
		}

		publisher := NewPublisher(mockClient, queueURL)

		err := publisher.PublishAssetMessage(context.Background(), AssetMessage{Action: ActionReconcileRequested, ProductID: 7})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
	})
}
