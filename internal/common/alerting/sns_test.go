// internal/common/alerting/sns_test.go
package alerting

import (
	"context"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer/internal/common/logger"
)

type fakePublisher struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakePublisher) Publish(_ context.Context, input *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, *input.Message)
	return &sns.PublishOutput{}, nil
}

func (f *fakePublisher) published() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func TestNotifier_TransitionDedupe(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	n := NewNotifierWithClient(pub, "arn:aws:sns:us-east-1:000000000000:alerts", logger.NewNoOpLogger())

	// Repeated outage reports collapse into one alert.
	n.ProviderDown(ctx, "osrm", "connection refused")
	n.ProviderDown(ctx, "osrm", "connection refused")
	n.ProviderDown(ctx, "osrm", "timeout")

	msgs := pub.published()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "osrm")
	assert.Contains(t, msgs[0], "fallback mode")

	// Recovery fires once, then further recoveries are no-ops.
	n.ProviderRecovered(ctx, "osrm")
	n.ProviderRecovered(ctx, "osrm")

	msgs = pub.published()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1], "recovered")

	// A second outage after recovery alerts again.
	n.ProviderDown(ctx, "osrm", "connection refused")
	assert.Len(t, pub.published(), 3)
}

func TestNotifier_RecoveryWithoutOutageIsSilent(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNotifierWithClient(pub, "arn", logger.NewNoOpLogger())

	n.ProviderRecovered(context.Background(), "osrm")

	assert.Empty(t, pub.published())
}

func TestNotifier_NilSafe(t *testing.T) {
	var n *Notifier

	assert.NotPanics(t, func() {
		n.ProviderDown(context.Background(), "osrm", "down")
		n.ProviderRecovered(context.Background(), "osrm")
	})
}
