// internal/common/alerting/sns.go
package alerting

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"route-optimizer/internal/common/logger"
)

// Publisher is the narrow SNS surface used by the notifier; satisfied by
// *sns.Client and by test doubles.
type Publisher interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier publishes provider availability transitions to an SNS topic so
// operations hears about outages even though the engine keeps serving from
// the fallback path. A nil Notifier is safe to call.
type Notifier struct {
	client   Publisher
	topicARN string
	log      logger.Logger

	mu   sync.Mutex
	down bool
}

func NewNotifier(ctx context.Context, region, topicARN string, log logger.Logger) (*Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &Notifier{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
		log:      log,
	}, nil
}

// NewNotifierWithClient wires a preconstructed publisher; used by tests.
func NewNotifierWithClient(client Publisher, topicARN string, log logger.Logger) *Notifier {
	return &Notifier{client: client, topicARN: topicARN, log: log}
}

// ProviderDown publishes a single outage alert per availability transition.
// Repeated calls while the provider stays down are suppressed.
func (n *Notifier) ProviderDown(ctx context.Context, provider, reason string) {
	if n == nil || n.client == nil {
		return
	}

	n.mu.Lock()
	if n.down {
		n.mu.Unlock()
		return
	}
	n.down = true
	n.mu.Unlock()

	n.publish(ctx, fmt.Sprintf("Distance provider %q is unavailable: %s. Route optimization is running in fallback mode.", provider, reason))
}

// ProviderRecovered publishes a recovery alert when the provider answers
// again after a reported outage.
func (n *Notifier) ProviderRecovered(ctx context.Context, provider string) {
	if n == nil || n.client == nil {
		return
	}

	n.mu.Lock()
	if !n.down {
		n.mu.Unlock()
		return
	}
	n.down = false
	n.mu.Unlock()

	n.publish(ctx, fmt.Sprintf("Distance provider %q has recovered. Route optimization resumed live routing.", provider))
}

func (n *Notifier) publish(ctx context.Context, message string) {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String("route-optimizer provider status"),
		Message:  aws.String(message),
	})
	if err != nil && n.log != nil {
		n.log.Warn("alert publish failed", map[string]interface{}{"error": err.Error()})
	}
}
