package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Supported driver names for NewFromDriver.
const (
	// DriverNATS selects the NATS backend.
	DriverNATS = "nats"
	// DriverNSQ selects the NSQ backend.
	DriverNSQ = "nsq"
	// DriverKafka selects the Kafka backend.
	DriverKafka = "kafka"
	// DriverGooglePubSub selects the Google Pub/Sub backend.
	DriverGooglePubSub = "google-pubsub"
)

// ErrUnknownDriver indicates an unsupported messaging driver.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions bundles per-backend configuration.
type FactoryOptions struct {
	// NATS configures the NATS driver.
	NATS NATSConfig
	// NSQ configures the NSQ driver.
	NSQ NSQConfig
	// Kafka configures the Kafka driver.
	Kafka KafkaConfig
	// PubSub configures the Google Pub/Sub driver.
	PubSub PubSubConfig
}

// NewFromDriver builds a Messaging implementation for the named driver.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.TrimSpace(driver) {
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	case DriverGooglePubSub:
		return NewPubSub(ctx, opts.PubSub)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
