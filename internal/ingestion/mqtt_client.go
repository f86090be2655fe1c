package ingestion

import (
	"errors"
	"fmt"
	"sync"

	"fleet-device-manager/internal/logger"
	pkgmqtt "fleet-device-manager/pkg/mqtt"

	"go.uber.org/zap"
)

// MQTTFeedConfig describes the presence topic and MQTT connection parameters.
type MQTTFeedConfig struct {
	ClientConfig  *pkgmqtt.Config
	PresenceTopic string
	QoS           byte
}

// MQTTFeedClient wires SOTI presence messages into the processor.
type MQTTFeedClient struct {
	cfg       *MQTTFeedConfig
	client    *pkgmqtt.Client
	processor *Processor

	mu      sync.Mutex
	started bool
}

// NewMQTTFeedClient builds a new MQTT client for the presence feed.
func NewMQTTFeedClient(cfg *MQTTFeedConfig, processor *Processor) (*MQTTFeedClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt feed config is not configured")
	}
	if cfg.PresenceTopic == "" {
		return nil, errors.New("presence topic is required")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	return &MQTTFeedClient{
		cfg:       cfg,
		client:    pkgmqtt.NewClient(cfg.ClientConfig),
		processor: processor,
	}, nil
}

// Start establishes the MQTT connection and subscribes to the presence topic.
func (c *MQTTFeedClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.PresenceTopic, c.cfg.QoS, c.handlePresenceMessage); err != nil {
		c.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.PresenceTopic, err)
	}

	logger.Info("Listening for presence snapshots", zap.String("topic", c.cfg.PresenceTopic))
	c.started = true
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (c *MQTTFeedClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if err := c.client.Unsubscribe(c.cfg.PresenceTopic); err != nil {
		logger.Warn("Failed to unsubscribe from presence topic", zap.Error(err))
	}
	c.client.Disconnect()
	c.started = false
}

func (c *MQTTFeedClient) handlePresenceMessage(_ string, payload []byte) {
	msg, err := ParsePresenceData(payload)
	if err != nil {
		logger.Warn("Invalid presence payload", zap.Error(err))
		return
	}
	c.processor.ProcessPresence(msg)
}
