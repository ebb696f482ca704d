package clients

import (
	"encoding/json"
	"fmt"
	"time"

	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Publisher sends activity messages to the audit exchange.
type Publisher interface {
	Publish(message models.ActivityMessage) error
}

// ActivityClient publishes user activity events to RabbitMQ.
type ActivityClient struct {
	channel *amqp.Channel
	cfg     *config.RabbitMQConfig
}

func NewActivityClient(cfg *config.Configuration, channel *amqp.Channel) *ActivityClient {
	return &ActivityClient{
		channel: channel,
		cfg:     &cfg.Queue.RabbitMQ,
	}
}

// Publish sends an activity message. The timestamp is stamped here so
// callers only describe what happened.
func (c *ActivityClient) Publish(message models.ActivityMessage) error {
	message.Timestamp = time.Now()

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal activity message: %w", err)
	}

	err = c.channel.Publish(
		c.cfg.Exchange,
		c.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to publish activity message")
		return fmt.Errorf("failed to publish activity message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     message.UserID,
		"session_id":  message.SessionID,
		"service":     message.ServiceName,
		"action":      message.Action,
		"exchange":    c.cfg.Exchange,
		"routing_key": c.cfg.RoutingKey,
	}).Debug("Activity message published")

	return nil
}
