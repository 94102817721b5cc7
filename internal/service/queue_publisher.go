// Package notifier publishes notification events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures
// without interrupting the main request flow: a notification must
// never fail the state transition that produced it.
package notifier

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/Visheshvd/playarena/internal/queue"
)

// ToUser publishes an event addressed to a single user.
func ToUser(ctx context.Context, userID uint64, typ, title, body, tag string, data map[string]string) error {
	return publish(ctx, q.NotificationEvent{
		Type:      typ,
		Audience:  q.AudienceUser,
		UserID:    userID,
		Title:     title,
		Body:      body,
		Tag:       tag,
		Data:      data,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// ToAdmins publishes an event fanned out to every admin account.
func ToAdmins(ctx context.Context, typ, title, body, tag string, data map[string]string) error {
	return publish(ctx, q.NotificationEvent{
		Type:      typ,
		Audience:  q.AudienceAdmins,
		Title:     title,
		Body:      body,
		Tag:       tag,
		Data:      data,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// publish sends one event to the "notifications" queue.  The function
// attempts to be robust and to never panic; any error is logged and
// returned so the caller can choose to ignore it.  Messages are marked
// as persistent.
func publish(ctx context.Context, event q.NotificationEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		"notifications", // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,             // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",              // default exchange
		"notifications", // routing key = queue name
		false,           // mandatory
		false,           // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
