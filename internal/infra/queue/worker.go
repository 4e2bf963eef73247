package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/leadflow/internal/usecase"
)

// DecisionHandler is the decide use case seen from the worker.
type DecisionHandler interface {
	Execute(ctx context.Context, input usecase.DecideApprovalInput) (*usecase.DecideApprovalOutput, error)
}

type Worker struct {
	Channel *amqp.Channel
	Decider DecisionHandler
}

func NewWorker(ch *amqp.Channel, decider DecisionHandler) *Worker {
	return &Worker{
		Channel: ch,
		Decider: decider,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload usecase.DecisionPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Malformed decision message: %s", err)
				// Poison message, reject without requeue.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Decision %s for approval %s (by %s)",
				payload.Decision, payload.ApprovalID, payload.ActorName)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Decision failed: %s", err)
				// Goes to the DLQ; replaying it later is safe because
				// the decide use case is idempotent.
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Decision worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload usecase.DecisionPayload) error {
	out, err := w.Decider.Execute(ctx, usecase.DecideApprovalInput{
		ApprovalID: payload.ApprovalID,
		Decision:   payload.Decision,
		ActorID:    payload.ActorID,
		ActorName:  payload.ActorName,
	})
	if err != nil {
		if usecase.IsNotFound(err) {
			// Expired/unknown id: nothing left to do, drop the message.
			log.Printf("⚠️ [WORKER] Approval %s no longer exists, dropping", payload.ApprovalID)
			return nil
		}
		return err
	}

	if out.AlreadyDecided {
		log.Printf("🔁 [WORKER] Approval %s was already %s, no-op", out.ApprovalID, out.Status)
	} else {
		log.Printf("✅ [WORKER] Approval %s now %s", out.ApprovalID, out.Status)
	}
	return nil
}
