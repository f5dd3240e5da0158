package main

import (
	"log"

	"github.com/nabnoey/TK-libralies-System/internal/config"
	"github.com/nabnoey/TK-libralies-System/internal/queue"
)

// The notifier drains notification events from the broker and hands them to
// the delivery channel. It is deployed separately from the API server so a
// slow delivery target never backs up the reservation engine.
func main() {
	cfg := config.Load()

	log.Printf("notifier consuming from %s", queue.NotificationQueueName)
	if err := queue.StartNotificationConsumer(cfg.AMQPURL); err != nil {
		log.Fatalf("consumer stopped: %v", err)
	}
}
