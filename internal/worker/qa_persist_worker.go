package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"docchat/internal/model"
	"docchat/internal/repository"
)

// QAPersistWorker drains the audit queue and writes answered questions to
// the database. Decode or persist failures are nacked without requeue.
type QAPersistWorker struct {
	conn      *amqp.Connection
	repo      *repository.QARecordRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
}

func NewQAPersistWorker(conn *amqp.Connection, repo *repository.QARecordRepository, queueName string) *QAPersistWorker {
	return &QAPersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *QAPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.setRunning(true)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()
		defer w.setRunning(false)

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var rec model.QARecord
				if err := json.Unmarshal(d.Body, &rec); err != nil {
					log.Printf("worker decode qa record failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.Create(&rec); err != nil {
					log.Printf("worker persist qa record failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *QAPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

// Running reports whether the consume loop is alive. It goes false when the
// worker is closed or the delivery channel is lost.
func (w *QAPersistWorker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *QAPersistWorker) setRunning(v bool) {
	w.mu.Lock()
	w.running = v
	w.mu.Unlock()
}
