// Package queue consumes analysis jobs from RabbitMQ and publishes the
// results to each job's reply queue.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/drishanroy/resume-analysis-app/internal/config"
	"github.com/drishanroy/resume-analysis-app/internal/logging"
	"github.com/drishanroy/resume-analysis-app/internal/storage"
	"github.com/drishanroy/resume-analysis-app/internal/types"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Channel is the subset of *amqp.Channel used by the worker.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// DocumentReader fetches document bytes by URI. *storage.Store implements it.
type DocumentReader interface {
	Read(ctx context.Context, uri string) ([]byte, error)
}

// Analyzer runs one analysis. *analysis.Service implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalyzeRequest, data []byte) (*types.AnalysisResult, error)
}

const readAttempts = 3

// Worker runs a pool of consumers on one channel.
type Worker struct {
	ch         Channel
	cfg        config.QueueConfig
	documents  DocumentReader
	analyzer   Analyzer
	logger     *zap.Logger
	retryDelay time.Duration

	publishMu sync.Mutex
}

// NewWorker creates a Worker.
func NewWorker(ch Channel, cfg config.QueueConfig, documents DocumentReader, analyzer Analyzer, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 1
	}
	return &Worker{
		ch:         ch,
		cfg:        cfg,
		documents:  documents,
		analyzer:   analyzer,
		logger:     logger,
		retryDelay: 500 * time.Millisecond,
	}
}

// Run declares the durable job queue and consumes it with cfg.Workers
// goroutines until ctx is cancelled or the delivery channel closes.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.ch.Qos(w.cfg.Prefetch*w.cfg.Workers, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}
	if _, err := w.ch.QueueDeclare(
		w.cfg.Name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", w.cfg.Name, err)
	}

	deliveries, err := w.ch.Consume(
		w.cfg.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", w.cfg.Name, err)
	}

	var wg sync.WaitGroup
	wg.Add(w.cfg.Workers)
	for i := range w.cfg.Workers {
		w.logger.Info("worker started", zap.Int("worker", i+1), zap.String("queue", w.cfg.Name))
		go func() {
			defer wg.Done()
			w.consume(ctx, i+1, deliveries)
		}()
	}
	wg.Wait()
	return nil
}

func (w *Worker) consume(ctx context.Context, id int, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				w.logger.Info("delivery channel closed", zap.Int("worker", id))
				return
			}
			w.Handle(ctx, d)
		}
	}
}

// Handle processes one delivery. Malformed jobs are rejected without
// requeue. Every other job is answered on ReplyTo and acked; if the reply
// cannot be published the job is requeued once.
func (w *Worker) Handle(ctx context.Context, d amqp.Delivery) {
	correlationID := d.CorrelationId
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	logger := w.logger.With(logging.RequestFields(correlationID, "")...)

	job, err := DecodeJob(d)
	if err != nil {
		logger.Warn("rejecting malformed job", zap.Error(err))
		if pubErr := w.reply(d.ReplyTo, correlationID, Reply{Status: StatusFailed, Error: err.Error()}); pubErr != nil {
			logger.Warn("failed to publish reply", zap.Error(pubErr))
		}
		if err := d.Reject(false); err != nil {
			logger.Warn("failed to reject delivery", zap.Error(err))
		}
		return
	}

	logger = logger.With(zap.String("filename", logging.TruncateForLog(job.Filename, 80)))
	reply := w.process(ctx, job, logger)

	if err := w.reply(d.ReplyTo, correlationID, reply); err != nil {
		logger.Error("failed to publish reply", zap.Error(err))
		if err := d.Nack(false, !d.Redelivered); err != nil {
			logger.Warn("failed to nack delivery", zap.Error(err))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		logger.Warn("failed to ack delivery", zap.Error(err))
	}
}

func (w *Worker) process(ctx context.Context, job *Job, logger *zap.Logger) Reply {
	start := time.Now()

	data, err := w.readDocument(ctx, job.DocumentURI)
	if err != nil {
		logger.Warn("failed to read document", zap.String("uri", job.DocumentURI), zap.Error(err))
		return Reply{Status: StatusFailed, Error: err.Error()}
	}

	req := job.Request()
	result, err := w.analyzer.Analyze(ctx, req, data)
	if err != nil {
		logger.Warn("analysis failed", zap.Error(err))
		return Reply{Status: StatusFailed, Error: err.Error()}
	}

	logger.Info("job completed",
		zap.Float64("overall_score", result.OverallScore),
		zap.Duration("elapsed", time.Since(start)),
	)
	return Reply{Status: StatusCompleted, Result: result}
}

// readDocument retries transient read failures with a linear backoff.
func (w *Worker) readDocument(ctx context.Context, uri string) ([]byte, error) {
	var lastErr error
	for i := 0; i < readAttempts; i++ {
		data, err := w.documents.Read(ctx, uri)
		if err == nil {
			return data, nil
		}
		lastErr = err

		var tooLarge *storage.TooLargeError
		if errors.As(err, &tooLarge) || errors.Is(err, storage.ErrNoObjectStore) {
			return nil, err
		}
		if i == readAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(w.retryDelay * time.Duration(i+1)):
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", readAttempts, lastErr)
}

// reply publishes r to the default exchange. An empty replyTo means the
// producer does not want an answer.
func (w *Worker) reply(replyTo, correlationID string, r Reply) error {
	if replyTo == "" {
		return nil
	}
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	w.publishMu.Lock()
	defer w.publishMu.Unlock()
	return w.ch.Publish(
		"",      // default exchange
		replyTo, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			Timestamp:     time.Now(),
			Body:          body,
		},
	)
}
