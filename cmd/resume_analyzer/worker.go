package main

import (
	"errors"
	"fmt"

	"github.com/drishanroy/resume-analysis-app/internal/queue"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume analysis jobs from an AMQP queue",
	Long:  `Consume analysis jobs from a durable AMQP queue and publish each result to the job's reply queue.`,
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().Int("workers", 0, "number of concurrent consumers (overrides queue.workers)")
	mustBind("queue.workers", workerCmd.Flags().Lookup("workers"))
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	a, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.Queue.URL == "" {
		return errors.New("queue.url is required")
	}

	conn, err := amqp.Dial(a.cfg.Queue.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		if amqpErr, ok := <-closed; ok && amqpErr != nil {
			a.logger.Error("broker connection closed", zap.String("reason", amqpErr.Reason), zap.Int("code", amqpErr.Code))
			stop()
		}
	}()

	a.logger.Info("starting worker",
		zap.String("queue", a.cfg.Queue.Name),
		zap.Int("workers", a.cfg.Queue.Workers),
	)
	return queue.NewWorker(ch, a.cfg.Queue, a.documents, a.service, a.logger).Run(ctx)
}
