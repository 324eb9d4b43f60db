package main

import (
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/muhammadolammi/cvmatch/internal/database"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume analysis sessions from RabbitMQ",
	Long:  "Consumes sessions from the sessions queue, scores every résumé of the session against its job description and stores the aggregated results.",
	RunE:  runWorker,
}

var workerCount int

func init() {
	workerCmd.Flags().IntVarP(&workerCount, "workers", "w", 0, "Number of concurrent consumers (default from WORKERS, 3)")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireWorker(); err != nil {
		return err
	}
	if workerCount > 0 {
		cfg.Workers = workerCount
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBURL)
	if err != nil {
		return fmt.Errorf("error opening db: %w", err)
	}
	defer db.Close()

	files, err := NewR2Store(ctx, cfg.R2)
	if err != nil {
		return err
	}

	analyzer, err := buildAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	defer conn.Close()

	wc := &WorkerConfig{
		DB:          database.New(db),
		Files:       files,
		Updates:     &AMQPPublisher{conn: conn},
		Analyzer:    analyzer,
		RabbitMQURL: cfg.RabbitMQURL,
		Logger:      logger,
	}

	logger.Info("starting consumer pool", "workers", cfg.Workers)
	return wc.StartConsumerWorkerPool(ctx, cfg.Workers)
}
