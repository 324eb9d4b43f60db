package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/database"
	"github.com/muhammadolammi/cvmatch/internal/document"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

// SessionStore is the part of the query layer the worker needs.
type SessionStore interface {
	GetSession(ctx context.Context, id uuid.UUID) (database.Session, error)
	GetResumesBySession(ctx context.Context, sessionID uuid.UUID) ([]database.Resume, error)
	UpdateSessionStatus(ctx context.Context, arg database.UpdateSessionStatusParams) error
	CreateOrUpdateAnalysesResults(ctx context.Context, arg database.CreateOrUpdateAnalysesResultsParams) error
}

type FileStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type UpdatePublisher interface {
	Publish(update SessionUpdate) error
}

type WorkerConfig struct {
	DB          SessionStore
	Files       FileStore
	Updates     UpdatePublisher
	Analyzer    *analysis.Analyzer
	RabbitMQURL string
	Logger      *slog.Logger
}

func aggregateResult(results *SessionResults, resume database.Resume, report analysis.Report, errorMsg string) {
	result := ResumeResult{
		ResumeID: resume.ID,
		Filename: resume.OriginalFilename,
	}
	if errorMsg != "" {
		result.IsErrorResult = true
		result.Error = errorMsg
	} else {
		result.SimilarityScore = report.SimilarityScore
		result.Feedback = report.Feedback
		result.UsingAI = report.UsingAI
	}
	results.Results = append(results.Results, result)
}

// jobText joins the title and description so the title's keywords take part in matching.
func jobText(msg SessionMessage) string {
	if strings.TrimSpace(msg.JobTitle) == "" {
		return msg.JobDescription
	}
	return msg.JobTitle + "\n\n" + msg.JobDescription
}

// processSession analyses every résumé of a session and stores the aggregate. A résumé that
// cannot be downloaded or read gets an error entry; only store failures fail the session.
func (wc *WorkerConfig) processSession(ctx context.Context, msg SessionMessage) error {
	logger := wc.Logger.With(slog.String("session_id", msg.ID.String()))

	if strings.TrimSpace(msg.JobDescription) == "" {
		stored, err := retry(ctx, 3, func() (database.Session, error) {
			return wc.DB.GetSession(ctx, msg.ID)
		})
		if err != nil {
			return fmt.Errorf("error loading session %v: %w", msg.ID, err)
		}
		msg.JobTitle = stored.JobTitle
		msg.JobDescription = stored.JobDescription
		if msg.Strategy == "" && stored.Strategy.Valid {
			msg.Strategy = stored.Strategy.String
		}
	}

	strategy, err := analysis.ParseStrategy(msg.Strategy)
	if err != nil {
		logger.Warn("ignoring session strategy", slog.Any("error", err))
		strategy = analysis.StrategyLexical
	}
	opts := analysis.Options{Strategy: strategy}

	resumes, err := retry(ctx, 3, func() ([]database.Resume, error) {
		return wc.DB.GetResumesBySession(ctx, msg.ID)
	})
	if err != nil {
		return fmt.Errorf("error getting resumes for session %v: %w", msg.ID, err)
	}

	results := &SessionResults{SessionID: msg.ID, Results: []ResumeResult{}}
	job := jobText(msg)

	for _, resume := range resumes {
		fileBytes, err := retry(ctx, 3, func() ([]byte, error) {
			return wc.Files.Download(ctx, resume.ObjectKey)
		})
		if err != nil {
			logger.Warn("download failed", slog.String("object_key", resume.ObjectKey), slog.Any("error", err))
			aggregateResult(results, resume, analysis.Report{}, fmt.Sprintf("file download error: %v", err))
			continue
		}

		resumeText, err := document.ExtractByMIME(resume.Mime, fileBytes)
		if err != nil {
			logger.Warn("text extraction failed", slog.String("object_key", resume.ObjectKey), slog.Any("error", err))
			aggregateResult(results, resume, analysis.Report{}, fmt.Sprintf("text extraction error: %v", err))
			continue
		}

		report := wc.Analyzer.Analyze(ctx, resumeText, job, opts)
		aggregateResult(results, resume, report, "")
	}
	logger.Info("session analyzed", slog.Int("resumes", len(resumes)))

	resultsJSON, err := json.Marshal(results.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal analyses results: %w", err)
	}
	_, err = retry(ctx, 3, func() (any, error) {
		return nil, wc.DB.CreateOrUpdateAnalysesResults(ctx, database.CreateOrUpdateAnalysesResultsParams{
			Results:   resultsJSON,
			SessionID: results.SessionID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save analyses results after retries: %w", err)
	}
	return nil
}

// setStatus records the session status and announces it. Failures are logged only.
func (wc *WorkerConfig) setStatus(ctx context.Context, id uuid.UUID, status, message string) {
	err := wc.DB.UpdateSessionStatus(ctx, database.UpdateSessionStatusParams{Status: status, ID: id})
	if err != nil {
		wc.Logger.Error("failed to update session status", slog.String("session_id", id.String()), slog.String("status", status), slog.Any("error", err))
	}
	err = wc.Updates.Publish(SessionUpdate{
		SessionID: id,
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	})
	if err != nil {
		wc.Logger.Error("failed to publish update", slog.String("session_id", id.String()), slog.Any("error", err))
	}
}

// handleMessage runs one queued session through processing. It returns an error only for
// messages that cannot be decoded.
func (wc *WorkerConfig) handleMessage(ctx context.Context, body []byte) error {
	var msg SessionMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("invalid session message: %w", err)
	}
	if msg.ID == uuid.Nil {
		return fmt.Errorf("invalid session message: missing id")
	}

	wc.setStatus(ctx, msg.ID, StatusProcessing, "analysis started")

	if err := wc.processSession(ctx, msg); err != nil {
		wc.Logger.Error("session analysis failed", slog.String("session_id", msg.ID.String()), slog.Any("error", err))
		// the session may have been cancelled with ctx; record the outcome regardless
		wc.setStatus(context.WithoutCancel(ctx), msg.ID, StatusFailed, "analysis failed")
		return nil
	}

	wc.setStatus(ctx, msg.ID, StatusCompleted, "analysis completed")
	return nil
}

func (wc *WorkerConfig) consume(ctx context.Context, id int) error {
	logger := wc.Logger.With(slog.Int("worker", id))

	conn, err := amqp.Dial(wc.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		sessionUpdatesExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(
		sessionsQueue,
		true,  // durable (survives broker restarts)
		false, // auto-delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := ch.Consume(
		sessionsQueue,
		fmt.Sprintf("cvmatch-%d", id),
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq messages: %w", err)
	}

	logger.Info("worker started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopping")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("worker %d: delivery channel closed", id)
			}
			if err := wc.handleMessage(ctx, msg.Body); err != nil {
				logger.Warn("dropping message", slog.Any("error", err))
				_ = msg.Nack(false, false)
				continue
			}
			if err := msg.Ack(false); err != nil {
				logger.Error("failed to ack message", slog.Any("error", err))
			}
		}
	}
}

// StartConsumerWorkerPool runs numWorkers consumers until ctx ends or one of them fails.
func (wc *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := range numWorkers {
		g.Go(func() error {
			return wc.consume(ctx, i+1)
		})
	}
	return g.Wait()
}
