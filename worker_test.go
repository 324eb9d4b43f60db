package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/database"
	"github.com/muhammadolammi/cvmatch/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	mu       sync.Mutex
	session  database.Session
	resumes  []database.Resume
	statuses []string
	saved    json.RawMessage
	saveErrs int
}

func (f *fakeDB) GetSession(_ context.Context, id uuid.UUID) (database.Session, error) {
	if id != f.session.ID {
		return database.Session{}, sql.ErrNoRows
	}
	return f.session, nil
}

func (f *fakeDB) GetResumesBySession(context.Context, uuid.UUID) ([]database.Resume, error) {
	return f.resumes, nil
}

func (f *fakeDB) UpdateSessionStatus(_ context.Context, arg database.UpdateSessionStatusParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, arg.Status)
	return nil
}

func (f *fakeDB) CreateOrUpdateAnalysesResults(_ context.Context, arg database.CreateOrUpdateAnalysesResultsParams) error {
	if f.saveErrs > 0 {
		f.saveErrs--
		return errors.New("connection reset")
	}
	f.saved = arg.Results
	return nil
}

type fakeFiles map[string][]byte

func (f fakeFiles) Download(_ context.Context, key string) ([]byte, error) {
	data, ok := f[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return data, nil
}

type fakePublisher struct {
	updates []SessionUpdate
}

func (p *fakePublisher) Publish(u SessionUpdate) error {
	p.updates = append(p.updates, u)
	return nil
}

func newTestWorker(t *testing.T, db *fakeDB, files fakeFiles) (*WorkerConfig, *fakePublisher) {
	t.Helper()
	retryBackoff = time.Millisecond

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	lex, err := analysis.NewLexicalStrategy(taxonomy.Default(), nil)
	require.NoError(t, err)
	pub := &fakePublisher{}
	return &WorkerConfig{
		DB:       db,
		Files:    files,
		Updates:  pub,
		Analyzer: analysis.New(lex, analysis.WithLogger(logger)),
		Logger:   logger,
	}, pub
}

func TestRetry(t *testing.T) {
	retryBackoff = time.Millisecond
	calls := 0
	got, err := retry(context.Background(), 3, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)

	calls = 0
	_, err = retry(context.Background(), 2, func() (string, error) {
		calls++
		return "", errors.New("permanent")
	})
	assert.EqualError(t, err, "after 2 attempts: permanent")
	assert.Equal(t, 2, calls)
}

func TestRetryStopsOnCancel(t *testing.T) {
	retryBackoff = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := retry(ctx, 5, func() (int, error) { return 0, errors.New("down") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessSession(t *testing.T) {
	sessionID := uuid.New()
	good := database.Resume{ID: uuid.New(), OriginalFilename: "ana.txt", Mime: "text/plain", ObjectKey: "k/ana"}
	missing := database.Resume{ID: uuid.New(), OriginalFilename: "bia.pdf", Mime: "application/pdf", ObjectKey: "k/bia"}
	odd := database.Resume{ID: uuid.New(), OriginalFilename: "caio.png", Mime: "image/png", ObjectKey: "k/caio"}

	db := &fakeDB{resumes: []database.Resume{good, missing, odd}, saveErrs: 1}
	files := fakeFiles{
		"k/ana":  []byte("Python, Docker e PostgreSQL"),
		"k/caio": {0x89, 'P', 'N', 'G'},
	}
	wc, _ := newTestWorker(t, db, files)

	err := wc.processSession(context.Background(), SessionMessage{
		ID:             sessionID,
		JobTitle:       "Backend",
		JobDescription: "Requisitos: Python, Kubernetes",
	})
	require.NoError(t, err)

	var results []ResumeResult
	require.NoError(t, json.Unmarshal(db.saved, &results))
	require.Len(t, results, 3)

	assert.Equal(t, good.ID, results[0].ResumeID)
	assert.False(t, results[0].IsErrorResult)
	assert.Greater(t, results[0].SimilarityScore, 0.0)
	assert.Contains(t, results[0].Feedback, "❌ Requisitos Faltantes: kubernetes")

	assert.True(t, results[1].IsErrorResult)
	assert.Contains(t, results[1].Error, "file download error")

	assert.True(t, results[2].IsErrorResult)
	assert.Contains(t, results[2].Error, "text extraction error")
}

func TestProcessSessionLoadsStoredJob(t *testing.T) {
	sessionID := uuid.New()
	db := &fakeDB{
		session: database.Session{
			ID:             sessionID,
			JobDescription: "Requisitos: Go",
			Strategy:       sql.NullString{String: "narrative", Valid: true},
		},
		resumes: []database.Resume{{ID: uuid.New(), Mime: "text/plain", ObjectKey: "cv"}},
	}
	wc, _ := newTestWorker(t, db, fakeFiles{"cv": []byte("Go e Docker")})

	require.NoError(t, wc.processSession(context.Background(), SessionMessage{ID: sessionID}))

	var results []ResumeResult
	require.NoError(t, json.Unmarshal(db.saved, &results))
	require.Len(t, results, 1)
	// narrative is not configured, so the lexical report is used
	assert.False(t, results[0].UsingAI)
	assert.Contains(t, results[0].Feedback, "✅ Requisitos Atendidos: go")
}

func TestHandleMessage(t *testing.T) {
	sessionID := uuid.New()
	db := &fakeDB{resumes: []database.Resume{}}
	wc, pub := newTestWorker(t, db, fakeFiles{})

	body, _ := json.Marshal(SessionMessage{ID: sessionID, JobDescription: "Requisitos: Go"})
	require.NoError(t, wc.handleMessage(context.Background(), body))

	assert.Equal(t, []string{StatusProcessing, StatusCompleted}, db.statuses)
	require.Len(t, pub.updates, 2)
	assert.Equal(t, sessionID, pub.updates[1].SessionID)
	assert.Equal(t, StatusCompleted, pub.updates[1].Status)
	assert.JSONEq(t, `[]`, string(db.saved))
}

func TestHandleMessageFailure(t *testing.T) {
	db := &fakeDB{saveErrs: 10}
	wc, pub := newTestWorker(t, db, fakeFiles{})

	body, _ := json.Marshal(SessionMessage{ID: uuid.New(), JobDescription: "Requisitos: Go"})
	require.NoError(t, wc.handleMessage(context.Background(), body))

	assert.Equal(t, []string{StatusProcessing, StatusFailed}, db.statuses)
	assert.Equal(t, StatusFailed, pub.updates[len(pub.updates)-1].Status)
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	wc, pub := newTestWorker(t, &fakeDB{}, fakeFiles{})

	assert.Error(t, wc.handleMessage(context.Background(), []byte("{not json")))
	assert.Error(t, wc.handleMessage(context.Background(), []byte(`{"job_description":"x"}`)))
	assert.Empty(t, pub.updates)
}

func TestPrintReport(t *testing.T) {
	report := analysis.Report{SimilarityScore: 71, Feedback: "📊 Análise do CV", UsingAI: false}

	var text bytes.Buffer
	require.NoError(t, printReport(&text, report, false))
	assert.Equal(t, "Score: 71 (lexical)\n\n📊 Análise do CV\n", text.String())

	var js bytes.Buffer
	require.NoError(t, printReport(&js, report, true))
	assert.JSONEq(t, `{"similarity_score":71,"feedback":"📊 Análise do CV","using_ai":false}`, js.String())
}
