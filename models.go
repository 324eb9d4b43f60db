package main

import (
	"time"

	"github.com/google/uuid"
)

// SessionMessage is the body of a message on the sessions queue.
type SessionMessage struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Name           string    `json:"name"`
	UserID         uuid.UUID `json:"user_id"`
	Status         string    `json:"status"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description"`
	Strategy       string    `json:"strategy,omitempty"`
}

// ResumeResult is one résumé's entry in a session's aggregated results.
type ResumeResult struct {
	ResumeID        uuid.UUID `json:"resume_id"`
	Filename        string    `json:"filename"`
	SimilarityScore float64   `json:"similarity_score"`
	Feedback        string    `json:"feedback"`
	UsingAI         bool      `json:"using_ai"`
	// Error result entry
	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

type SessionResults struct {
	SessionID uuid.UUID      `json:"session_id"`
	Results   []ResumeResult `json:"results"`
}

// SessionUpdate is published on the session_updates exchange.
type SessionUpdate struct {
	SessionID uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
