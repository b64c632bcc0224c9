package models

import "time"

// Complaint lifecycle statuses. ClosedAt must be set iff the status is terminal.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
)

// Complaint represents a row in the 'complaints' table. Most fields are
// optional at intake time and filled in later by downstream triage services.
type Complaint struct {
	ID                  int64      `db:"id" json:"id"`
	Applicant           string     `db:"applicant" json:"applicant"`
	ReceivedAt          *time.Time `db:"received_at" json:"received_at,omitempty"`
	Title               string     `db:"title" json:"title"`
	Body                string     `db:"body" json:"body"`
	AnsweredBy          *string    `db:"answered_by" json:"answered_by,omitempty"`
	Answer              *string    `db:"answer" json:"answer,omitempty"`
	AddressText         *string    `db:"address_text" json:"address_text,omitempty"`
	Lat                 *float64   `db:"lat" json:"lat,omitempty"`
	Lon                 *float64   `db:"lon" json:"lon,omitempty"`
	District            string     `db:"district" json:"district"`
	ComplaintStatus     string     `db:"complaint_status" json:"complaint_status"`
	UrgencyLevel        *string    `db:"urgency_level" json:"urgency_level,omitempty"`
	CurrentDepartmentID *int64     `db:"current_department_id" json:"current_department_id,omitempty"`
	IncidentID          *int64     `db:"incident_id" json:"incident_id,omitempty"`
	IncidentLinkedAt    *time.Time `db:"incident_linked_at" json:"incident_linked_at,omitempty"`
	IncidentLinkScore   *float64   `db:"incident_link_score" json:"incident_link_score,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
	ClosedAt            *time.Time `db:"closed_at" json:"closed_at,omitempty"`
}

// NormalizationResult holds what the AI service produced for one submission.
// It lives for a single request and is never persisted.
type NormalizationResult struct {
	NormalizedText string    `json:"normalized_text"`
	Embedding      []float64 `json:"embedding"`
}

// SimilarityCandidate is one ranked match returned by the similarity lookup.
// Order is whatever the upstream returns; no re-ranking happens here.
type SimilarityCandidate struct {
	ComplaintID int64   `json:"complaint_id"`
	SimScore    float64 `json:"sim_score"`
	Title       string  `json:"title"`
}
