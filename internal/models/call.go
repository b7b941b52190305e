package models

import "time"

// Call statuses as stored in PostgreSQL.
const (
	CallStatusCompleted = "completed"
	CallStatusMissed    = "missed"
	CallStatusOngoing   = "ongoing"
)

// Call types as stored in PostgreSQL.
const (
	CallTypeSupport      = "support"
	CallTypeSales        = "sales"
	CallTypeConsultation = "consultation"
	CallTypeFollowUp     = "follow-up"
	CallTypeTechnical    = "technical"
)

// CallSummary is one row of the AI call activity log served to the dashboard.
type CallSummary struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"date"`
	DurationMinutes int       `json:"duration"`
	Caller          string    `json:"caller"`
	Status          string    `json:"status"`
	CallType        string    `json:"callType"`
	Cost            float64   `json:"cost"`
	Summary         string    `json:"summary"`
}

// CallStats aggregates the activity log for the dashboard header cards.
type CallStats struct {
	TotalCalls   int64   `json:"total_calls"`
	Completed    int64   `json:"completed"`
	Missed       int64   `json:"missed"`
	Ongoing      int64   `json:"ongoing"`
	TotalMinutes int64   `json:"total_minutes"`
	TotalCost    float64 `json:"total_cost"`
}
