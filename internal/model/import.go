package model

import "time"

// ImportReport summarizes one completed import run.
type ImportReport struct {
	RunID        string        `json:"runId"`
	Filename     string        `json:"filename"`
	ObjectNumber string        `json:"objectNumber"`
	ObjectID     int64         `json:"objectId"`
	Products     int           `json:"products"`
	Parts        int           `json:"parts"`
	Duration     time.Duration `json:"duration"`
}

// ImportLog is one persisted import run record.
type ImportLog struct {
	ID           int64      `json:"id"`
	RunID        string     `json:"runId"`
	Filename     string     `json:"filename"`
	FileSize     int64      `json:"fileSize"`
	ObjectNumber string     `json:"objectNumber"`
	Status       string     `json:"status"` // processing/completed/failed
	ErrorMessage string     `json:"errorMessage,omitempty"`
	Products     int        `json:"products"`
	Parts        int        `json:"parts"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}
