package models

import (
	"encoding/json"
	"time"
)

// Import batch status constants
const (
	ImportStatusPending    = "pending"
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)

// ImportBatch tracks one CSV upload batch through its lifecycle. Each file in
// the batch reconciles independently; per-file outcomes are kept as JSON so a
// partially failed batch still reports what did land.
type ImportBatch struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GUID       string    `gorm:"uniqueIndex;not null" json:"guid"`
	Status     string    `gorm:"default:pending;not null;index" json:"status"`
	FileCount  int       `gorm:"not null" json:"file_count"`
	Results    *string   `gorm:"type:text" json:"-"`
	Error      *string   `gorm:"type:text" json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// TableName specifies the table name for ImportBatch
func (ImportBatch) TableName() string {
	return "import_batches"
}

// FileResult is the per-file outcome of a batch.
type FileResult struct {
	Kind     string `json:"kind"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
	Warning  string `json:"warning,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SetResults serializes per-file outcomes onto the batch record.
func (b *ImportBatch) SetResults(results []FileResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	s := string(data)
	b.Results = &s
	return nil
}

// FileResults deserializes the stored per-file outcomes.
func (b *ImportBatch) FileResults() ([]FileResult, error) {
	if b.Results == nil {
		return nil, nil
	}
	var results []FileResult
	if err := json.Unmarshal([]byte(*b.Results), &results); err != nil {
		return nil, err
	}
	return results, nil
}
