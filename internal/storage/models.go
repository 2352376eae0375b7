package storage

import "time"

// DigestRun records one digest run. Article contents are never stored.
type DigestRun struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RunID        string    `gorm:"uniqueIndex;not null" json:"run_id"`
	StartedAt    time.Time `gorm:"index" json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	TickersCount int       `json:"tickers_count"`
	ArticleCount int       `json:"article_count"`
	CountsJSON   string    `gorm:"type:text" json:"counts_json"` // ticker -> selected article count
	Delivered    bool      `json:"delivered"`
	Error        string    `json:"error"`
}
