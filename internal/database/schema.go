package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	RunRunning   string = "RUNNING"
	RunCompleted string = "COMPLETED"
	RunFailed    string = "FAILED"
)

// PipelineRun records one execution of the data preparation pipeline.
type PipelineRun struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	Dataset string `gorm:"not null"`
	Status  string `gorm:"size:20;not null"`

	StartTime      time.Time
	CompletionTime sql.NullTime

	// Rows is the prepared dataset size before splitting.
	Rows int

	Splits []SplitReport `gorm:"foreignKey:RunId;constraint:OnDelete:CASCADE"`
}

// SplitReport records the shape and label balance of one written split.
type SplitReport struct {
	RunId uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"size:20;primaryKey"`

	Path string `gorm:"not null"`
	Rows int

	PositiveFrac float64
	NegativeFrac float64
}
