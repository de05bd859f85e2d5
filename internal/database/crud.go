package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateRun(ctx context.Context, db *gorm.DB, dataset string) (uuid.UUID, error) {
	run := PipelineRun{
		Id:        uuid.New(),
		Dataset:   dataset,
		Status:    RunRunning,
		StartTime: time.Now(),
	}
	if err := db.WithContext(ctx).Create(&run).Error; err != nil {
		return uuid.Nil, fmt.Errorf("error creating pipeline run: %w", err)
	}
	return run.Id, nil
}

func UpdateRunStatus(ctx context.Context, db *gorm.DB, runId uuid.UUID, status string, rows int) error {
	updates := map[string]interface{}{
		"status":          status,
		"completion_time": sql.NullTime{Time: time.Now(), Valid: true},
		"rows":            rows,
	}
	if err := db.WithContext(ctx).Model(&PipelineRun{}).Where("id = ?", runId).Updates(updates).Error; err != nil {
		return fmt.Errorf("error updating pipeline run %s: %w", runId, err)
	}
	return nil
}

func AddSplitReport(ctx context.Context, db *gorm.DB, report SplitReport) error {
	if err := db.WithContext(ctx).Create(&report).Error; err != nil {
		return fmt.Errorf("error creating split report for run %s: %w", report.RunId, err)
	}
	return nil
}

func GetRun(ctx context.Context, db *gorm.DB, runId uuid.UUID) (PipelineRun, error) {
	var run PipelineRun
	if err := db.WithContext(ctx).Preload("Splits").First(&run, "id = ?", runId).Error; err != nil {
		return PipelineRun{}, fmt.Errorf("error querying pipeline run %s: %w", runId, err)
	}
	return run, nil
}
