package db

import (
	"fmt"

	"jobboard/internal/job"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&job.PostingRow{}); err != nil {
		return err
	}

	stmts := []string{
		// company name search is a case-insensitive substring match
		`create index if not exists idx_job_postings_company_lower on job_postings (lower(company_name));`,
		`create index if not exists idx_job_postings_order on job_postings (created_at, id);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
