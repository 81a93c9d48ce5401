package main

import (
	"os"

	"impes-be/internal/config"
	"impes-be/internal/model"
	"impes-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.PoolConfig{
		MaxIdleConns: 1,
		MaxOpenConns: 2,
	}, cfg.Database.Verbose)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting GORM migration...")

	color.Yellow("Step 1: Extensions")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		color.Red("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	models := model.All()
	color.Yellow("Step 2: AutoMigrate for %d tables", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	color.Yellow("Step 3: Constraints and views")
	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW payment_request_overview AS
		 SELECT pr.id, pr.project_id, pr.contractor_id, pr.amount, pr.voided, pr.version,
		        ps.status_name, ps.code AS status_code, al.level_name AS current_level_name,
		        pr.created_at, pr.updated_at
		 FROM payment_requests pr
		 JOIN payment_statuses ps ON ps.id = pr.payment_status_id
		 LEFT JOIN approval_levels al ON al.id = pr.current_approval_level_id;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("Success: database migration completed.")
}
