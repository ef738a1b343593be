package database

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type compositeIndex struct {
	table   string
	name    string
	columns []string
}

// compositeIndexes back the list queries; single-column indexes come from
// the model tags.
var compositeIndexes = []compositeIndex{
	{"activity_logs", "idx_activity_project_created", []string{"project_id", "created_at"}},
	{"activity_logs", "idx_activity_project_action", []string{"project_id", "action_type"}},
	{"notifications", "idx_notifications_user_read", []string{"user_id", "is_read"}},
	{"notifications", "idx_notifications_user_created", []string{"user_id", "created_at"}},
	{"page_sections", "idx_page_sections_page_order", []string{"page_id", "order_index"}},
	{"files", "idx_files_project_deleted", []string{"project_id", "is_deleted"}},
	{"launch_tasks", "idx_launch_tasks_project_status", []string{"project_id", "status"}},
}

// AddIndexes creates the composite indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.Strings("columns", idx.columns),
		)
	}

	return nil
}
