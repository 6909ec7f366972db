package db

import (
	"strings"

	"gorm.io/gorm"
)

// ForUpdateClause returns the row-lock suffix for raw SELECT statements.
// SQLite has no row locks; its single-writer model serializes writers anyway.
func ForUpdateClause(db *gorm.DB) string {
	if strings.EqualFold(db.Dialector.Name(), "sqlite") {
		return ""
	}
	return " FOR UPDATE"
}
