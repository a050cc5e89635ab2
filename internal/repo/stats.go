// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries over the
// idempotency ledger used by the health endpoint.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/stella-panel/internal/domain"
)

// LedgerStats returns aggregate metadata for the idempotency ledger: the
// number of records still live at now and the greatest CreatedAt among them.
//
// When no record is live, the returned count is 0 and newest is nil. A
// missing table is reported as an error, which makes this usable as a
// readiness check for the database.
func LedgerStats(ctx context.Context, db *gorm.DB, now time.Time) (live int64, newest *time.Time, err error) {
	liveRows := func() *gorm.DB {
		return db.WithContext(ctx).Model(&domain.Idempotency{}).Where("expires_at > ?", now)
	}

	if err = liveRows().Count(&live).Error; err != nil {
		return 0, nil, err
	}
	if live == 0 {
		return 0, nil, nil
	}

	// Latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = liveRows().Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return live, &row.CreatedAt, nil
}
