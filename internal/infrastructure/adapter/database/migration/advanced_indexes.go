package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type indexStatement struct {
	name string
	sql  string
}

// transactions are written roughly in occurred_at order, which suits BRIN
var advancedIndexes = []indexStatement{
	{
		name: "idx_transactions_occurred_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_occurred_at_brin
			ON transactions USING BRIN (occurred_at)
			WITH (pages_per_range = 32)`,
	},
	{
		name: "idx_transactions_main_expense",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_main_expense
			ON transactions (occurred_at DESC)
			WHERE account = 'Main' AND direction = 'expense'`,
	},
	{
		name: "idx_transactions_reference_present",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_reference_present
			ON transactions (reference_id, occurred_at DESC)
			WHERE reference_id IS NOT NULL`,
	},
}

// CreateAdvancedIndexes creates advanced PostgreSQL indexes for better performance
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	for _, idx := range advancedIndexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", map[string]any{
		"count": len(advancedIndexes),
	})
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL table settings. Failures are logged only.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// Rows are replaced in place on re-ingestion
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for transactions table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions ALTER COLUMN occurred_at SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for occurred_at", map[string]any{
			"error": err.Error(),
		})
	}
}
