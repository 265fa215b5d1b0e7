package usage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/top-users/pkg/models/store"
	"github.com/de-tools/top-users/pkg/store/duckdb"
)

// Store archives per-month usage totals in DuckDB. Add replaces a month
// atomically; readers serve the web API.
type Store interface {
	Add(ctx context.Context, month string, entries []store.MonthlyUsage) error
	ListMonths(ctx context.Context) ([]string, error)
	GetMonth(ctx context.Context, month string) ([]store.MonthlyUsage, error)
	GetTotals(ctx context.Context) ([]store.MonthlyUsage, error)
}

type usageStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &usageStore{db: db}, nil
}

func (u *usageStore) Add(ctx context.Context, month string, entries []store.MonthlyUsage) error {
	tx := duckdb.GetTransaction(ctx)
	ownTx := tx == nil
	if ownTx {
		var err error
		tx, err = u.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()
	}

	// Re-running a month replaces its rows so the archive stays idempotent.
	if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_usage WHERE month = ?`, month); err != nil {
		return fmt.Errorf("clear month %s: %w", month, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO monthly_usage (month, identity, seconds, collected_at)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, entry := range entries {
		collectedAt := entry.CollectedAt
		if collectedAt.IsZero() {
			collectedAt = now
		}
		if _, err := stmt.ExecContext(ctx, month, entry.Identity, entry.Seconds, collectedAt); err != nil {
			return fmt.Errorf("insert usage for %s: %w", entry.Identity, err)
		}
	}

	if ownTx {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit month %s: %w", month, err)
		}
	}
	return nil
}

func (u *usageStore) ListMonths(ctx context.Context) ([]string, error) {
	rows, err := u.db.QueryContext(ctx, `SELECT DISTINCT month FROM monthly_usage ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var month string
		if err := rows.Scan(&month); err != nil {
			return nil, err
		}
		months = append(months, month)
	}
	return months, rows.Err()
}

func (u *usageStore) GetMonth(ctx context.Context, month string) ([]store.MonthlyUsage, error) {
	rows, err := u.db.QueryContext(ctx, `
		SELECT month, identity, seconds, collected_at
		FROM monthly_usage
		WHERE month = ?
		ORDER BY seconds DESC, identity
	`, month)
	if err != nil {
		return nil, fmt.Errorf("query month %s: %w", month, err)
	}
	defer rows.Close()
	return scanUsageRows(rows)
}

func (u *usageStore) GetTotals(ctx context.Context) ([]store.MonthlyUsage, error) {
	rows, err := u.db.QueryContext(ctx, `
		SELECT '' AS month, identity, CAST(SUM(seconds) AS BIGINT) AS seconds, MAX(collected_at) AS collected_at
		FROM monthly_usage
		GROUP BY identity
		ORDER BY seconds DESC, identity
	`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()
	return scanUsageRows(rows)
}

func scanUsageRows(rows *sql.Rows) ([]store.MonthlyUsage, error) {
	records := make([]store.MonthlyUsage, 0)
	for rows.Next() {
		var rec store.MonthlyUsage
		if err := rows.Scan(&rec.Month, &rec.Identity, &rec.Seconds, &rec.CollectedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
