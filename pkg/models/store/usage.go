package store

import "time"

// MonthlyUsage is one archived row of the monthly_usage table.
type MonthlyUsage struct {
	Month       string
	Identity    string
	Seconds     int64
	CollectedAt time.Time
}
