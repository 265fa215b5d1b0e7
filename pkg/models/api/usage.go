package api

type UsageEntry struct {
	Identity string `json:"identity"`
	Seconds  int64  `json:"seconds"`
}

type MonthUsage struct {
	Month   string       `json:"month"`
	Entries []UsageEntry `json:"entries"`
}

type MonthList struct {
	Months []string `json:"months"`
}
