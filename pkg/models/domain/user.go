package domain

// EnrichedUser is one identity's usage joined with directory details.
type EnrichedUser struct {
	Identity   string
	Measure    int64
	Email      string
	FirstName  string
	LastName   string
	Gender     string
	Status     string
	Project    string
	Initiative string
}
