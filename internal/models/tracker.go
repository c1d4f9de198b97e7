package models

// Entity represents a tracked profile. It is owned exclusively by one user.
// Deleting an entity deletes its entries.
type Entity struct {
	ID     string
	UserID string
	Name   string
	Age    int

	// Optional descriptive fields.
	Nationality     string
	Ethnicity       string
	HairColor       string
	LocationCity    string
	LocationCountry string

	// Rating is between 0 and 10.
	Rating float64

	// IsActive is a soft deactivation flag. Inactive entities still count toward stats.
	IsActive bool

	CreatedAt int64
	UpdatedAt int64
}

// Entry represents one logged encounter against an Entity.
type Entry struct {
	ID       string
	EntityID string

	// Date is a calendar date in YYYY-MM-DD form.
	Date string

	// AmountSpent is a non-negative currency amount.
	AmountSpent float64

	// DurationMinutes must be positive when the entry is created.
	DurationMinutes int

	// UnitsCount is a non-negative count.
	UnitsCount int

	CreatedAt int64
	UpdatedAt int64
}

// UserTotals is the raw aggregate over all of a user's entities and entries.
// Stores may compute it in SQL; the result must equal summing the rows.
type UserTotals struct {
	TotalSpent    float64
	TotalUnits    int
	TotalMinutes  int
	TotalEntities int
	AverageRating float64
}
