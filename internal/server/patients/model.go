package patients

import "time"

// Patient is a stored patient record. LoadedBy is the full name of the
// authenticated user who created the record.
type Patient struct {
	ID          string
	Name        string
	DateOfBirth time.Time
	Age         int
	LoadedBy    string
	CreatedAt   time.Time
}
