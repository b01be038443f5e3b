package employee

import "time"

// Employee is the directory collaborator surface. Profile editing and
// the wider directory live outside this service; the engine only needs
// identity and display data.
type Employee struct {
	ID        string
	FullName  string
	Email     string
	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
