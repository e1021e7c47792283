package domain

import "time"

// Department represents an organizational unit owning grievances.
type Department struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category is a sub-classification within a department. Its default
// urgency applies when a submission carries none.
type Category struct {
	ID             string
	DepartmentID   string
	Name           string
	DefaultUrgency Urgency
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
