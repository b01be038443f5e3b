package employee

import "context"

// EmployeeRepository - interface for the employees table
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
}
