package employee

import "context"

type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id string) error
}
