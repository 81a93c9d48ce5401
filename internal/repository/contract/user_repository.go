package contract

import (
	"context"

	"impes-be/internal/entity"
	"impes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Role, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Role, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
}

type ProjectAssignmentRepository interface {
	Assign(ctx context.Context, projectId, contractorId uuid.UUID) (*entity.ProjectAssignment, error)
	Unassign(ctx context.Context, projectId, contractorId uuid.UUID) (bool, error)
	IsAssigned(ctx context.Context, projectId, contractorId uuid.UUID) (bool, error)
	FindByProject(ctx context.Context, projectId uuid.UUID) ([]*entity.ProjectAssignment, error)
}
