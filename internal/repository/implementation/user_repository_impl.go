package implementation

import (
	"context"
	"errors"

	"impes-be/internal/entity"
	"impes-be/internal/mapper"
	"impes-be/internal/model"
	"impes-be/internal/repository/contract"
	"impes-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DirectoryMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewDirectoryMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.UserToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	user.Id = m.Id
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UserToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var models []*model.User
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(models))
	for _, m := range models {
		out = append(out, r.mapper.UserToEntity(m))
	}
	return out, nil
}

type RoleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DirectoryMapper
}

func NewRoleRepository(db *gorm.DB) contract.RoleRepository {
	return &RoleRepositoryImpl{
		db:     db,
		mapper: mapper.NewDirectoryMapper(),
	}
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *entity.Role) error {
	m := r.mapper.RoleToModel(role)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	role.Id = m.Id
	return nil
}

func (r *RoleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Role, error) {
	var m model.Role
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RoleToEntity(&m), nil
}

func (r *RoleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Role, error) {
	var models []*model.Role
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Role, 0, len(models))
	for _, m := range models {
		out = append(out, r.mapper.RoleToEntity(m))
	}
	return out, nil
}
