package mapper

import (
	"time"

	"impes-be/internal/entity"
	"impes-be/internal/model"
)

type DirectoryMapper struct{}

func NewDirectoryMapper() *DirectoryMapper {
	return &DirectoryMapper{}
}

func (m *DirectoryMapper) RoleToEntity(r *model.Role) *entity.Role {
	if r == nil {
		return nil
	}
	return &entity.Role{Id: r.Id, Name: r.Name}
}

func (m *DirectoryMapper) RoleToModel(r *entity.Role) *model.Role {
	return &model.Role{Id: r.Id, Name: r.Name}
}

func (m *DirectoryMapper) UserToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:        u.Id,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		RoleId:    u.RoleId,
	}
}

func (m *DirectoryMapper) UserToModel(u *entity.User) *model.User {
	return &model.User{
		Id:        u.Id,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		RoleId:    u.RoleId,
	}
}

func (m *DirectoryMapper) AssignmentToEntity(a *model.ProjectContractorAssignment) *entity.ProjectAssignment {
	if a == nil {
		return nil
	}
	return &entity.ProjectAssignment{
		Id:           a.Id,
		ProjectId:    a.ProjectId,
		ContractorId: a.ContractorId,
		Voided:       a.Voided,
		CreatedAt:    a.CreatedAt,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
