package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role, User and ProjectAssignment are maintained by other modules; the
// payment workflow reads them for joins and access checks.
type Role struct {
	Id   uuid.UUID
	Name string
}

type User struct {
	Id        uuid.UUID
	Username  string
	FirstName string
	LastName  string
	Email     string
	RoleId    uuid.UUID
}

func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

type ProjectAssignment struct {
	Id           uuid.UUID
	ProjectId    uuid.UUID
	ContractorId uuid.UUID
	Voided       bool
	CreatedAt    time.Time
}
