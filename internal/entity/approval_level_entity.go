package entity

import (
	"time"

	"github.com/google/uuid"
)

type ApprovalLevel struct {
	Id            uuid.UUID
	LevelName     string
	RoleId        uuid.UUID
	RoleName      string
	ApprovalOrder int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
