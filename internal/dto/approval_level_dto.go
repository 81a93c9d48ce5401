package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateApprovalLevelRequest struct {
	LevelName     string    `json:"levelName" validate:"required,max=150"`
	RoleId        uuid.UUID `json:"roleId" validate:"required"`
	ApprovalOrder int       `json:"approvalOrder" validate:"required,gt=0"`
}

type UpdateApprovalLevelRequest struct {
	LevelName     string    `json:"levelName" validate:"required,max=150"`
	RoleId        uuid.UUID `json:"roleId" validate:"required"`
	ApprovalOrder int       `json:"approvalOrder" validate:"required,gt=0"`
}

type ApprovalLevelResponse struct {
	LevelId       uuid.UUID  `json:"levelId"`
	LevelName     string     `json:"levelName"`
	RoleId        uuid.UUID  `json:"roleId"`
	RoleName      string     `json:"roleName"`
	ApprovalOrder int        `json:"approvalOrder"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}
