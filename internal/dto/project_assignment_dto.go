package dto

import (
	"time"

	"github.com/google/uuid"
)

type AssignContractorRequest struct {
	ContractorId uuid.UUID `json:"contractorId" validate:"required"`
}

type ProjectAssignmentResponse struct {
	Id           uuid.UUID `json:"id"`
	ProjectId    uuid.UUID `json:"projectId"`
	ContractorId uuid.UUID `json:"contractorId"`
	CreatedAt    time.Time `json:"createdAt"`
}
