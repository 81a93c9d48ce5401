package implementation

import (
	"context"
	"time"

	"impes-be/internal/entity"
	"impes-be/internal/mapper"
	"impes-be/internal/model"
	"impes-be/internal/repository/contract"
	"impes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectAssignmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DirectoryMapper
}

func NewProjectAssignmentRepository(db *gorm.DB) contract.ProjectAssignmentRepository {
	return &ProjectAssignmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDirectoryMapper(),
	}
}

// Assign is an upsert: a previously voided membership is revived in place.
func (r *ProjectAssignmentRepositoryImpl) Assign(ctx context.Context, projectId, contractorId uuid.UUID) (*entity.ProjectAssignment, error) {
	m := &model.ProjectContractorAssignment{
		ProjectId:    projectId,
		ContractorId: contractorId,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}, {Name: "contractor_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"voided":     false,
			"updated_at": time.Now(),
		}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}

	var stored model.ProjectContractorAssignment
	query := specification.ProjectContractor{ProjectID: projectId, ContractorID: contractorId}.Apply(r.db.WithContext(ctx))
	if err := query.Take(&stored).Error; err != nil {
		return nil, err
	}
	return r.mapper.AssignmentToEntity(&stored), nil
}

func (r *ProjectAssignmentRepositoryImpl) Unassign(ctx context.Context, projectId, contractorId uuid.UUID) (bool, error) {
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ProjectContractorAssignment{}),
		specification.ProjectContractor{ProjectID: projectId, ContractorID: contractorId},
		specification.NotVoided{},
	)
	res := query.Updates(map[string]interface{}{"voided": true, "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ProjectAssignmentRepositoryImpl) IsAssigned(ctx context.Context, projectId, contractorId uuid.UUID) (bool, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ProjectContractorAssignment{}),
		specification.ProjectContractor{ProjectID: projectId, ContractorID: contractorId},
		specification.NotVoided{},
	)
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProjectAssignmentRepositoryImpl) FindByProject(ctx context.Context, projectId uuid.UUID) ([]*entity.ProjectAssignment, error) {
	var models []*model.ProjectContractorAssignment
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByProjectID{ProjectID: projectId},
		specification.NotVoided{},
	)
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.ProjectAssignment, 0, len(models))
	for _, m := range models {
		out = append(out, r.mapper.AssignmentToEntity(m))
	}
	return out, nil
}
