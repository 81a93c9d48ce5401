package scope

import "gorm.io/gorm"

func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func OrderByApprovalOrder(db *gorm.DB) *gorm.DB {
	return db.Order("approval_order ASC")
}

// OrderByActionDate breaks timestamp ties with the per-request sequence.
func OrderByActionDate(db *gorm.DB) *gorm.DB {
	return db.Order("h.action_date ASC").Order("h.sequence ASC")
}
