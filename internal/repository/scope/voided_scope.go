package scope

import "gorm.io/gorm"

// ExcludeVoided is applied by every payment request read.
func ExcludeVoided(db *gorm.DB) *gorm.DB {
	return db.Where("voided = ?", false)
}
