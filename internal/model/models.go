package model

// All lists every table the payment workflow owns or reads, in dependency
// order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&ProjectContractorAssignment{},
		&ApprovalLevel{},
		&PaymentStatus{},
		&PaymentRequest{},
		&PaymentRequestMilestone{},
		&PaymentRequestDocument{},
		&PaymentRequestInspectionMember{},
		&PaymentRequestItemApproval{},
		&PaymentApprovalHistory{},
		&PaymentDetails{},
	}
}
