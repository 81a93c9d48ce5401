package entity

import (
	"time"

	"github.com/google/uuid"
)

type Privilege string

const (
	PrivilegePaymentRequestCreate  Privilege = "payment_request.create"
	PrivilegePaymentRequestUpdate  Privilege = "payment_request.update"
	PrivilegePaymentRequestRead    Privilege = "payment_request.read"
	PrivilegePaymentRequestReadAll Privilege = "payment_request.read_all"
	PrivilegePaymentRequestDelete  Privilege = "payment_request.delete"

	PrivilegePaymentDetailsCreate Privilege = "payment_details.create"
	PrivilegePaymentDetailsUpdate Privilege = "payment_details.update"

	PrivilegeApprovalLevelCreate Privilege = "approval_level.create"
	PrivilegeApprovalLevelRead   Privilege = "approval_level.read"
	PrivilegeApprovalLevelUpdate Privilege = "approval_level.update"
	PrivilegeApprovalLevelDelete Privilege = "approval_level.delete"

	PrivilegePaymentStatusCreate Privilege = "payment_status.create"
	PrivilegePaymentStatusRead   Privilege = "payment_status.read"
	PrivilegePaymentStatusUpdate Privilege = "payment_status.update"
	PrivilegePaymentStatusDelete Privilege = "payment_status.delete"

	PrivilegeProjectAssignContractor Privilege = "project.assign_contractor"
)

type PrivilegeSet map[Privilege]struct{}

func NewPrivilegeSet(names ...string) PrivilegeSet {
	set := make(PrivilegeSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[Privilege(name)] = struct{}{}
	}
	return set
}

func (s PrivilegeSet) Has(p Privilege) bool {
	_, ok := s[p]
	return ok
}

// HasAll fails closed: a nil or empty set satisfies nothing but an empty
// requirement.
func (s PrivilegeSet) HasAll(required ...Privilege) bool {
	for _, p := range required {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

func (s PrivilegeSet) Names() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, string(p))
	}
	return out
}

// Principal is the authenticated caller as decoded from the bearer token.
type Principal struct {
	UserId       uuid.UUID
	Username     string
	RoleId       uuid.UUID
	RoleName     string
	Privileges   PrivilegeSet
	ContractorId *uuid.UUID
	// ExpiresAt is zero when the token carries no exp claim.
	ExpiresAt time.Time
}

func (p *Principal) IsContractor(contractorId uuid.UUID) bool {
	return p != nil && p.ContractorId != nil && *p.ContractorId == contractorId
}
