// Package workflow compiles the approval level and payment status registries
// into an explicit transition table keyed by (current level, action).
package workflow

import (
	"fmt"
	"sort"
	"strings"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"

	"github.com/google/uuid"
)

type Action string

const (
	ActionApprove  Action = "Approve"
	ActionReject   Action = "Reject"
	ActionReturn   Action = "Returned for Correction"
	ActionResubmit Action = "Resubmit"
)

var actionOrder = []Action{ActionApprove, ActionReject, ActionReturn, ActionResubmit}

// ParseAction accepts the canonical names plus a few lowercase aliases used
// by older clients.
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "approved":
		return ActionApprove, true
	case "reject", "rejected":
		return ActionReject, true
	case "returned for correction", "return", "return for correction":
		return ActionReturn, true
	case "resubmit", "resubmitted":
		return ActionResubmit, true
	}
	return "", false
}

const (
	IssueNoLevels        = "NO_LEVELS"
	IssueDuplicateOrder  = "DUPLICATE_ORDER"
	IssueMissingStatus   = "MISSING_STATUS"
	IssueDuplicateStatus = "DUPLICATE_STATUS"
	IssueUnboundStatus   = "UNBOUND_STATUS"
)

type Issue struct {
	Code    string     `json:"code"`
	Message string     `json:"message"`
	LevelId *uuid.UUID `json:"levelId,omitempty"`
}

// Transition is one row of the table. NextStatusId is nil when the registry
// has no status for the target; NextStatusName then holds the expected name.
type Transition struct {
	FromLevelId    uuid.UUID  `json:"fromLevelId"`
	Action         Action     `json:"action"`
	NextStatusId   *uuid.UUID `json:"nextStatusId"`
	NextStatusName string     `json:"nextStatusName"`
	NextLevelId    *uuid.UUID `json:"nextLevelId"`
}

type transitionKey struct {
	level  uuid.UUID
	action Action
}

type Table struct {
	levels      []*entity.ApprovalLevel
	levelIndex  map[uuid.UUID]int
	statuses    map[uuid.UUID]*entity.PaymentStatus
	singletons  map[entity.StatusCode]*entity.PaymentStatus
	reviews     map[uuid.UUID]*entity.PaymentStatus
	transitions map[transitionKey]Transition
	issues      []Issue
}

func ReviewStatusName(levelName string) string {
	return fmt.Sprintf("Awaiting %s Review", levelName)
}

var conventionalNames = map[string]entity.StatusCode{
	"submitted":               entity.StatusCodeSubmitted,
	"approved for payment":    entity.StatusCodeApprovedForPayment,
	"rejected":                entity.StatusCodeRejected,
	"returned for correction": entity.StatusCodeReturnedForCorrection,
	"paid":                    entity.StatusCodePaid,
}

var singletonNames = map[entity.StatusCode]string{
	entity.StatusCodeSubmitted:             "Submitted",
	entity.StatusCodeApprovedForPayment:    "Approved for Payment",
	entity.StatusCodeRejected:              "Rejected",
	entity.StatusCodeReturnedForCorrection: "Returned for Correction",
	entity.StatusCodePaid:                  "Paid",
}

// Compile never fails; everything it cannot bind is reported as an Issue and
// surfaces as a ConfigurationError only when that transition is used.
func Compile(levels []*entity.ApprovalLevel, statuses []*entity.PaymentStatus) (*Table, []Issue) {
	t := &Table{
		levels:      make([]*entity.ApprovalLevel, 0, len(levels)),
		levelIndex:  make(map[uuid.UUID]int, len(levels)),
		statuses:    make(map[uuid.UUID]*entity.PaymentStatus, len(statuses)),
		singletons:  make(map[entity.StatusCode]*entity.PaymentStatus),
		reviews:     make(map[uuid.UUID]*entity.PaymentStatus),
		transitions: make(map[transitionKey]Transition),
	}

	t.levels = append(t.levels, levels...)
	sort.SliceStable(t.levels, func(i, j int) bool {
		return t.levels[i].ApprovalOrder < t.levels[j].ApprovalOrder
	})
	for i, l := range t.levels {
		t.levelIndex[l.Id] = i
		if i > 0 && t.levels[i-1].ApprovalOrder == l.ApprovalOrder {
			t.issue(IssueDuplicateOrder, &l.Id, "levels %q and %q share approval order %d",
				t.levels[i-1].LevelName, l.LevelName, l.ApprovalOrder)
		}
	}
	if len(t.levels) == 0 {
		t.issue(IssueNoLevels, nil, "no approval levels are configured")
	}

	sorted := append([]*entity.PaymentStatus(nil), statuses...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StatusName < sorted[j].StatusName })
	for _, s := range sorted {
		t.statuses[s.Id] = s
		t.bind(s)
	}

	for i, l := range t.levels {
		if t.entryStatus(i) == nil {
			t.issue(IssueMissingStatus, &l.Id, "no status %q for level %q", t.entryName(i), l.LevelName)
		}
	}
	for _, code := range []entity.StatusCode{
		entity.StatusCodeApprovedForPayment,
		entity.StatusCodeRejected,
		entity.StatusCodeReturnedForCorrection,
		entity.StatusCodePaid,
	} {
		if t.singletons[code] == nil {
			t.issue(IssueMissingStatus, nil, "no status %q (%s) is configured", singletonNames[code], code)
		}
	}

	for i := range t.levels {
		t.compileLevel(i)
	}

	return t, t.issues
}

func (t *Table) issue(code string, levelId *uuid.UUID, format string, args ...interface{}) {
	var id *uuid.UUID
	if levelId != nil {
		v := *levelId
		id = &v
	}
	t.issues = append(t.issues, Issue{Code: code, Message: fmt.Sprintf(format, args...), LevelId: id})
}

func (t *Table) levelByReviewName(name string) *entity.ApprovalLevel {
	for _, l := range t.levels {
		if strings.EqualFold(ReviewStatusName(l.LevelName), strings.TrimSpace(name)) {
			return l
		}
	}
	return nil
}

func (t *Table) bind(s *entity.PaymentStatus) {
	code := s.Code
	levelId := s.ApprovalLevelId

	if code == entity.StatusCodeNone {
		if c, ok := conventionalNames[strings.ToLower(strings.TrimSpace(s.StatusName))]; ok {
			code = c
		} else if l := t.levelByReviewName(s.StatusName); l != nil {
			code = entity.StatusCodeAwaitingReview
			levelId = &l.Id
		} else {
			return
		}
	}

	if code == entity.StatusCodeAwaitingReview {
		if levelId == nil {
			if l := t.levelByReviewName(s.StatusName); l != nil {
				levelId = &l.Id
			}
		}
		if levelId == nil {
			t.issue(IssueUnboundStatus, nil, "review status %q is not bound to an approval level", s.StatusName)
			return
		}
		if _, ok := t.levelIndex[*levelId]; !ok {
			t.issue(IssueUnboundStatus, levelId, "review status %q points at an unknown approval level", s.StatusName)
			return
		}
		if prev := t.reviews[*levelId]; prev != nil {
			t.issue(IssueDuplicateStatus, levelId, "statuses %q and %q both review the same level", prev.StatusName, s.StatusName)
			return
		}
		t.reviews[*levelId] = s
		return
	}

	if prev := t.singletons[code]; prev != nil {
		t.issue(IssueDuplicateStatus, nil, "statuses %q and %q both carry code %s", prev.StatusName, s.StatusName, code)
		return
	}
	t.singletons[code] = s
}

// entryStatus is the status a request holds while waiting at level i.
func (t *Table) entryStatus(i int) *entity.PaymentStatus {
	if i == 0 {
		return t.singletons[entity.StatusCodeSubmitted]
	}
	return t.reviews[t.levels[i].Id]
}

func (t *Table) entryName(i int) string {
	if i == 0 {
		return singletonNames[entity.StatusCodeSubmitted]
	}
	return ReviewStatusName(t.levels[i].LevelName)
}

func (t *Table) compileLevel(i int) {
	current := t.levels[i]
	currentId := current.Id

	add := func(action Action, status *entity.PaymentStatus, expected string, nextLevel *uuid.UUID) {
		tr := Transition{
			FromLevelId:    currentId,
			Action:         action,
			NextStatusName: expected,
			NextLevelId:    nextLevel,
		}
		if status != nil {
			id := status.Id
			tr.NextStatusId = &id
			tr.NextStatusName = status.StatusName
		}
		t.transitions[transitionKey{level: currentId, action: action}] = tr
	}

	if i+1 < len(t.levels) {
		next := t.levels[i+1].Id
		add(ActionApprove, t.entryStatus(i+1), t.entryName(i+1), &next)
	} else {
		add(ActionApprove, t.singletons[entity.StatusCodeApprovedForPayment],
			singletonNames[entity.StatusCodeApprovedForPayment], nil)
	}
	add(ActionReject, t.singletons[entity.StatusCodeRejected], singletonNames[entity.StatusCodeRejected], nil)
	add(ActionReturn, t.singletons[entity.StatusCodeReturnedForCorrection],
		singletonNames[entity.StatusCodeReturnedForCorrection], &currentId)
	add(ActionResubmit, t.entryStatus(i), t.entryName(i), &currentId)
}

// Initial returns the status and level a new request starts in.
func (t *Table) Initial() (uuid.UUID, uuid.UUID, error) {
	if len(t.levels) == 0 {
		return uuid.Nil, uuid.Nil, apperr.Configuration("no approval levels are configured")
	}
	s := t.entryStatus(0)
	if s == nil {
		return uuid.Nil, uuid.Nil, apperr.Configuration("status %q is not configured", t.entryName(0))
	}
	return s.Id, t.levels[0].Id, nil
}

// Next resolves the transition for a request currently in (statusId, levelId).
func (t *Table) Next(statusId uuid.UUID, levelId *uuid.UUID, action Action) (Transition, error) {
	if levelId == nil {
		return Transition{}, apperr.InvalidTransition("request is not awaiting approval")
	}
	if action == ActionResubmit && !t.Is(statusId, entity.StatusCodeReturnedForCorrection) {
		return Transition{}, apperr.InvalidTransition("only requests returned for correction can be resubmitted")
	}
	if action != ActionResubmit && t.Is(statusId, entity.StatusCodeReturnedForCorrection) {
		return Transition{}, apperr.InvalidTransition("request is awaiting resubmission")
	}
	if _, ok := t.levelIndex[*levelId]; !ok {
		return Transition{}, apperr.Configuration("approval level %s is no longer configured", *levelId)
	}

	tr, ok := t.transitions[transitionKey{level: *levelId, action: action}]
	if !ok {
		return Transition{}, apperr.InvalidTransition("unsupported action %q", action)
	}
	if tr.NextStatusId == nil {
		return Transition{}, apperr.Configuration("status %q is not configured", tr.NextStatusName)
	}
	return tr, nil
}

// StatusFor returns the status bound to a chain-wide code such as PAID.
func (t *Table) StatusFor(code entity.StatusCode) (*entity.PaymentStatus, error) {
	s := t.singletons[code]
	if s == nil {
		name := singletonNames[code]
		if name == "" {
			name = string(code)
		}
		return nil, apperr.Configuration("status %q is not configured", name)
	}
	return s, nil
}

func (t *Table) Is(statusId uuid.UUID, code entity.StatusCode) bool {
	s := t.singletons[code]
	return s != nil && s.Id == statusId
}

func (t *Table) Status(id uuid.UUID) (*entity.PaymentStatus, bool) {
	s, ok := t.statuses[id]
	return s, ok
}

func (t *Table) StatusName(id uuid.UUID) string {
	if s, ok := t.statuses[id]; ok {
		return s.StatusName
	}
	return ""
}

func (t *Table) Level(id uuid.UUID) (*entity.ApprovalLevel, bool) {
	i, ok := t.levelIndex[id]
	if !ok {
		return nil, false
	}
	return t.levels[i], true
}

func (t *Table) Levels() []*entity.ApprovalLevel {
	return append([]*entity.ApprovalLevel(nil), t.levels...)
}

func (t *Table) Issues() []Issue {
	return append([]Issue(nil), t.issues...)
}

// Transitions lists every row in level order, then action order.
func (t *Table) Transitions() []Transition {
	out := make([]Transition, 0, len(t.transitions))
	for _, l := range t.levels {
		for _, a := range actionOrder {
			if tr, ok := t.transitions[transitionKey{level: l.Id, action: a}]; ok {
				out = append(out, tr)
			}
		}
	}
	return out
}
