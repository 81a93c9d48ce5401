package dto

import "impes-be/pkg/workflow"

// WorkflowResponse is the compiled transition table as served to
// administrators, including everything that failed to bind.
type WorkflowResponse struct {
	Healthy     bool                    `json:"healthy"`
	Levels      []ApprovalLevelResponse `json:"levels"`
	Transitions []workflow.Transition   `json:"transitions"`
	Issues      []workflow.Issue        `json:"issues"`
}
