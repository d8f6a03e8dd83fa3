package service

import (
	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
)

// catalog lists operations in display order
var catalog = []types.Operation{
	{
		ID:          types.OperationQNA,
		Name:        "Medical Q&A",
		Description: "Ask medical questions and get AI-powered answers instantly.",
		Flow:        types.FlowQNA,
		Path:        "/v1/qna",
	},
	{
		ID:          types.OperationReport,
		Name:        "Report Analyzer",
		Description: "Upload your medical report and get AI analysis.",
		Flow:        types.FlowReport,
		Path:        "/v1/reports",
		Attachments: true,
	},
	{
		ID:          types.OperationHospital,
		Name:        "Hospital Finder",
		Description: "Find specialized hospitals based on your medical needs and location.",
		Flow:        types.FlowHospital,
		Path:        "/v1/hospitals",
	},
	{
		ID:          types.OperationPrescription,
		Name:        "Medicine Explainer",
		Description: "Upload your prescription and get detailed medicine explanations.",
		Flow:        types.FlowPrescription,
		Path:        "/v1/prescriptions",
		Attachments: true,
	},
	{
		ID:          types.OperationBill,
		Name:        "Bill Auditor",
		Description: "Upload your medical bill and get cost analysis.",
		Flow:        types.FlowBill,
		Path:        "/v1/bills",
		Attachments: true,
	},
}

// Operations returns all operations in display order
func Operations() []types.Operation {
	out := make([]types.Operation, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup retrieves an operation by ID
func Lookup(id string) (types.Operation, bool) {
	for _, op := range catalog {
		if op.ID == id {
			return op, true
		}
	}
	return types.Operation{}, false
}
