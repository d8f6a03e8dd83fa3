package service

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/logging"
	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
	"go.uber.org/zap"
)

// Invoker calls a named flow. The flow gateway satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, endpointKey, inputText string, attachments ...types.Attachment) *types.InvocationResult
}

// Assistant exposes the inbound operations
type Assistant struct {
	invoker Invoker
	logger  *logging.Logger
}

// NewAssistant creates an assistant backed by invoker
func NewAssistant(invoker Invoker, logger *logging.Logger) *Assistant {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assistant{
		invoker: invoker,
		logger:  logger.Named("assistant"),
	}
}

// AskQuestion answers a medical question. Text only.
func (a *Assistant) AskQuestion(ctx context.Context, question string) *types.InvocationResult {
	return a.call(ctx, types.OperationQNA, types.FlowQNA, question)
}

// AnalyzeReport analyzes a medical report
func (a *Assistant) AnalyzeReport(ctx context.Context, message string, attachments ...types.Attachment) *types.InvocationResult {
	return a.call(ctx, types.OperationReport, types.FlowReport, message, attachments...)
}

// ExplainPrescription explains the medicines in a prescription
func (a *Assistant) ExplainPrescription(ctx context.Context, message string, attachments ...types.Attachment) *types.InvocationResult {
	return a.call(ctx, types.OperationPrescription, types.FlowPrescription, message, attachments...)
}

// AnalyzeBill audits a medical bill
func (a *Assistant) AnalyzeBill(ctx context.Context, message string, attachments ...types.Attachment) *types.InvocationResult {
	return a.call(ctx, types.OperationBill, types.FlowBill, message, attachments...)
}

// FindHospitals searches for hospitals. Text only.
func (a *Assistant) FindHospitals(ctx context.Context, query, location string) *types.InvocationResult {
	return a.call(ctx, types.OperationHospital, types.FlowHospital, HospitalQuery(query, location))
}

// Analyze runs one of the file-accepting operations by ID
func (a *Assistant) Analyze(ctx context.Context, operationID, message string, attachments ...types.Attachment) (*types.InvocationResult, error) {
	op, ok := Lookup(operationID)
	if !ok || !op.Attachments {
		return nil, fmt.Errorf("operation %q does not accept attachments", operationID)
	}
	return a.call(ctx, op.ID, op.Flow, message, attachments...), nil
}

// HospitalQuery qualifies query with location when one is given
func HospitalQuery(query, location string) string {
	if location == "" {
		return query
	}
	return fmt.Sprintf("%s in %s", query, location)
}

func (a *Assistant) call(ctx context.Context, operation, flow, input string, attachments ...types.Attachment) *types.InvocationResult {
	a.logger.Debug("Running operation",
		zap.String("operation", operation),
		zap.String("flow", flow),
		zap.Int("attachments", len(attachments)),
	)
	return a.invoker.Invoke(ctx, flow, input, attachments...)
}
