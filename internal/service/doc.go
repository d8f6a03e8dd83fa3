// Package service provides the assistant operations exposed to callers.
//
// Each operation forwards the caller's text, and optionally files, to one
// named flow through an Invoker and returns the invocation result untouched.
//
// Operations:
//   - qna: medical question answering (text only)
//   - report: medical report analysis
//   - prescription: prescription and medicine explanation
//   - bill: medical bill analysis
//   - hospital: hospital search with an optional location qualifier
//
// Example Usage:
//
//	assistant := service.NewAssistant(gw, logger)
//	result := assistant.AskQuestion(ctx, "What is diabetes?")
//	result = assistant.FindHospitals(ctx, "cardiology", "Pune")
package service
