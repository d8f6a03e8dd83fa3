// Package types provides shared data structures for the CareFlow backend.
//
// This package defines the types exchanged between the flow gateway, the
// assistant service and the HTTP API, so that every layer agrees on the
// shape of an invocation.
//
// Core Types:
//   - EndpointConfig: One named remote flow (key, URL, display name)
//   - Attachment: File forwarded to a flow alongside the input text
//   - InvocationRequest: Transient per-call request
//   - InvocationResult: Display-ready outcome of a call
//
// Request Types:
//   - QuestionRequest, AnalysisRequest, HospitalRequest: API payloads
//   - Operation: One inbound assistant operation and its flow
//
// Example Usage:
//
//	result := gw.Invoke(ctx, types.FlowQNA, "What is diabetes?")
//	fmt.Println(result.Message)
package types
