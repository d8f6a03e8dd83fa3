package types

// QuestionRequest is the body of a question-answering call
type QuestionRequest struct {
	Question string `json:"question" form:"question" binding:"required"`
}

// AnalysisRequest is the text part of a report, prescription or bill call.
// Message may be empty when files are attached.
type AnalysisRequest struct {
	Message string `json:"message" form:"message"`
}

// HospitalRequest is the body of a hospital search
type HospitalRequest struct {
	Query    string `json:"query" form:"query" binding:"required"`
	Location string `json:"location" form:"location"`
}

// ResultResponse wraps a result for the HTTP API
type ResultResponse struct {
	*InvocationResult
	HTML      string `json:"html,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
