package types

// Flow keys for the configured remote flows
const (
	FlowQNA          = "qna_agent"
	FlowReport       = "report_analyzer"
	FlowPrescription = "prescription_analyzer"
	FlowBill         = "bill_analyzer"
	FlowHospital     = "hospital_finder"
)

// DefaultMIMEType is sent for attachments that do not declare a type
const DefaultMIMEType = "application/octet-stream"

// FlowKeys returns every known flow key
func FlowKeys() []string {
	return []string{FlowQNA, FlowReport, FlowPrescription, FlowBill, FlowHospital}
}

// EndpointConfig describes one named remote flow
type EndpointConfig struct {
	Key         string `json:"key" yaml:"key" toml:"key"`
	URL         string `json:"url" yaml:"url" toml:"url"`
	DisplayName string `json:"display_name" yaml:"display_name" toml:"display_name"`
}

// Attachment is a file forwarded to a flow
type Attachment struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// ContentType returns the declared MIME type or the generic binary type
func (a Attachment) ContentType() string {
	if a.MIMEType == "" {
		return DefaultMIMEType
	}
	return a.MIMEType
}

// Size returns the attachment payload size in bytes
func (a Attachment) Size() int {
	return len(a.Data)
}

// InvocationRequest is built once per call and discarded afterwards
type InvocationRequest struct {
	EndpointKey string
	InputText   string
	Attachments []Attachment
	SessionID   string
}

// HasAttachments reports whether the request must be sent as multipart
func (r *InvocationRequest) HasAttachments() bool {
	return len(r.Attachments) > 0
}

// InvocationResult is the outcome of a flow call.
// Message is always renderable, even when Success is false.
type InvocationResult struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Raw        interface{} `json:"raw,omitempty"`
	Error      string      `json:"error,omitempty"`
	Endpoint   string      `json:"endpoint"`
	SessionID  string      `json:"session_id,omitempty"`
	Attempts   int         `json:"attempts"`
	StatusCode int         `json:"status_code,omitempty"`
}
