package types

// Operation identifiers exposed to callers
const (
	OperationQNA          = "qna"
	OperationReport       = "report"
	OperationPrescription = "prescription"
	OperationBill         = "bill"
	OperationHospital     = "hospital"
)

// Operation describes one inbound assistant operation and the flow it uses
type Operation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Flow        string `json:"flow"`
	Path        string `json:"path"`
	Attachments bool   `json:"attachments"`
}
