package gateway

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// Channel selectors understood by the remote flows
const (
	outputType = "chat"
	inputType  = "chat"
)

// chatPayload is the JSON body of a text-only call
type chatPayload struct {
	OutputType string `json:"output_type"`
	InputType  string `json:"input_type"`
	InputValue string `json:"input_value"`
	SessionID  string `json:"session_id"`
}

// jsonBody encodes the text-only request body
func jsonBody(req *types.InvocationRequest) ([]byte, error) {
	return sonic.Marshal(chatPayload{
		OutputType: outputType,
		InputType:  inputType,
		InputValue: req.InputText,
		SessionID:  req.SessionID,
	})
}

// multipartFields lists the plain fields followed by one "files" part per
// attachment, in the order supplied
func multipartFields(req *types.InvocationRequest) []*resty.MultipartField {
	fields := []*resty.MultipartField{
		{Param: "input_value", Reader: strings.NewReader(req.InputText)},
		{Param: "output_type", Reader: strings.NewReader(outputType)},
		{Param: "input_type", Reader: strings.NewReader(inputType)},
		{Param: "session_id", Reader: strings.NewReader(req.SessionID)},
	}

	for i, a := range req.Attachments {
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("file%d", i+1)
		}
		fields = append(fields, &resty.MultipartField{
			Param:       "files",
			FileName:    name,
			ContentType: a.ContentType(),
			Reader:      bytes.NewReader(a.Data),
		})
	}

	return fields
}

// checkAttachments enforces the count and combined size limits
func (g *Gateway) checkAttachments(attachments []types.Attachment) error {
	if len(attachments) > g.cfg.MaxAttachments {
		return fmt.Errorf("%w: %d files (max %d)", ErrAttachmentLimit, len(attachments), g.cfg.MaxAttachments)
	}

	var total int64
	for _, a := range attachments {
		total += int64(a.Size())
	}
	if total > g.cfg.MaxAttachmentBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrAttachmentLimit, total, g.cfg.MaxAttachmentBytes)
	}
	return nil
}
