package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// multipartSlack covers the form fields and part headers around the files
const multipartSlack = 1 << 20

// readAnalysis extracts the message and attachments from a JSON or
// multipart analysis request
func (h *Handlers) readAnalysis(c *gin.Context) (string, []types.Attachment, error) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		var req types.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", nil, errors.New("invalid request body")
		}
		return req.Message, nil, nil
	}

	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+multipartSlack)
	}
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, fmt.Errorf("upload exceeds %d bytes", h.maxUpload)
		}
		return "", nil, fmt.Errorf("invalid multipart body: %w", err)
	}

	var message string
	if values := form.Value["message"]; len(values) > 0 {
		message = values[0]
	}

	headers := form.File["files"]
	attachments := make([]types.Attachment, 0, len(headers))
	for _, fh := range headers {
		a, err := readAttachment(fh)
		if err != nil {
			return "", nil, err
		}
		attachments = append(attachments, a)
	}

	return message, attachments, nil
}

// readAttachment loads one uploaded file, sniffing its type when the client
// did not declare one
func readAttachment(fh *multipart.FileHeader) (types.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return types.Attachment{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return types.Attachment{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	return types.Attachment{
		Name:     fh.Filename,
		MIMEType: contentType(fh.Header.Get("Content-Type"), data),
		Data:     data,
	}, nil
}

// contentType keeps a declared type and sniffs a missing one
func contentType(declared string, data []byte) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	return mimetype.Detect(data).String()
}
