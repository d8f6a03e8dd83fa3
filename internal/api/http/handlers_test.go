package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/GriffinCanCode/CareFlow/internal/api/middleware"
	"github.com/GriffinCanCode/CareFlow/internal/flows/fallback"
	"github.com/GriffinCanCode/CareFlow/internal/service"
	"github.com/GriffinCanCode/CareFlow/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invocation struct {
	flow        string
	input       string
	attachments []types.Attachment
}

type fakeInvoker struct {
	mu      sync.Mutex
	calls   []invocation
	message string
	fail    bool
}

func (f *fakeInvoker) Invoke(ctx context.Context, endpointKey, inputText string, attachments ...types.Attachment) *types.InvocationResult {
	f.mu.Lock()
	f.calls = append(f.calls, invocation{flow: endpointKey, input: inputText, attachments: attachments})
	f.mu.Unlock()

	if f.fail {
		return &types.InvocationResult{
			Success:  false,
			Message:  fallback.Render(endpointKey, inputText, true),
			Error:    "API call failed: connection refused",
			Endpoint: endpointKey,
			Attempts: 2,
		}
	}
	return &types.InvocationResult{Success: true, Message: f.message, Endpoint: endpointKey, Attempts: 1, StatusCode: 200}
}

func (f *fakeInvoker) last(t *testing.T) invocation {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

type fakeEndpoints []types.EndpointConfig

func (f fakeEndpoints) Endpoints() []types.EndpointConfig { return f }

func setupRouter(inv *fakeInvoker, maxUpload int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())

	endpoints := fakeEndpoints{
		{Key: types.FlowQNA, URL: "https://flows.example/qna", DisplayName: "QNA Agent"},
		{Key: types.FlowBill, URL: "https://flows.example/bill", DisplayName: "Bill Analyzer"},
	}
	h := NewHandlers(service.NewAssistant(inv, nil), endpoints, nil, nil, maxUpload)

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.POST("/v1/qna", h.AskQuestion)
	router.POST("/v1/hospitals", h.FindHospitals)
	router.POST("/v1/reports", h.Analyze(types.OperationReport))
	router.POST("/v1/bills", h.Analyze(types.OperationBill))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRoot(t *testing.T) {
	router := setupRouter(&fakeInvoker{}, 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeResult(t, w)
	assert.Equal(t, "online", body["status"])
	assert.Len(t, body["operations"], 5)
}

func TestHealth(t *testing.T) {
	router := setupRouter(&fakeInvoker{}, 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"qna_agent"`)
	assert.Contains(t, w.Body.String(), `"display_name":"Bill Analyzer"`)
	assert.NotContains(t, w.Body.String(), "flows.example", "flow URLs are not exposed")
}

func TestAskQuestion(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fail       bool
		wantStatus int
		wantError  string
	}{
		{name: "success", body: `{"question":"What is diabetes?"}`, wantStatus: http.StatusOK},
		{name: "flow failure is still 200", body: `{"question":"What is diabetes?"}`, fail: true, wantStatus: http.StatusOK},
		{name: "missing question", body: `{}`, wantStatus: http.StatusBadRequest, wantError: "Invalid request body"},
		{name: "blank question", body: `{"question":"   "}`, wantStatus: http.StatusBadRequest, wantError: "question is required"},
		{name: "malformed JSON", body: `{"question":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &fakeInvoker{message: "Diabetes is...", fail: tt.fail}
			router := setupRouter(inv, 0)

			w := postJSON(router, "/v1/qna", tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			body := decodeResult(t, w)
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, body["error"], tt.wantError)
				assert.Empty(t, inv.calls)
				return
			}

			assert.Equal(t, types.FlowQNA, inv.last(t).flow)
			assert.Equal(t, "What is diabetes?", inv.last(t).input)
			assert.Equal(t, !tt.fail, body["success"])
			assert.NotEmpty(t, body["message"])
			assert.NotEmpty(t, body["request_id"])
			if tt.fail {
				assert.Contains(t, body["message"], fallback.Banner)
				assert.Contains(t, body["error"], "API call failed")
			}
		})
	}
}

func TestFindHospitals(t *testing.T) {
	inv := &fakeInvoker{message: "City General"}
	router := setupRouter(inv, 0)

	w := postJSON(router, "/v1/hospitals", `{"query":"cardiology","location":"Pune"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.FlowHospital, inv.last(t).flow)
	assert.Equal(t, "cardiology in Pune", inv.last(t).input)

	w = postJSON(router, "/v1/hospitals", `{"query":"cardiology"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cardiology", inv.last(t).input)

	w = postJSON(router, "/v1/hospitals", `{"location":"Pune"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeJSON(t *testing.T) {
	inv := &fakeInvoker{message: "bill ok"}
	router := setupRouter(inv, 0)

	w := postJSON(router, "/v1/bills", `{"message":"Is this bill fair?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.FlowBill, inv.last(t).flow)
	assert.Equal(t, "Is this bill fair?", inv.last(t).input)
	assert.Empty(t, inv.last(t).attachments)

	w = postJSON(router, "/v1/bills", `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "text-only analysis needs a message")
}

type formFile struct {
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, message string, files ...formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if message != "" {
		require.NoError(t, w.WriteField("message", message))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAnalyzeMultipart(t *testing.T) {
	inv := &fakeInvoker{message: "report ok"}
	router := setupRouter(inv, 1<<20)

	body, contentType := multipartBody(t, "Analyze my report",
		formFile{name: "scan.png", contentType: "image/png", data: []byte("not really a png")},
		formFile{name: "labs.pdf", contentType: "application/octet-stream", data: []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n")},
		formFile{name: "notes.txt", data: []byte("plain notes")},
	)
	req := httptest.NewRequest(http.MethodPost, "/v1/reports", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	call := inv.last(t)
	assert.Equal(t, types.FlowReport, call.flow)
	assert.Equal(t, "Analyze my report", call.input)

	require.Len(t, call.attachments, 3)
	assert.Equal(t, "scan.png", call.attachments[0].Name)
	assert.Equal(t, "image/png", call.attachments[0].MIMEType, "declared type is kept")
	assert.Equal(t, "labs.pdf", call.attachments[1].Name)
	assert.Equal(t, types.DefaultMIMEType, call.attachments[1].MIMEType, "declared generic type is kept")
	assert.Equal(t, "notes.txt", call.attachments[2].Name)
	assert.True(t, strings.HasPrefix(call.attachments[2].MIMEType, "text/plain"), call.attachments[2].MIMEType)
	assert.Equal(t, []byte("plain notes"), call.attachments[2].Data)
}

func TestAnalyzeMultipartFilesWithoutMessage(t *testing.T) {
	inv := &fakeInvoker{message: "ok"}
	router := setupRouter(inv, 1<<20)

	body, contentType := multipartBody(t, "", formFile{name: "bill.pdf", contentType: "application/pdf", data: []byte("%PDF")})
	req := httptest.NewRequest(http.MethodPost, "/v1/bills", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "", inv.last(t).input)
	assert.Len(t, inv.last(t).attachments, 1)
}

func TestAnalyzeMultipartTooLarge(t *testing.T) {
	inv := &fakeInvoker{}
	router := setupRouter(inv, 16)

	big := bytes.Repeat([]byte("x"), 2<<20)
	body, contentType := multipartBody(t, "big", formFile{name: "big.bin", data: big})
	req := httptest.NewRequest(http.MethodPost, "/v1/reports", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, inv.calls)
}

func TestRespondHTML(t *testing.T) {
	inv := &fakeInvoker{message: "**Diabetes** is a condition.<script>alert(1)</script>"}
	router := setupRouter(inv, 0)

	w := postJSON(router, "/v1/qna?format=html", `{"question":"What is diabetes?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeResult(t, w)
	html, ok := body["html"].(string)
	require.True(t, ok)
	assert.Contains(t, html, "<strong>Diabetes</strong>")
	assert.NotContains(t, html, "<script")

	w = postJSON(router, "/v1/qna", `{"question":"What is diabetes?"}`)
	assert.NotContains(t, decodeResult(t, w), "html")
}

func TestContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	assert.Equal(t, "image/jpeg", contentType("image/jpeg", png))
	assert.Equal(t, "image/png", contentType("", png))
	assert.Equal(t, "image/png", contentType("  ", png))
	assert.Equal(t, types.DefaultMIMEType, contentType(types.DefaultMIMEType, png))
}
