package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RubachokBoss/hostel-report-service/internal/models"
	"github.com/RubachokBoss/hostel-report-service/internal/service"
	"github.com/RubachokBoss/hostel-report-service/internal/service/document"
	"github.com/RubachokBoss/hostel-report-service/internal/service/verification"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type fakeReportService struct {
	err         error
	lastStudent *models.StudentReportRequest
	lastFees    *models.FeesReportRequest
	lastAll     *models.AllStudentsReportRequest
}

func (s *fakeReportService) StudentReport(ctx context.Context, req *models.StudentReportRequest) (*models.Document, error) {
	s.lastStudent = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Document{FileName: "Student-Report-Asha-Verma-20250314.pdf", Content: []byte("%PDF-student")}, nil
}

func (s *fakeReportService) AllStudentsReport(ctx context.Context, req *models.AllStudentsReportRequest) (*models.Document, error) {
	s.lastAll = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Document{FileName: "All-Students-Report-20250314.pdf", Content: []byte("%PDF-all")}, nil
}

func (s *fakeReportService) FeesReport(ctx context.Context, req *models.FeesReportRequest) (*models.Document, error) {
	s.lastFees = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Document{FileName: "Fees-Report-20250314.pdf", Content: []byte("%PDF-fees")}, nil
}

type failingEncoder struct{}

func (failingEncoder) WriteFile(content, path string) error {
	return errors.New("encoder offline")
}

func newRouter(reports service.ReportService, receipts service.ReceiptService, static http.Handler) chi.Router {
	h := NewHandler(reports, receipts, static, Options{
		ServiceName: "Navadaya Girls Hostel Management System",
		Version:     "2.1.0",
		MaxBodySize: 1 << 10,
		Clock:       func() time.Time { return fixedNow },
	}, zerolog.Nop())

	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func newReceiptService(t *testing.T, qr verification.QREncoder) service.ReceiptService {
	t.Helper()
	composer := document.NewPDFComposer(document.PDFOptions{Clock: func() time.Time { return fixedNow }})
	stamper := verification.NewStamper(verification.Config{
		CodeSalt:     "NAVADAYA",
		ChecksumSalt: "NAVADAYA_SECURITY_2025",
		HostTag:      "navadaya.hostel",
	})
	return service.NewReceiptService(composer, stamper, qr, nil, service.RenderConfig{
		Institution:    "Girls Hostel Management System",
		ReceiptTitle:   "Navadaya Girls Hostel Management System",
		CurrencySymbol: "Rs. ",
		TempDir:        t.TempDir(),
		Clock:          func() time.Time { return fixedNow },
	}, zerolog.Nop())
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	router := newRouter(&fakeReportService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected healthy, got %s", resp.Status)
	}
	if resp.Timestamp != "2025-03-14T09:30:00Z" {
		t.Errorf("unexpected timestamp %s", resp.Timestamp)
	}
	if resp.Service != "Navadaya Girls Hostel Management System" || resp.Version != "2.1.0" {
		t.Errorf("unexpected service info %+v", resp)
	}
}

func TestGenerateStudentReport_ReturnsPDFAttachment(t *testing.T) {
	reports := &fakeReportService{}
	router := newRouter(reports, nil, nil)

	rec := post(router, "/api/generate-student-report",
		`{"student":{"firstName":"Asha","lastName":"Verma","year":2},"fees":[],"room":{}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	want := `attachment; filename="Student-Report-Asha-Verma-20250314.pdf"`
	if cd := rec.Header().Get("Content-Disposition"); cd != want {
		t.Errorf("expected %q, got %q", want, cd)
	}
	if cl := rec.Header().Get("Content-Length"); cl != fmt.Sprint(len("%PDF-student")) {
		t.Errorf("unexpected content length %q", cl)
	}
	if rec.Body.String() != "%PDF-student" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}

	if reports.lastStudent == nil {
		t.Fatal("expected request to reach service")
	}
	if got := reports.lastStudent.Student.Year.String(); got != "2" {
		t.Errorf("expected numeric year to decode leniently, got %q", got)
	}
}

func TestGenerateReports_EmptyBodyIsEmptyObject(t *testing.T) {
	reports := &fakeReportService{}
	router := newRouter(reports, nil, nil)

	for _, path := range []string{
		"/api/generate-student-report",
		"/api/generate-all-students-report",
		"/api/generate-fees-report",
	} {
		rec := post(router, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, rec.Code)
		}
	}

	if reports.lastAll == nil || len(reports.lastAll.StudentsData) != 0 {
		t.Errorf("expected empty all-students request, got %+v", reports.lastAll)
	}
	if reports.lastFees == nil || len(reports.lastFees.Fees) != 0 {
		t.Errorf("expected empty fees request, got %+v", reports.lastFees)
	}
}

func TestGenerateFeesReport_MalformedJSON(t *testing.T) {
	reports := &fakeReportService{}
	router := newRouter(reports, nil, nil)

	rec := post(router, "/api/generate-fees-report", `{"students": [`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); !strings.HasPrefix(msg, service.ErrInvalidPayload.Error()) {
		t.Errorf("unexpected error message %q", msg)
	}
	if reports.lastFees != nil {
		t.Error("service must not be called for malformed payload")
	}
}

func TestGenerateFeesReport_BodyTooLarge(t *testing.T) {
	router := newRouter(&fakeReportService{}, nil, nil)

	body := `{"students":[],"filters":{"year":"` + strings.Repeat("9", 2<<10) + `"}}`
	rec := post(router, "/api/generate-fees-report", body)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

func TestGenerateAllStudentsReport_ServiceError(t *testing.T) {
	reports := &fakeReportService{err: fmt.Errorf("%w: font missing", service.ErrComposeFailed)}
	router := newRouter(reports, nil, nil)

	rec := post(router, "/api/generate-all-students-report", `{"studentsData":[]}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error, got %q", ct)
	}
	if msg := decodeError(t, rec); msg != "failed to compose document: font missing" {
		t.Errorf("unexpected error message %q", msg)
	}
}

func TestGenerateFeeReceipt_QRFailureStillReturnsPDF(t *testing.T) {
	router := newRouter(&fakeReportService{}, newReceiptService(t, failingEncoder{}), nil)

	rec := post(router, "/api/generate-fee-receipt", `{
		"student": {"firstName": "Asha", "lastName": "Verma", "rollNumber": "NGH-042"},
		"fee": {"id": "fee-0001-abcd1234", "feeType": "monthly_rent", "amount": 1000, "status": "paid"}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("expected PDF bytes")
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(service.QRUnavailableNotice)) {
		t.Error("expected QR notice in PDF")
	}
	if got := rec.Header().Get(headerReceiptNumber); got != "RCP-ABCD1234" {
		t.Errorf("unexpected receipt number header %q", got)
	}
	if got := rec.Header().Get(headerVerificationCode); got == "" {
		t.Error("expected verification code header")
	}
	want := `attachment; filename="Fee-Receipt-Asha-Verma-RCP-ABCD1234.pdf"`
	if cd := rec.Header().Get("Content-Disposition"); cd != want {
		t.Errorf("expected %q, got %q", want, cd)
	}
}

func TestStaticRoutes(t *testing.T) {
	static := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.js" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("static:" + r.URL.Path))
	})
	router := newRouter(&fakeReportService{}, nil, static)

	cases := map[string]int{
		"/":           http.StatusOK,
		"/app.js":     http.StatusOK,
		"/missing.js": http.StatusNotFound,
	}
	for path, status := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != status {
			t.Errorf("%s: expected status %d, got %d", path, status, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if strings.HasPrefix(rec.Body.String(), "static:") {
		t.Error("health route must take priority over static files")
	}
}
