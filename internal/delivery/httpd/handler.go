package httpd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/RubachokBoss/hostel-report-service/internal/middleware"
	"github.com/RubachokBoss/hostel-report-service/internal/models"
	"github.com/RubachokBoss/hostel-report-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Options struct {
	ServiceName string
	Version     string
	MaxBodySize int64
	Clock       func() time.Time
}

type Handler struct {
	reportService  service.ReportService
	receiptService service.ReceiptService
	static         http.Handler
	opts           Options
	logger         zerolog.Logger
}

func NewHandler(
	reportService service.ReportService,
	receiptService service.ReceiptService,
	static http.Handler,
	opts Options,
	logger zerolog.Logger,
) *Handler {
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = 16 << 20
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Handler{
		reportService:  reportService,
		receiptService: receiptService,
		static:         static,
		opts:           opts,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api", func(api chi.Router) {
		api.Post("/generate-student-report", h.GenerateStudentReport)
		api.Post("/generate-all-students-report", h.GenerateAllStudentsReport)
		api.Post("/generate-fees-report", h.GenerateFeesReport)
		api.Post("/generate-fee-receipt", h.GenerateFeeReceipt)
	})

	// статика обслуживается с корня, маршруты выше имеют приоритет
	if h.static != nil {
		router.Get("/", h.static.ServeHTTP)
		router.Get("/*", h.static.ServeHTTP)
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: h.opts.Clock().UTC().Format(time.RFC3339),
		Service:   h.opts.ServiceName,
		Version:   h.opts.Version,
	})
}

// decodeBody читает JSON с ограничением размера; пустое тело равносильно {}
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", service.ErrInvalidPayload, err)
	}
	return nil
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := middleware.LoggerFromContext(r.Context(), h.logger)

	event := log.Error()
	if errors.Is(err, service.ErrInvalidPayload) {
		event = log.Warn()
	}
	event.Err(err).Str("operation", op).Msg("Request failed")

	writeError(w, http.StatusInternalServerError, err.Error())
}

func writePDF(w http.ResponseWriter, doc *models.Document) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Content)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
