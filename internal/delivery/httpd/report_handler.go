package httpd

import (
	"net/http"

	"github.com/RubachokBoss/hostel-report-service/internal/middleware"
	"github.com/RubachokBoss/hostel-report-service/internal/models"
)

func (h *Handler) GenerateStudentReport(w http.ResponseWriter, r *http.Request) {
	var req models.StudentReportRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		h.handleServiceError(w, r, "student_report", err)
		return
	}

	doc, err := h.reportService.StudentReport(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, "student_report", err)
		return
	}

	writePDF(w, doc)
}

func (h *Handler) GenerateAllStudentsReport(w http.ResponseWriter, r *http.Request) {
	var req models.AllStudentsReportRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		h.handleServiceError(w, r, "all_students_report", err)
		return
	}

	doc, err := h.reportService.AllStudentsReport(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, "all_students_report", err)
		return
	}

	writePDF(w, doc)
}

func (h *Handler) GenerateFeesReport(w http.ResponseWriter, r *http.Request) {
	var req models.FeesReportRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		h.handleServiceError(w, r, "fees_report", err)
		return
	}

	doc, err := h.reportService.FeesReport(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, "fees_report", err)
		return
	}

	reqLog := middleware.LoggerFromContext(r.Context(), h.logger)
	reqLog.Debug().
		Int("students", len(req.Students)).
		Int("fees", len(req.Fees)).
		Str("file", doc.FileName).
		Msg("Fees report generated")

	writePDF(w, doc)
}
