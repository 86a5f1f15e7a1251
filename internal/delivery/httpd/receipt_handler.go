package httpd

import (
	"net/http"

	"github.com/RubachokBoss/hostel-report-service/internal/models"
)

const (
	headerReceiptNumber    = "X-Receipt-Number"
	headerVerificationCode = "X-Verification-Code"
)

func (h *Handler) GenerateFeeReceipt(w http.ResponseWriter, r *http.Request) {
	var req models.FeeReceiptRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		h.handleServiceError(w, r, "fee_receipt", err)
		return
	}

	receipt, err := h.receiptService.FeeReceipt(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, "fee_receipt", err)
		return
	}

	w.Header().Set(headerReceiptNumber, receipt.ReceiptNumber)
	w.Header().Set(headerVerificationCode, receipt.VerificationCode)
	writePDF(w, &receipt.Document)
}
