package service

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RubachokBoss/hostel-report-service/internal/models"
	"github.com/RubachokBoss/hostel-report-service/internal/service/document"
	"github.com/RubachokBoss/hostel-report-service/internal/service/verification"
	"github.com/rs/zerolog"
)

type failingEncoder struct{}

func (failingEncoder) WriteFile(content, path string) error {
	return errors.New("encoder offline")
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.ReceiptIssuedEvent
}

func (p *recordingPublisher) PublishReceiptIssued(ctx context.Context, event *models.ReceiptIssuedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func testStamper() *verification.Stamper {
	return verification.NewStamper(verification.Config{
		CodeSalt:     "NAVADAYA",
		ChecksumSalt: "NAVADAYA_SECURITY_2025",
		HostTag:      "navadaya.hostel",
	})
}

func testReceiptRequest() *models.FeeReceiptRequest {
	st := testStudent()
	st.AssignedRoom = "r-7"

	return &models.FeeReceiptRequest{
		Student: st,
		Fee: models.Fee{
			ID:            "fee-0001-abcd1234",
			StudentID:     "s1",
			FeeType:       models.FeeTypeMonthlyRent,
			Amount:        models.NewAmount("1000"),
			Status:        models.FeeStatusPaid,
			PaymentDate:   "2025-03-05T10:00:00Z",
			PaymentMethod: "bank_transfer",
			Month:         "3",
			Year:          "2025",
		},
	}
}

func newTestReceiptService(composer document.Composer, qr verification.QREncoder, publisher ReceiptEventPublisher, tempDir string) ReceiptService {
	cfg := testRenderConfig()
	cfg.TempDir = tempDir
	return NewReceiptService(composer, testStamper(), qr, publisher, cfg, zerolog.Nop())
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected temp dir to be empty, found %d entries", len(entries))
	}
}

func TestReceiptService_FeeReceipt_Fields(t *testing.T) {
	composer := &recordingComposer{}
	publisher := &recordingPublisher{}
	dir := t.TempDir()
	svc := newTestReceiptService(composer, verification.PNGEncoder{Size: 128}, publisher, dir)

	receipt, err := svc.FeeReceipt(context.Background(), testReceiptRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.ReceiptNumber != "RCP-ABCD1234" {
		t.Errorf("unexpected receipt number %s", receipt.ReceiptNumber)
	}
	if receipt.FileName != "Fee-Receipt-Asha-Verma-RCP-ABCD1234.pdf" {
		t.Errorf("unexpected file name %s", receipt.FileName)
	}
	if !regexp.MustCompile(`^\d{6}-\d{3}$`).MatchString(receipt.VerificationCode) {
		t.Errorf("unexpected verification code %s", receipt.VerificationCode)
	}
	if !receipt.QRAvailable {
		t.Error("expected QR to be available")
	}
	if !composer.imagesPresent {
		t.Error("expected QR image to exist while composing")
	}

	for _, text := range []string{
		"Receipt No: RCP-ABCD1234",
		"Date: 14 March 2025",
		"Room r-7",
		"Monthly Rent",
		"3/2025",
		"Rs. 1,000.00",
		"2025-03-05",
		"Bank Transfer",
		"PAID",
		"20250314093000",
		"NAVADAYA-2025",
		"QR CODE VERIFICATION",
		receipt.Checksum,
	} {
		if !composer.contains(text) {
			t.Errorf("expected %q in receipt", text)
		}
	}
	if composer.contains(QRUnavailableNotice) {
		t.Error("unexpected QR notice")
	}

	assertDirEmpty(t, dir)

	if len(publisher.events) != 1 {
		t.Fatalf("expected one event, got %d", len(publisher.events))
	}
	if ev := publisher.events[0]; ev.ReceiptNumber != receipt.ReceiptNumber || ev.DocumentID != receipt.ID {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestReceiptService_FeeReceipt_QRFailureIsNotFatal(t *testing.T) {
	composer := &recordingComposer{}
	dir := t.TempDir()
	svc := newTestReceiptService(composer, failingEncoder{}, nil, dir)

	receipt, err := svc.FeeReceipt(context.Background(), testReceiptRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.QRAvailable {
		t.Error("expected QR to be unavailable")
	}
	if !composer.contains(QRUnavailableNotice) {
		t.Error("expected QR notice")
	}
	if composer.contains("QR CODE VERIFICATION") {
		t.Error("unexpected QR section")
	}
	assertDirEmpty(t, dir)
}

func TestReceiptService_FeeReceipt_ComposeFailureRemovesTempFile(t *testing.T) {
	composer := &recordingComposer{err: errors.New("layout failed")}
	dir := t.TempDir()
	svc := newTestReceiptService(composer, verification.PNGEncoder{Size: 128}, nil, dir)

	_, err := svc.FeeReceipt(context.Background(), testReceiptRequest())
	if !errors.Is(err, ErrComposeFailed) {
		t.Fatalf("expected ErrComposeFailed, got %v", err)
	}
	assertDirEmpty(t, dir)
}

func TestReceiptService_FeeReceipt_RoomFromRoomData(t *testing.T) {
	composer := &recordingComposer{}
	svc := newTestReceiptService(composer, failingEncoder{}, nil, t.TempDir())

	req := testReceiptRequest()
	req.Room = &models.Room{ID: "r-7", RoomNumber: "204"}
	req.Fee.Notes = "Paid in advance"
	req.Fee.PaymentMethod = ""

	if _, err := svc.FeeReceipt(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, text := range []string{"Room 204", "ADDITIONAL NOTES", "Paid in advance"} {
		if !composer.contains(text) {
			t.Errorf("expected %q in receipt", text)
		}
	}
	if composer.contains("Room r-7") {
		t.Error("expected room data to win over assigned room id")
	}
}

func TestReceiptService_FeeReceipt_ReproducibleForFixedClock(t *testing.T) {
	svc := newTestReceiptService(&recordingComposer{}, failingEncoder{}, nil, t.TempDir())

	first, err := svc.FeeReceipt(context.Background(), testReceiptRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.FeeReceipt(context.Background(), testReceiptRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.VerificationCode != second.VerificationCode || first.Checksum != second.Checksum {
		t.Errorf("expected identical codes, got %s/%s and %s/%s",
			first.VerificationCode, first.Checksum, second.VerificationCode, second.Checksum)
	}
}

func TestReceiptService_FeeReceipt_RealPDFWithQRNotice(t *testing.T) {
	composer := document.NewPDFComposer(document.PDFOptions{Compress: false, Clock: func() time.Time { return fixedNow }})
	svc := newTestReceiptService(composer, failingEncoder{}, nil, t.TempDir())

	receipt, err := svc.FeeReceipt(context.Background(), testReceiptRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(receipt.Content), QRUnavailableNotice) {
		t.Error("expected QR notice in PDF")
	}
}

func TestReceiptService_FeeReceipt_RealPDFWithQRImage(t *testing.T) {
	composer := document.NewPDFComposer(document.PDFOptions{Compress: false, Clock: func() time.Time { return fixedNow }})
	dir := t.TempDir()
	svc := newTestReceiptService(composer, verification.PNGEncoder{Size: 128}, nil, dir)

	receipt, err := svc.FeeReceipt(context.Background(), testReceiptRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(receipt.Content), "/Subtype /Image") {
		t.Error("expected embedded image in PDF")
	}
	assertDirEmpty(t, dir)
}
