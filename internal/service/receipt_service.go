package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/RubachokBoss/hostel-report-service/internal/models"
	"github.com/RubachokBoss/hostel-report-service/internal/service/document"
	"github.com/RubachokBoss/hostel-report-service/internal/service/verification"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	QRUnavailableNotice = "QR Code generation temporarily unavailable"

	qrDescription = "Scan this QR code with any smartphone to verify this receipt's authenticity. " +
		"The QR code contains encrypted verification data including receipt number, security hash, and payment details."
	securityWarning = "SECURITY FEATURES: This receipt contains multiple security verification codes to prevent forgery " +
		"and unauthorized duplication. Any attempt to modify, copy, or duplicate this receipt is strictly prohibited " +
		"and may result in disciplinary action."
	verificationHint = "VERIFICATION: Use the verification code and security hash above to verify authenticity at the hostel office."
	receiptFooter    = "This is a computer-generated receipt with enhanced security features. Please keep this receipt for your records."

	qrImageSize = 28.2
)

type ReceiptService interface {
	FeeReceipt(ctx context.Context, req *models.FeeReceiptRequest) (*models.Receipt, error)
}

// ReceiptEventPublisher получает уведомление о каждой выданной квитанции
type ReceiptEventPublisher interface {
	PublishReceiptIssued(ctx context.Context, event *models.ReceiptIssuedEvent) error
}

type receiptService struct {
	renderer
	stamper   *verification.Stamper
	qr        verification.QREncoder
	publisher ReceiptEventPublisher
}

func NewReceiptService(
	composer document.Composer,
	stamper *verification.Stamper,
	qr verification.QREncoder,
	publisher ReceiptEventPublisher,
	cfg RenderConfig,
	logger zerolog.Logger,
) ReceiptService {
	if cfg.AuthCode == "" {
		cfg.AuthCode = "NAVADAYA-2025"
	}
	return &receiptService{
		renderer:  newRenderer(composer, cfg, logger),
		stamper:   stamper,
		qr:        qr,
		publisher: publisher,
	}
}

func (s *receiptService) FeeReceipt(ctx context.Context, req *models.FeeReceiptRequest) (*models.Receipt, error) {
	now := s.now()
	issued := now.Format(receiptDateLayout)
	st, fee := req.Student, req.Fee
	amount := fee.Amount.Decimal

	stamp := s.stamper.Stamp(verification.Input{
		FeeID:       fee.ID.String(),
		StudentName: st.FirstName.String() + st.LastName.String(),
		RollNumber:  st.RollNumber.String(),
		FeeType:     fee.FeeType.String(),
		Amount:      amount,
		IssuedAt:    now,
	})

	plain := document.TableStyle{
		BodyFill:    document.ColorWhite,
		Border:      document.ColorWhite,
		FontSize:    10,
		BoldColumn0: true,
	}

	blocks := []document.Block{
		titleBlock(s.cfg.ReceiptTitle),
		section("Fee Payment Receipt"),
		document.Spacer{Height: 4},
		document.Table{
			Widths: []float64{document.Inches(3), document.Inches(3)},
			Rows:   [][]string{{"Receipt No: " + stamp.ReceiptNumber, "Date: " + issued}},
			Style:  document.TableStyle{BodyFill: document.ColorWhite, Border: document.ColorWhite, FontSize: 11, BoldColumn0: true},
		},
	}
	blocks = append(blocks, divider(document.ColorGrey)...)

	blocks = append(blocks,
		section("STUDENT INFORMATION"),
		document.Table{
			Widths: []float64{document.Inches(1.5), document.Inches(4)},
			Rows: [][]string{
				{"Name:", st.FullName()},
				{"Roll Number:", st.RollNumber.Or(document.NotAvailable)},
				{"Room Number:", receiptRoomNumber(st, req.Room)},
				{"Contact:", st.Phone.Or(document.NotAvailable)},
			},
			Style: plain,
		},
		section("FEE DETAILS"),
		document.Table{
			Widths: []float64{document.Inches(1.5), document.Inches(4)},
			Rows: [][]string{
				{"Fee Type:", document.FeeTypeLabel(fee.FeeType.Or(document.NotAvailable))},
				{"Period:", fee.Month.Or(document.NotAvailable) + "/" + fee.Year.Or(document.NotAvailable)},
				{"Amount:", s.money(amount)},
				{"Payment Date:", document.DateOnly(fee.PaymentDate.String())},
				{"Payment Method:", paymentMethod(fee)},
				{"Status:", "PAID"},
			},
			Style: plain,
		},
		document.Table{
			Widths: []float64{document.Inches(4), document.Inches(2)},
			Rows:   [][]string{{"Total Amount Paid:", s.money(amount)}},
			Style: document.TableStyle{
				BodyFill:    document.ColorLightBlue,
				Border:      document.ColorDarkBlue,
				FontSize:    13,
				BoldColumn0: true,
			},
		},
	)

	if !fee.Notes.IsEmpty() {
		blocks = append(blocks,
			section("ADDITIONAL NOTES"),
			document.Paragraph{Content: fee.Notes.String(), Size: 11},
		)
	}

	blocks = append(blocks,
		section("SECURITY VERIFICATION"),
		document.Table{
			Widths: []float64{document.Inches(2), document.Inches(4)},
			Rows: [][]string{
				{"Verification Code:", stamp.VerificationCode},
				{"Security Hash:", stamp.Checksum},
				{"Digital Timestamp:", now.Format("20060102150405")},
				{"Hostel Auth Code:", s.cfg.AuthCode},
			},
			Style: document.TableStyle{
				BodyFill:    document.ColorLightYellow,
				Border:      document.ColorOrange,
				FontSize:    9,
				BoldColumn0: true,
			},
		},
	)

	qrPath, cleanup, qrErr := s.renderQR(stamp, st.RollNumber.String(), amount.String())
	defer cleanup()

	if qrErr != nil {
		s.logger.Warn().
			Err(qrErr).
			Str("receipt_number", stamp.ReceiptNumber).
			Msg("QR code skipped")
		blocks = append(blocks, document.Paragraph{
			Content: QRUnavailableNotice,
			Size:    9,
			Color:   document.ColorGrey,
			Align:   document.AlignCenter,
		})
	} else {
		blocks = append(blocks,
			section("QR CODE VERIFICATION"),
			document.Image{Path: qrPath, Width: qrImageSize, Height: qrImageSize, Caption: qrDescription},
		)
	}

	blocks = append(blocks, divider(document.ColorGrey)...)
	blocks = append(blocks,
		document.Paragraph{Content: securityWarning, Size: 9, Color: document.ColorRed, Align: document.AlignCenter},
		document.Paragraph{Content: verificationHint, Size: 9, Color: document.ColorRed, Align: document.AlignCenter},
		footer(receiptFooter, 9),
		footer(fmt.Sprintf("Generated automatically by %s on %s", s.cfg.ReceiptTitle, issued), 8),
	)

	fileName := fmt.Sprintf("Fee-Receipt-%s-%s-%s.pdf",
		document.FileNamePart(st.FirstName.String()),
		document.FileNamePart(st.LastName.String()),
		stamp.ReceiptNumber,
	)

	doc, err := s.compose(ctx, "Fee Receipt", fileName, blocks)
	if err != nil {
		return nil, err
	}

	receipt := &models.Receipt{
		Document:         *doc,
		ReceiptNumber:    stamp.ReceiptNumber,
		VerificationCode: stamp.VerificationCode,
		Checksum:         stamp.Checksum,
		QRAvailable:      qrErr == nil,
	}

	s.publishIssued(ctx, req, receipt, stamp)

	return receipt, nil
}

// renderQR пишет QR во временный файл; cleanup нужно вызвать в любом случае
func (s *receiptService) renderQR(stamp verification.Stamp, roll, amount string) (string, func(), error) {
	cleanup := func() {}

	if s.qr == nil {
		return "", cleanup, ErrQRUnavailable
	}

	payload, err := verification.NewQRPayload(stamp, roll, amount, s.stamper.HostTag()).Encode()
	if err != nil {
		return "", cleanup, fmt.Errorf("%w: %v", ErrQRUnavailable, err)
	}

	file, err := os.CreateTemp(s.cfg.TempDir, "receipt-qr-*.png")
	if err != nil {
		return "", cleanup, fmt.Errorf("%w: failed to create temp file: %v", ErrQRUnavailable, err)
	}

	path := file.Name()
	cleanup = func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove QR temp file")
		}
	}

	if err := file.Close(); err != nil {
		return "", cleanup, fmt.Errorf("%w: %v", ErrQRUnavailable, err)
	}

	if err := s.qr.WriteFile(payload, path); err != nil {
		return "", cleanup, fmt.Errorf("%w: %v", ErrQRUnavailable, err)
	}

	return path, cleanup, nil
}

func (s *receiptService) publishIssued(ctx context.Context, req *models.FeeReceiptRequest, receipt *models.Receipt, stamp verification.Stamp) {
	if s.publisher == nil {
		return
	}

	event := &models.ReceiptIssuedEvent{
		EventID:          uuid.New().String(),
		DocumentID:       receipt.ID,
		ReceiptNumber:    receipt.ReceiptNumber,
		VerificationCode: receipt.VerificationCode,
		FeeID:            req.Fee.ID.String(),
		StudentID:        req.Student.ID.String(),
		RollNumber:       req.Student.RollNumber.String(),
		Amount:           req.Fee.Amount.String(),
		IssuedAt:         stamp.IssuedAt.UTC(),
	}

	if err := s.publisher.PublishReceiptIssued(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("receipt_number", receipt.ReceiptNumber).
			Msg("Failed to publish receipt issued event")
	}
}

func receiptRoomNumber(st models.Student, room *models.Room) string {
	if room != nil && !room.RoomNumber.IsEmpty() {
		return "Room " + room.RoomNumber.String()
	}
	if st.HasRoom() {
		return "Room " + st.AssignedRoom.String()
	}
	return roomNotAssignedCell
}

func paymentMethod(fee models.Fee) string {
	if fee.PaymentMethod.IsEmpty() {
		return document.NotAvailable
	}
	return document.Humanize(fee.PaymentMethod.String())
}
