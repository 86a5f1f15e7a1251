package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/RubachokBoss/hostel-report-service/internal/models"
	"github.com/RubachokBoss/hostel-report-service/internal/service/document"
	"github.com/rs/zerolog"
)

const (
	NoFeesNotice        = "No fees data available for this student."
	NoFeesShortNotice   = "No fees data available"
	RoomNotAssigned     = "Room not assigned"
	roomNotAssignedCell = "Not Assigned"
)

type ReportService interface {
	StudentReport(ctx context.Context, req *models.StudentReportRequest) (*models.Document, error)
	AllStudentsReport(ctx context.Context, req *models.AllStudentsReportRequest) (*models.Document, error)
	FeesReport(ctx context.Context, req *models.FeesReportRequest) (*models.Document, error)
}

type reportService struct {
	renderer
}

func NewReportService(composer document.Composer, cfg RenderConfig, logger zerolog.Logger) ReportService {
	return &reportService{
		renderer: newRenderer(composer, cfg, logger),
	}
}

func (s *reportService) StudentReport(ctx context.Context, req *models.StudentReportRequest) (*models.Document, error) {
	now := s.now()
	generated := now.Format(reportDateLayout)
	st := req.Student

	blocks := []document.Block{
		titleBlock(s.cfg.Institution),
		section("Complete Student Report"),
		document.Spacer{Height: 6},
		labelled("Report Generated:", generated),
	}
	blocks = append(blocks, divider(document.ColorGrey)...)

	blocks = append(blocks,
		section("STUDENT INFORMATION"),
		document.Table{
			Widths: []float64{document.Inches(2), document.Inches(4)},
			Header: []string{"Field", "Details"},
			Rows:   studentDetailRows(st),
			Style:  headerStyle,
		},
		section("ROOM INFORMATION"),
	)

	if req.Room.IsEmpty() {
		blocks = append(blocks, document.Paragraph{Content: RoomNotAssigned, Color: document.ColorGrey})
	} else {
		blocks = append(blocks, document.Table{
			Widths: []float64{document.Inches(2), document.Inches(4)},
			Header: []string{"Field", "Details"},
			Rows:   s.roomDetailRows(req.Room),
			Style:  headerStyle,
		})
	}

	blocks = append(blocks, section("FEES DETAILS"))
	if len(req.Fees) == 0 {
		blocks = append(blocks, document.Paragraph{Content: NoFeesNotice})
	} else {
		summary := Summarize(req.Fees)
		blocks = append(blocks,
			document.Table{
				Widths: []float64{document.Inches(3), document.Inches(2)},
				Header: []string{"Summary", "Amount"},
				Rows: [][]string{
					{"Total Fees Generated", s.money(summary.Total)},
					{"Amount Paid", s.money(summary.Paid)},
					{"Amount Pending", s.money(summary.Pending)},
					{"Overdue Amount", s.money(summary.Overdue)},
				},
				Style: summaryStyle,
			},
			section("DETAILED FEES BREAKDOWN"),
			document.Table{
				Widths: []float64{
					document.Inches(2), document.Inches(1.2), document.Inches(1),
					document.Inches(1), document.Inches(1),
				},
				Header: []string{"Period/Type", "Amount", "Status", "Due Date", "Payment Date"},
				Rows:   s.feeLineRows(req.Fees),
				Style:  lineItemStyle,
			},
		)
	}

	blocks = append(blocks, divider(document.ColorGrey)...)
	blocks = append(blocks, footer(fmt.Sprintf(
		"This report was generated automatically by the %s on %s.", s.cfg.Institution, generated), 8))

	fileName := fmt.Sprintf("Student-Report-%s-%s-%s.pdf",
		document.FileNamePart(st.FirstName.String()),
		document.FileNamePart(st.LastName.String()),
		now.Format("20060102"),
	)

	return s.compose(ctx, "Student Report", fileName, blocks)
}

func (s *reportService) AllStudentsReport(ctx context.Context, req *models.AllStudentsReportRequest) (*models.Document, error) {
	now := s.now()
	generated := now.Format(reportDateLayout)
	total := len(req.StudentsData)

	blocks := []document.Block{
		titleBlock(s.cfg.Institution),
		section("All Students Complete Report"),
		document.Spacer{Height: 6},
		labelled("Report Generated:", generated),
		labelled("Total Students:", strconv.Itoa(total)),
	}
	if line, ok := filtersLine(req.Filters, false); ok {
		blocks = append(blocks, line)
	}
	blocks = append(blocks, divider(document.ColorGrey)...)

	var overall FeeSummary
	withRooms := 0

	for i, bundle := range req.StudentsData {
		st := bundle.Student

		room, rent := roomNotAssignedCell, document.NotAvailable
		if !bundle.Room.IsEmpty() {
			withRooms++
			room = "Room " + bundle.Room.RoomNumber.Or(roomNotAssignedCell)
			rent = s.money(bundle.Room.MonthlyRent.Decimal)
		}

		blocks = append(blocks,
			subSection(fmt.Sprintf("STUDENT %d: %s", i+1, st.FullName())),
			document.Table{
				Widths: []float64{document.Inches(1.5), document.Inches(3)},
				Rows: [][]string{
					{"Roll No.", st.RollNumber.Or(document.NotAvailable)},
					{"Course & Year", fmt.Sprintf("%s - Year %s",
						st.Course.Or(document.NotAvailable), st.Year.Or(document.NotAvailable))},
					{"Email", st.Email.Or(document.NotAvailable)},
					{"Phone", st.Phone.Or(document.NotAvailable)},
					{"Guardian", fmt.Sprintf("%s (%s)",
						st.GuardianName.Or(document.NotAvailable), st.GuardianPhone.Or(document.NotAvailable))},
					{"Room", room},
					{"Monthly Rent", rent},
				},
				Style: compactStyle,
			},
		)

		if len(bundle.Fees) > 0 {
			summary := Summarize(bundle.Fees)
			overall = overall.Merge(summary)

			feeStyle := compactStyle
			feeStyle.BodyFill = document.ColorLightGrey
			feeStyle.Border = document.ColorBlack

			blocks = append(blocks,
				document.Paragraph{Content: "Fees Summary:", Bold: true},
				document.Table{
					Widths: []float64{document.Inches(1.5), document.Inches(1.5)},
					Rows: [][]string{
						{"Total Fees", s.money(summary.Total)},
						{"Paid", s.money(summary.Paid)},
						{"Pending", s.money(summary.Pending)},
						{"Overdue", s.money(summary.Overdue)},
					},
					Style: feeStyle,
				},
			)
		} else {
			blocks = append(blocks, document.Paragraph{Content: NoFeesShortNotice, Bold: true})
		}

		if i < total-1 {
			blocks = append(blocks, divider(document.ColorLightGrey)...)
		} else {
			blocks = append(blocks, document.Spacer{Height: 8})
		}
	}

	blocks = append(blocks, divider(document.ColorGrey)...)
	blocks = append(blocks,
		section("OVERALL SUMMARY"),
		document.Table{
			Widths: []float64{document.Inches(2.5), document.Inches(2)},
			Header: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Total Students", strconv.Itoa(total)},
				{"Students with Rooms", strconv.Itoa(withRooms)},
				{"Students without Rooms", strconv.Itoa(total - withRooms)},
				{"Total Fees Generated", s.money(overall.Total)},
				{"Total Amount Collected", s.money(overall.Paid)},
				{"Total Amount Pending", s.money(overall.Pending)},
				{"Total Overdue Amount", s.money(overall.Overdue)},
				{"Collection Rate", FormatRate(overall.CollectionRate())},
			},
			Style: summaryStyle,
		},
	)
	blocks = append(blocks, divider(document.ColorGrey)...)
	blocks = append(blocks, footer(fmt.Sprintf(
		"This comprehensive report contains complete information for all %d students and was generated automatically by the %s on %s.",
		total, s.cfg.Institution, generated), 8))

	fileName := fmt.Sprintf("All-Students-Complete-Report-%s.pdf", now.Format("20060102-1504"))

	return s.compose(ctx, "All Students Report", fileName, blocks)
}

func (s *reportService) FeesReport(ctx context.Context, req *models.FeesReportRequest) (*models.Document, error) {
	now := s.now()
	generated := now.Format(reportDateLayout)

	// одна проходка по платежам: итог и разбивка по студентам
	var overall FeeSummary
	byStudent := make(map[string]FeeSummary, len(req.Students))
	for _, fee := range req.Fees {
		overall.Add(fee)

		id := fee.StudentID.String()
		if id == "" {
			continue
		}
		summary := byStudent[id]
		summary.Add(fee)
		byStudent[id] = summary
	}

	roomNumbers := make(map[string]string, len(req.Rooms))
	for _, room := range req.Rooms {
		id := room.ID.String()
		if id == "" {
			continue
		}
		if _, seen := roomNumbers[id]; !seen {
			roomNumbers[id] = room.RoomNumber.Or(document.NotAvailable)
		}
	}

	blocks := []document.Block{
		titleBlock(s.cfg.Institution),
		section("Comprehensive Fees Report"),
		document.Spacer{Height: 6},
		labelled("Report Generated:", generated),
	}
	if line, ok := filtersLine(req.Filters, true); ok {
		blocks = append(blocks, line)
	}
	blocks = append(blocks, divider(document.ColorGrey)...)

	blocks = append(blocks,
		section("OVERALL SUMMARY"),
		document.Table{
			Widths: []float64{document.Inches(3), document.Inches(2)},
			Header: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Total Students", strconv.Itoa(len(req.Students))},
				{"Total Fees Generated", s.money(overall.Total)},
				{"Amount Collected", s.money(overall.Paid)},
				{"Amount Pending", s.money(overall.Pending)},
				{"Overdue Amount", s.money(overall.Overdue)},
				{"Collection Rate", FormatRate(overall.CollectionRate())},
			},
			Style: summaryStyle,
		},
	)

	rows := make([][]string, 0, len(req.Students))
	for _, st := range req.Students {
		room := document.NotAvailable
		if st.HasRoom() {
			if number, ok := roomNumbers[st.AssignedRoom.String()]; ok {
				room = number
			}
		}

		var summary FeeSummary
		if id := st.ID.String(); id != "" {
			summary = byStudent[id]
		}

		rows = append(rows, []string{
			st.FullName(),
			room,
			s.money(summary.Total),
			s.money(summary.Paid),
			s.money(summary.Pending),
			s.money(summary.Overdue),
		})
	}

	breakdownStyle := lineItemStyle
	breakdownStyle.FontSize = 8

	blocks = append(blocks,
		section("STUDENT-WISE FEES BREAKDOWN"),
		document.Table{
			Widths: []float64{
				document.Inches(1.7), document.Inches(0.7), document.Inches(0.95),
				document.Inches(0.95), document.Inches(0.95), document.Inches(0.95),
			},
			Header: []string{"Student", "Room", "Total Fees", "Paid", "Pending", "Overdue"},
			Rows:   rows,
			Style:  breakdownStyle,
		},
	)
	blocks = append(blocks, divider(document.ColorGrey)...)
	blocks = append(blocks, footer(fmt.Sprintf(
		"This comprehensive fees report was generated automatically by the %s on %s.", s.cfg.Institution, generated), 8))

	fileName := fmt.Sprintf("Fees-Report-%s.pdf", now.Format("20060102-1504"))

	return s.compose(ctx, "Fees Report", fileName, blocks)
}

func studentDetailRows(st models.Student) [][]string {
	return [][]string{
		{"Full Name", document.OrNA(st.FullName())},
		{"Roll Number", st.RollNumber.Or(document.NotAvailable)},
		{"Course", st.Course.Or(document.NotAvailable)},
		{"Year", st.Year.Or(document.NotAvailable)},
		{"Email", st.Email.Or(document.NotAvailable)},
		{"Phone", st.Phone.Or(document.NotAvailable)},
		{"Address", st.Address.Or(document.NotAvailable)},
		{"Guardian Name", st.GuardianName.Or(document.NotAvailable)},
		{"Guardian Phone", st.GuardianPhone.Or(document.NotAvailable)},
		{"Status", document.TitleCase(st.Status.Or("active"))},
		{"Admission Date", document.DateOnly(st.CreatedAt.String())},
	}
}

func (s *reportService) roomDetailRows(room *models.Room) [][]string {
	return [][]string{
		{"Room Number", room.RoomNumber.Or(document.NotAvailable)},
		{"Floor", room.Floor.Or(document.NotAvailable)},
		{"Capacity", fmt.Sprintf("%s/%s beds", room.OccupiedBeds.Or("0"), room.Capacity.Or("0"))},
		{"Monthly Rent", s.money(room.MonthlyRent.Decimal)},
		{"Room Type", room.RoomType.Or(document.NotAvailable)},
		{"Facilities", room.Facilities.Or(document.NotAvailable)},
	}
}

func (s *reportService) feeLineRows(fees []models.Fee) [][]string {
	rows := make([][]string, 0, len(fees))
	for _, fee := range fees {
		period := document.FeeTypeLabel(fee.FeeType.String())
		if !fee.Month.IsEmpty() && !fee.Year.IsEmpty() {
			period = fmt.Sprintf("%s (%s/%s)", period, fee.Month, fee.Year)
		}

		paymentDate := "-"
		if fee.IsPaid() {
			paymentDate = document.DateOnly(fee.PaymentDate.String())
		}

		rows = append(rows, []string{
			period,
			s.money(fee.Amount.Decimal),
			document.TitleCase(fee.Status.Or(models.FeeStatusPending)),
			document.DateOnly(fee.DueDate.String()),
			paymentDate,
		})
	}
	return rows
}
