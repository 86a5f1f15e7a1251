package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

type Metadata struct {
	ID       string
	Title    string
	Subject  string
	Keywords []string
}

// Composer раскладывает блоки по страницам и возвращает готовый документ
type Composer interface {
	Compose(meta Metadata, blocks []Block) ([]byte, error)
}

type PDFOptions struct {
	Compress bool
	Creator  string
	Clock    func() time.Time
}

type PDFComposer struct {
	opts PDFOptions
}

const (
	pageMargin   = 25.4
	bottomMargin = 6.35
	cellPadding  = 1.5
	lineHeight   = 5.0
	fontFamily   = "Helvetica"
)

func NewPDFComposer(opts PDFOptions) *PDFComposer {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &PDFComposer{opts: opts}
}

func (c *PDFComposer) Compose(meta Metadata, blocks []Block) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("pdf layout panic: %v", r)
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.SetCellMargin(cellPadding)
	pdf.SetCompression(c.opts.Compress)
	pdf.SetCreationDate(c.opts.Clock())
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(c.opts.Creator, true)
	pdf.SetAuthor(c.opts.Creator, true)
	if len(meta.Keywords) > 0 || meta.ID != "" {
		pdf.SetKeywords(strings.Join(append([]string{meta.ID}, meta.Keywords...), " "), true)
	}
	pdf.AddPage()

	w := &pageWriter{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}

	for i, block := range blocks {
		w.write(block)
		if pdf.Err() {
			return nil, fmt.Errorf("failed to lay out block %d (%T): %w", i, block, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize pdf: %w", err)
	}

	return buf.Bytes(), nil
}

type pageWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *pageWriter) write(block Block) {
	switch b := block.(type) {
	case Title:
		w.title(b)
	case Heading:
		w.heading(b)
	case Paragraph:
		w.paragraph(b)
	case Table:
		w.table(b)
	case Rule:
		w.rule(b)
	case Spacer:
		w.pdf.Ln(b.Height)
	case Image:
		w.image(b)
	default:
		w.pdf.SetError(fmt.Errorf("unsupported block %T", block))
	}
}

func (w *pageWriter) setTextColor(c Color) {
	w.pdf.SetTextColor(c.R, c.G, c.B)
}

func (w *pageWriter) title(b Title) {
	size := orSize(b.Size, 20)
	w.pdf.SetFont(fontFamily, "B", size)
	w.setTextColor(b.Color)
	w.pdf.MultiCell(0, size*0.45, w.tr(b.Content), "", string(AlignCenter), false)
	w.pdf.Ln(6)
}

func (w *pageWriter) heading(b Heading) {
	size := orSize(b.Size, 14)
	w.pdf.Ln(2)
	w.pdf.SetFont(fontFamily, "B", size)
	w.setTextColor(b.Color)
	w.pdf.MultiCell(0, size*0.5, w.tr(b.Content), "", string(AlignLeft), false)
	w.pdf.Ln(2)
}

func (w *pageWriter) paragraph(b Paragraph) {
	size := orSize(b.Size, 10)
	h := size * 0.5
	w.setTextColor(b.Color)

	if b.Label == "" {
		style := ""
		if b.Bold {
			style = "B"
		}
		w.pdf.SetFont(fontFamily, style, size)
		align := b.Align
		if align == "" {
			align = AlignLeft
		}
		w.pdf.MultiCell(0, h, w.tr(b.Content), "", string(align), false)
		w.pdf.Ln(1.5)
		return
	}

	w.pdf.SetFont(fontFamily, "B", size)
	w.pdf.Write(h, w.tr(b.Label+" "))
	w.pdf.SetFont(fontFamily, "", size)
	w.pdf.Write(h, w.tr(b.Content))
	w.pdf.Ln(h + 1.5)
}

func (w *pageWriter) rule(b Rule) {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY() + 1

	w.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
	w.pdf.SetLineWidth(orSize(b.Width, 0.35))
	w.pdf.Line(left, y, pageW-right, y)
	w.pdf.SetLineWidth(0.2)
	w.pdf.Ln(3)
}

func (w *pageWriter) table(t Table) {
	st := t.Style
	size := orSize(st.FontSize, 10)
	w.pdf.SetDrawColor(st.Border.R, st.Border.G, st.Border.B)

	if len(t.Header) > 0 {
		w.pdf.SetFont(fontFamily, "B", size)
		w.row(t.Widths, t.Header, st.HeaderFill, st.HeaderText, false, size, AlignCenter)
	}

	align := st.Align
	if align == "" {
		align = AlignLeft
	}
	for _, cells := range t.Rows {
		w.pdf.SetFont(fontFamily, "", size)
		w.row(t.Widths, cells, st.BodyFill, st.BodyText, st.BoldColumn0, size, align)
	}

	w.pdf.Ln(3)
}

// row рисует строку таблицы целиком на одной странице; строка выше страницы режется по строкам текста
func (w *pageWriter) row(widths []float64, cells []string, fill, text Color, boldFirst bool, size float64, align Align) {
	pdf := w.pdf
	lines := make([][]string, len(widths))
	maxLines := 1

	for i, width := range widths {
		pdf.SetFont(fontFamily, cellStyle(boldFirst, i), size)

		var content string
		if i < len(cells) {
			content = w.tr(cells[i])
		}
		lines[i] = w.wrap(content, width-2*cellPadding)
		if len(lines[i]) > maxLines {
			maxLines = len(lines[i])
		}
	}

	_, pageH := pdf.GetPageSize()
	_, top, _, bottom := pdf.GetMargins()
	fit := func(y float64) int {
		return int((pageH - bottom - y - 2) / lineHeight)
	}

	for start := 0; start < maxLines; {
		remaining := maxLines - start
		room := fit(pdf.GetY())
		if room < remaining && (room < 1 || remaining <= fit(top)) {
			pdf.AddPage()
			room = fit(pdf.GetY())
		}
		if room < 1 {
			pdf.SetError(fmt.Errorf("table row does not fit on a page"))
			return
		}

		n := remaining
		if n > room {
			n = room
		}
		w.rowSegment(widths, lines, start, n, fill, text, boldFirst, size, align)
		start += n
	}
}

// rowSegment рисует строки текста [start, start+n) всех ячеек одним прямоугольником
func (w *pageWriter) rowSegment(widths []float64, lines [][]string, start, n int, fill, text Color, boldFirst bool, size float64, align Align) {
	pdf := w.pdf
	h := float64(n)*lineHeight + 2

	x0, y0 := pdf.GetXY()
	x := x0
	for i, width := range widths {
		pdf.SetFont(fontFamily, cellStyle(boldFirst, i), size)
		pdf.SetFillColor(fill.R, fill.G, fill.B)
		pdf.Rect(x, y0, width, h, "FD")
		pdf.SetTextColor(text.R, text.G, text.B)

		for k := start; k < start+n && k < len(lines[i]); k++ {
			pdf.SetXY(x, y0+1+float64(k-start)*lineHeight)
			pdf.CellFormat(width, lineHeight, lines[i][k], "", 0, string(align), false, 0, "")
		}
		x += width
	}

	pdf.SetXY(x0, y0+h)
}

func cellStyle(boldFirst bool, column int) string {
	if boldFirst && column == 0 {
		return "B"
	}
	return ""
}

// wrap режет строку в однобайтовой кодировке по ширине колонки
func (w *pageWriter) wrap(content string, width float64) []string {
	var lines []string

	for _, paragraph := range strings.Split(content, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if w.pdf.GetStringWidth(candidate) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			for w.pdf.GetStringWidth(word) > width && len(word) > 1 {
				cut := len(word) - 1
				for cut > 1 && w.pdf.GetStringWidth(word[:cut]) > width {
					cut--
				}
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			current = word
		}
		lines = append(lines, current)
	}

	return lines
}

func (w *pageWriter) image(b Image) {
	pdf := w.pdf
	left, _, right, bottom := pdf.GetMargins()
	pageW, pageH := pdf.GetPageSize()

	x, y := pdf.GetXY()
	if y+b.Height > pageH-bottom {
		pdf.AddPage()
		x, y = pdf.GetXY()
	}

	pdf.ImageOptions(b.Path, x, y, b.Width, b.Height, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	if b.Caption != "" {
		captionX := x + b.Width + 5
		pdf.SetXY(captionX, y+2)
		pdf.SetFont(fontFamily, "", 9)
		w.setTextColor(ColorBlack)
		pdf.MultiCell(pageW-right-captionX, 4.5, w.tr(b.Caption), "", string(AlignLeft), false)
	}

	pdf.SetXY(left, y+b.Height+3)
}

func orSize(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
