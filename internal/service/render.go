package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RubachokBoss/hostel-report-service/internal/models"
	"github.com/RubachokBoss/hostel-report-service/internal/service/document"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type RenderConfig struct {
	Institution    string
	ReceiptTitle   string
	CurrencySymbol string
	AuthCode       string
	TempDir        string
	Clock          func() time.Time
}

const (
	reportDateLayout  = "02 January 2006 at 03:04 PM"
	receiptDateLayout = "02 January 2006"
)

var (
	headerStyle = document.TableStyle{
		HeaderFill: document.ColorGrey,
		HeaderText: document.ColorWhite,
		BodyFill:   document.ColorBeige,
		FontSize:   10,
	}
	summaryStyle = document.TableStyle{
		HeaderFill: document.ColorDarkGreen,
		HeaderText: document.ColorWhite,
		BodyFill:   document.ColorLightGrey,
		FontSize:   10,
	}
	lineItemStyle = document.TableStyle{
		HeaderFill: document.ColorDarkBlue,
		HeaderText: document.ColorWhite,
		BodyFill:   document.ColorBeige,
		FontSize:   9,
	}
	compactStyle = document.TableStyle{
		BodyFill:    document.ColorWhite,
		Border:      document.ColorLightGrey,
		FontSize:    8,
		BoldColumn0: true,
	}
)

// renderer - общая часть сервисов: шрифтовые стили, деньги, время и сборка документа
type renderer struct {
	composer document.Composer
	cfg      RenderConfig
	logger   zerolog.Logger
}

func newRenderer(composer document.Composer, cfg RenderConfig, logger zerolog.Logger) renderer {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Institution == "" {
		cfg.Institution = "Girls Hostel Management System"
	}
	if cfg.ReceiptTitle == "" {
		cfg.ReceiptTitle = "Navadaya " + cfg.Institution
	}
	return renderer{composer: composer, cfg: cfg, logger: logger}
}

func (r renderer) now() time.Time {
	return r.cfg.Clock()
}

func (r renderer) money(d decimal.Decimal) string {
	return document.FormatCurrency(r.cfg.CurrencySymbol, d)
}

func titleBlock(content string) document.Block {
	return document.Title{Content: content, Color: document.ColorDarkBlue, Size: 22}
}

func section(content string) document.Block {
	return document.Heading{Content: content, Color: document.ColorDarkGreen, Size: 14}
}

func subSection(content string) document.Block {
	return document.Heading{Content: content, Color: document.ColorDarkBlue, Size: 12}
}

func divider(c document.Color) []document.Block {
	return []document.Block{
		document.Spacer{Height: 4},
		document.Rule{Color: c},
		document.Spacer{Height: 4},
	}
}

func footer(content string, size float64) document.Block {
	return document.Paragraph{Content: content, Size: size, Color: document.ColorGrey, Align: document.AlignCenter}
}

func labelled(label, content string) document.Block {
	return document.Paragraph{Label: label, Content: content}
}

func filtersLine(f models.ReportFilters, extended bool) (document.Block, bool) {
	var parts []string
	if !f.Year.IsEmpty() {
		parts = append(parts, "Year: "+f.Year.String())
	}
	if !f.Month.IsEmpty() {
		parts = append(parts, "Month: "+f.Month.String())
	}
	if extended {
		if !f.Status.IsEmpty() {
			parts = append(parts, "Status: "+document.TitleCase(f.Status.String()))
		}
		if !f.FeeType.IsEmpty() {
			parts = append(parts, "Fee Type: "+document.Humanize(f.FeeType.String()))
		}
	}
	if len(parts) == 0 {
		return nil, false
	}
	return labelled("Applied Filters:", strings.Join(parts, ", ")), true
}

func (r renderer) compose(ctx context.Context, kind, fileName string, blocks []document.Block) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	content, err := r.composer.Compose(document.Metadata{
		ID:       id,
		Title:    kind,
		Subject:  r.cfg.Institution,
		Keywords: []string{fileName},
	}, blocks)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("document_id", id).
			Str("kind", kind).
			Msg("Failed to compose document")
		return nil, fmt.Errorf("%w: %v", ErrComposeFailed, err)
	}

	r.logger.Info().
		Str("document_id", id).
		Str("kind", kind).
		Str("file_name", fileName).
		Int("blocks", len(blocks)).
		Int("bytes", len(content)).
		Msg("Document generated")

	return &models.Document{
		ID:       id,
		FileName: fileName,
		Content:  content,
	}, nil
}
