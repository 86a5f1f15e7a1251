package document

// Block - элемент документа, который composer раскладывает по страницам
type Block interface {
	Text() []string
}

type Color struct {
	R, G, B int
}

var (
	ColorBlack       = Color{0, 0, 0}
	ColorWhite       = Color{255, 255, 255}
	ColorGrey        = Color{128, 128, 128}
	ColorLightGrey   = Color{211, 211, 211}
	ColorBeige       = Color{245, 245, 220}
	ColorLightBlue   = Color{173, 216, 230}
	ColorDarkBlue    = Color{0, 0, 139}
	ColorDarkGreen   = Color{0, 100, 0}
	ColorRed         = Color{255, 0, 0}
	ColorLightYellow = Color{255, 255, 224}
	ColorOrange      = Color{255, 165, 0}
	ColorLightGreen  = Color{144, 238, 144}
)

type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

type Title struct {
	Content string
	Color   Color
	Size    float64
}

func (b Title) Text() []string { return []string{b.Content} }

type Heading struct {
	Content string
	Color   Color
	Size    float64
}

func (b Heading) Text() []string { return []string{b.Content} }

// Paragraph выводит необязательную жирную метку и текст одной строкой с переносом
type Paragraph struct {
	Label   string
	Content string
	Size    float64
	Bold    bool
	Color   Color
	Align   Align
}

func (b Paragraph) Text() []string {
	if b.Label == "" {
		return []string{b.Content}
	}
	return []string{b.Label + " " + b.Content}
}

type TableStyle struct {
	HeaderFill  Color
	HeaderText  Color
	BodyFill    Color
	BodyText    Color
	Border      Color
	FontSize    float64
	BoldColumn0 bool
	Align       Align
}

// Table - ширины колонок в миллиметрах, шапка необязательна
type Table struct {
	Widths []float64
	Header []string
	Rows   [][]string
	Style  TableStyle
}

func (b Table) Text() []string {
	out := make([]string, 0, len(b.Header)+len(b.Rows)*len(b.Widths))
	out = append(out, b.Header...)
	for _, row := range b.Rows {
		out = append(out, row...)
	}
	return out
}

type Rule struct {
	Color Color
	Width float64
}

func (b Rule) Text() []string { return nil }

type Spacer struct {
	Height float64
}

func (b Spacer) Text() []string { return nil }

// Image - PNG с диска; Caption печатается справа от картинки
type Image struct {
	Path    string
	Width   float64
	Height  float64
	Caption string
}

func (b Image) Text() []string {
	if b.Caption == "" {
		return nil
	}
	return []string{b.Caption}
}

// Inches переводит дюймы в миллиметры
func Inches(v float64) float64 {
	return v * 25.4
}

// Contents собирает весь текст документа в порядке блоков
func Contents(blocks []Block) []string {
	var out []string
	for _, b := range blocks {
		out = append(out, b.Text()...)
	}
	return out
}
