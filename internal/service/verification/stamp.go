package verification

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ModeLegacy = "legacy"
	ModeHMAC   = "hmac"
)

type Config struct {
	Mode         string
	SecretKey    string
	CodeSalt     string
	ChecksumSalt string
	HostTag      string
}

type Input struct {
	FeeID       string
	StudentName string
	RollNumber  string
	FeeType     string
	Amount      decimal.Decimal
	IssuedAt    time.Time
}

type Stamp struct {
	ReceiptNumber    string
	VerificationCode string
	Checksum         string
	IssuedAt         time.Time
}

// Stamper выводит идентификаторы квитанции из ее полей и момента выдачи
type Stamper struct {
	cfg Config
}

func NewStamper(cfg Config) *Stamper {
	if cfg.Mode == "" {
		cfg.Mode = ModeLegacy
	}
	return &Stamper{cfg: cfg}
}

func (s *Stamper) Stamp(in Input) Stamp {
	ts := Timestamp(in.IssuedAt)
	amount := in.Amount.String()

	codeInput := in.FeeID + in.RollNumber + amount + ts + s.cfg.CodeSalt + strconv.Itoa(in.IssuedAt.Year())
	checksumInput := in.StudentName + in.RollNumber + amount + in.FeeType + ts + s.cfg.ChecksumSalt

	var checksum string
	if s.cfg.Mode == ModeHMAC {
		checksum = HMACChecksum(s.cfg.SecretKey, checksumInput)
	} else {
		checksum = FormatChecksum(RollingChecksum(checksumInput))
	}

	return Stamp{
		ReceiptNumber:    ReceiptNumber(in.FeeID),
		VerificationCode: Code(codeInput),
		Checksum:         checksum,
		IssuedAt:         in.IssuedAt,
	}
}

func (s *Stamper) HostTag() string {
	return s.cfg.HostTag
}

// Timestamp - секунды Unix с дробной частью до микросекунд в кратчайшей записи
func Timestamp(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixMicro())/1e6, 'f', -1, 64)
}
