package verification

import (
	"encoding/json"
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRPayload struct {
	Receipt   string `json:"rcp"`
	Code      string `json:"vc"`
	Checksum  string `json:"sh"`
	Roll      string `json:"roll"`
	Amount    string `json:"amt"`
	Timestamp int64  `json:"ts"`
	Host      string `json:"host"`
}

func NewQRPayload(stamp Stamp, roll, amount, host string) QRPayload {
	checksum := stamp.Checksum
	if len(checksum) > 16 {
		checksum = checksum[:16]
	}

	return QRPayload{
		Receipt:   stamp.ReceiptNumber,
		Code:      stamp.VerificationCode,
		Checksum:  checksum,
		Roll:      roll,
		Amount:    amount,
		Timestamp: stamp.IssuedAt.Unix(),
		Host:      host,
	}
}

func (p QRPayload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal qr payload: %w", err)
	}
	return string(data), nil
}

type QREncoder interface {
	WriteFile(content, path string) error
}

// PNGEncoder пишет QR со средним уровнем коррекции ошибок
type PNGEncoder struct {
	Size int
}

func (e PNGEncoder) WriteFile(content, path string) error {
	size := e.Size
	if size <= 0 {
		size = 256
	}

	if err := qrcode.WriteFile(content, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("failed to encode qr code: %w", err)
	}

	return nil
}
