package verification

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ChecksumModulus ограничивает checksum двенадцатью hex-цифрами
const ChecksumModulus = 1 << 48

// RollingChecksum - некриптографический хеш семейства djb2 на знаковом 32-битном аккумуляторе.
func RollingChecksum(input string) uint64 {
	var acc int32
	for _, r := range input {
		acc = (acc << 5) - acc + int32(r)
	}

	v := int64(acc)
	if v < 0 {
		v = -v
	}

	return uint64(v) % ChecksumModulus
}

func FormatChecksum(v uint64) string {
	return fmt.Sprintf("%012X", v%ChecksumModulus)
}

// HMACChecksum - первые 12 hex-цифр HMAC-SHA256
func HMACChecksum(key, input string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(input))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil))[:12])
}

// Code возвращает код вида DDDDDD-DDD
func Code(input string) string {
	h := xxhash.Sum64String(input) & 0x7FFFFFFF
	return fmt.Sprintf("%06d-%03d", h%999999, (h/1000)%999)
}

// ReceiptNumber - RCP- и последние 8 символов id платежа в верхнем регистре
func ReceiptNumber(feeID string) string {
	id := strings.TrimSpace(feeID)
	if id == "" {
		id = "UNKNOWN"
	}

	runes := []rune(id)
	if len(runes) > 8 {
		runes = runes[len(runes)-8:]
	}

	return "RCP-" + strings.ToUpper(string(runes))
}
