package models

// Document - готовый PDF, который отдается клиенту и нигде не сохраняется
type Document struct {
	ID       string
	FileName string
	Content  []byte
}

type Receipt struct {
	Document
	ReceiptNumber    string
	VerificationCode string
	Checksum         string
	QRAvailable      bool
}
