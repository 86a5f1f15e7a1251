package models

import "time"

type ReceiptIssuedEvent struct {
	EventID          string    `json:"event_id"`
	DocumentID       string    `json:"document_id"`
	ReceiptNumber    string    `json:"receipt_number"`
	VerificationCode string    `json:"verification_code"`
	FeeID            string    `json:"fee_id"`
	StudentID        string    `json:"student_id"`
	RollNumber       string    `json:"roll_number"`
	Amount           string    `json:"amount"`
	IssuedAt         time.Time `json:"issued_at"`
}
