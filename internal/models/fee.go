package models

import "strings"

const (
	FeeStatusPaid    = "paid"
	FeeStatusPending = "pending"
	FeeStatusOverdue = "overdue"
)

const (
	FeeTypeMonthlyRent     = "monthly_rent"
	FeeTypeSecurityDeposit = "security_deposit"
	FeeTypeMaintenance     = "maintenance"
	FeeTypeElectricity     = "electricity"
	FeeTypeOther           = "other"
)

type Fee struct {
	ID            Text   `json:"id"`
	StudentID     Text   `json:"studentId"`
	FeeType       Text   `json:"feeType"`
	Amount        Amount `json:"amount"`
	Status        Text   `json:"status"`
	DueDate       Text   `json:"dueDate"`
	PaymentDate   Text   `json:"paymentDate"`
	PaymentMethod Text   `json:"paymentMethod"`
	Month         Text   `json:"month"`
	Year          Text   `json:"year"`
	Notes         Text   `json:"notes"`
}

// NormalizedStatus приводит статус к нижнему регистру без пробелов
func (f Fee) NormalizedStatus() string {
	return strings.ToLower(strings.TrimSpace(f.Status.String()))
}

func (f Fee) IsPaid() bool {
	return f.NormalizedStatus() == FeeStatusPaid
}
