package domain

import "time"

type Fee struct {
	FeeID         string       `db:"fee_id" json:"feeId"`
	AcademicLevel string       `db:"academic_level" json:"academicLevel"`
	Department    string       `db:"department" json:"department"`
	Amount        float64      `db:"amount" json:"amount"`
	DueDate       time.Time    `db:"due_date" json:"dueDate"`
	CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
	Students      []StudentFee `json:"students"`
}

type StudentFee struct {
	FeeID     string     `db:"fee_id" json:"feeId"`
	StudentID string     `db:"student_id" json:"studentId"`
	Amount    float64    `db:"amount" json:"amount"`
	DueDate   time.Time  `db:"due_date" json:"dueDate"`
	Status    string     `db:"status" json:"status"`
	PaidAt    *time.Time `db:"paid_at" json:"paidAt,omitempty"`
}

type CreateFeeRequest struct {
	FeeID         string    `json:"feeId" validate:"required"`
	AcademicLevel string    `json:"academicLevel" validate:"required,oneof=First Second Third Fourth"`
	Department    string    `json:"department" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	DueDate       time.Time `json:"dueDate" validate:"required"`
}

type UpdateFeeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Paid"`
}
