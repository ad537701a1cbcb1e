package domain

import "time"

type Complaint struct {
	ID            string     `db:"id" json:"complaintId"`
	UserID        string     `db:"user_id" json:"userId"`
	Role          string     `db:"role" json:"role"`
	Body          string     `db:"body" json:"complaint"`
	Status        string     `db:"status" json:"status"`
	AdminResponse *string    `db:"admin_response" json:"adminResponse,omitempty"`
	ResolvedAt    *time.Time `db:"resolved_at" json:"resolvedAt,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
}

type SendComplaintRequest struct {
	Complaint string `json:"complaint" validate:"required"`
}

type ResolveComplaintRequest struct {
	AdminResponse string `json:"adminResponse" validate:"required"`
}
