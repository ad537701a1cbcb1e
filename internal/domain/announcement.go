package domain

import "time"

type Announcement struct {
	ID         string     `db:"id" json:"announcementId"`
	SenderID   string     `db:"sender_id" json:"-"`
	SenderRole string     `db:"sender_role" json:"-"`
	Title      string     `db:"title" json:"title"`
	Content    string     `db:"content" json:"content"`
	CourseCode *string    `db:"course_code" json:"courseCode,omitempty"`
	SectionID  *string    `db:"section_id" json:"sectionId,omitempty"`
	IsDeleted  bool       `db:"is_deleted" json:"-"`
	DeletedBy  *string    `db:"deleted_by" json:"-"`
	DeletedAt  *time.Time `db:"deleted_at" json:"-"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`

	Sender AnnouncementSender `json:"sender"`
}

type AnnouncementSender struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture"`
}

type SendAnnouncementRequest struct {
	Title      string  `json:"title" validate:"required"`
	Content    string  `json:"content" validate:"required,max=5000"`
	CourseCode *string `json:"courseCode"`
	SectionID  *string `json:"sectionId"`
}
