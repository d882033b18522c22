package models

import "time"

// Application links an applicant profile to a program and carries the review state.
// ReviewedBy and ReviewedAt are either both nil or both set.
type Application struct {
	ID          int64             `json:"id" db:"id"`
	ApplicantID int64             `json:"applicant_id" db:"applicant_id"`
	ProgramID   int64             `json:"program_id" db:"program_id"`
	CreatedBy   int64             `json:"created_by" db:"created_by"`
	Status      ApplicationStatus `json:"status" db:"status"`
	ReviewedBy  *int64            `json:"reviewed_by" db:"reviewed_by"`
	ReviewedAt  *time.Time        `json:"reviewed_at" db:"reviewed_at"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
}

// ApplicationListItem is one row of an applicant's own application list
type ApplicationListItem struct {
	ID        int64             `json:"id"`
	ProgramID int64             `json:"program_id"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Program   ProgramSummary    `json:"program"`
}

// ApplicantSummary is the short applicant view shown in the admin inbox
type ApplicantSummary struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	ReferenceCode string `json:"reference_code"`
}

// AdminApplicationListItem is one row of the dean inbox
type AdminApplicationListItem struct {
	ID         int64             `json:"id"`
	Status     ApplicationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	ReviewedAt *time.Time        `json:"reviewed_at"`
	ReviewedBy *int64            `json:"reviewed_by"`
	Program    ProgramSummary    `json:"program"`
	Applicant  ApplicantSummary  `json:"applicant"`
}

// AdminApplicationDetail is the full application view for a dean
type AdminApplicationDetail struct {
	ID               int64             `json:"id"`
	Status           ApplicationStatus `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	ReviewedAt       *time.Time        `json:"reviewed_at"`
	ReviewedBy       *int64            `json:"reviewed_by"`
	Program          ProgramSummary    `json:"program"`
	ApplicantProfile ApplicantProfile  `json:"applicant_profile"`
}

// ApplicationReview is the outcome of a successful review transition
type ApplicationReview struct {
	ID         int64             `json:"id"`
	Status     ApplicationStatus `json:"status"`
	ReviewedBy int64             `json:"reviewed_by"`
	ReviewedAt time.Time         `json:"reviewed_at"`
}

// AdminApplicationFilter narrows the dean inbox. All set fields combine with AND.
type AdminApplicationFilter struct {
	Status    *ApplicationStatus
	ProgramID *int64
	Search    *string
	Sort      SortDirection
}
