package models

import "time"

// ProgramCoordinator is a staff contact a program may reference
type ProgramCoordinator struct {
	ID                    int64     `json:"id" db:"id"`
	FullName              string    `json:"full_name" db:"full_name"`
	Email                 string    `json:"email" db:"email"`
	Picture               *string   `json:"picture" db:"picture"`
	TelephoneNumber       *string   `json:"telephone_number" db:"telephone_number"`
	Nationality           *string   `json:"nationality" db:"nationality"`
	AcademicQualification *string   `json:"academic_qualification" db:"academic_qualification"`
	Speciality            *string   `json:"speciality" db:"speciality"`
	OfficeLocation        *string   `json:"office_location" db:"office_location"`
	OfficeHours           *string   `json:"office_hours" db:"office_hours"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
}

// CoordinatorInput holds the writable coordinator fields
type CoordinatorInput struct {
	FullName              string
	Email                 string
	Picture               *string
	TelephoneNumber       *string
	Nationality           *string
	AcademicQualification *string
	Speciality            *string
	OfficeLocation        *string
	OfficeHours           *string
}
