package models

import "time"

// ApplicantProfile is the single personal profile of an applicant user.
// ReferenceCode is assigned when the row is first inserted and never changes.
type ApplicantProfile struct {
	ID                   int64     `json:"id" db:"id"`
	UserID               int64     `json:"user_id" db:"user_id"`
	ReferenceCode        string    `json:"reference_code" db:"reference_code"`
	FirstName            string    `json:"first_name" db:"first_name"`
	LastName             string    `json:"last_name" db:"last_name"`
	DateOfBirth          string    `json:"date_of_birth" db:"date_of_birth"`
	Gender               string    `json:"gender" db:"gender"`
	PassportNo           string    `json:"passport_no" db:"passport_no"`
	IDNo                 string    `json:"id_no" db:"id_no"`
	PlaceOfBirth         string    `json:"place_of_birth" db:"place_of_birth"`
	ContactNumber        string    `json:"contact_number" db:"contact_number"`
	Country              string    `json:"country" db:"country"`
	AddressLine          string    `json:"address_line" db:"address_line"`
	City                 string    `json:"city" db:"city"`
	State                string    `json:"state" db:"state"`
	ZipPostcode          string    `json:"zip_postcode" db:"zip_postcode"`
	MotherFullName       string    `json:"mother_full_name" db:"mother_full_name"`
	FatherFullName       string    `json:"father_full_name" db:"father_full_name"`
	HeardAboutUniversity string    `json:"heard_about_university" db:"heard_about_university"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}

// OwnerID implements auth.OwnedResource
func (p *ApplicantProfile) OwnerID() int64 { return p.UserID }

// ApplicantProfileInput is the full profile payload minus identity and
// server-assigned fields
type ApplicantProfileInput struct {
	FirstName            string
	LastName             string
	DateOfBirth          string
	Gender               string
	PassportNo           string
	IDNo                 string
	PlaceOfBirth         string
	ContactNumber        string
	Country              string
	AddressLine          string
	City                 string
	State                string
	ZipPostcode          string
	MotherFullName       string
	FatherFullName       string
	HeardAboutUniversity string
}
