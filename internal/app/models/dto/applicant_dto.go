package dto

import "github.com/yigit/admissions/internal/app/models"

// ApplicantProfileRequest is the full applicant profile payload
type ApplicantProfileRequest struct {
	FirstName            string `json:"first_name" binding:"required,notblank,min=2,max=80" example:"Ada"`
	LastName             string `json:"last_name" binding:"required,notblank,min=2,max=80" example:"Lovelace"`
	DateOfBirth          string `json:"date_of_birth" binding:"required,isodate" example:"2005-12-10"`
	Gender               string `json:"gender" binding:"required,notblank,min=2,max=20" example:"female"`
	PassportNo           string `json:"passport_no" binding:"required,notblank,min=3,max=30" example:"P1234567"`
	IDNo                 string `json:"id_no" binding:"required,notblank,min=3,max=30" example:"12345678901"`
	PlaceOfBirth         string `json:"place_of_birth" binding:"required,notblank,min=2,max=120" example:"London"`
	ContactNumber        string `json:"contact_number" binding:"required,notblank,min=5,max=30" example:"+44 20 7946 0000"`
	Country              string `json:"country" binding:"required,notblank,min=2,max=80" example:"United Kingdom"`
	AddressLine          string `json:"address_line" binding:"required,notblank,min=2,max=150" example:"12 St James's Square"`
	City                 string `json:"city" binding:"required,notblank,min=2,max=80" example:"London"`
	State                string `json:"state" binding:"required,notblank,min=2,max=80" example:"Greater London"`
	ZipPostcode          string `json:"zip_postcode" binding:"required,notblank,min=2,max=20" example:"SW1Y 4JH"`
	MotherFullName       string `json:"mother_full_name" binding:"required,notblank,min=2,max=150" example:"Anne Isabella Milbanke"`
	FatherFullName       string `json:"father_full_name" binding:"required,notblank,min=2,max=150" example:"George Gordon Byron"`
	HeardAboutUniversity string `json:"heard_about_university" binding:"required,notblank,min=2,max=120" example:"Friends"`
}

// ToInput maps the request onto the model input
func (r *ApplicantProfileRequest) ToInput() models.ApplicantProfileInput {
	return models.ApplicantProfileInput{
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		DateOfBirth:          r.DateOfBirth,
		Gender:               r.Gender,
		PassportNo:           r.PassportNo,
		IDNo:                 r.IDNo,
		PlaceOfBirth:         r.PlaceOfBirth,
		ContactNumber:        r.ContactNumber,
		Country:              r.Country,
		AddressLine:          r.AddressLine,
		City:                 r.City,
		State:                r.State,
		ZipPostcode:          r.ZipPostcode,
		MotherFullName:       r.MotherFullName,
		FatherFullName:       r.FatherFullName,
		HeardAboutUniversity: r.HeardAboutUniversity,
	}
}
