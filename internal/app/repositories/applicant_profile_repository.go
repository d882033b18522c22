package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/dberrors"
)

// ApplicantProfileRepository handles database operations for applicant profiles
type ApplicantProfileRepository struct {
	db *pgxpool.Pool
}

// NewApplicantProfileRepository creates a new applicant profile repository
func NewApplicantProfileRepository(db *pgxpool.Pool) *ApplicantProfileRepository {
	return &ApplicantProfileRepository{db: db}
}

var profileColumns = []string{
	"id", "user_id", "reference_code", "first_name", "last_name", "date_of_birth::text",
	"gender", "passport_no", "id_no", "place_of_birth", "contact_number", "country",
	"address_line", "city", "state", "zip_postcode", "mother_full_name", "father_full_name",
	"heard_about_university", "created_at",
}

func profileDest(p *models.ApplicantProfile) []any {
	return []any{
		&p.ID, &p.UserID, &p.ReferenceCode, &p.FirstName, &p.LastName, &p.DateOfBirth,
		&p.Gender, &p.PassportNo, &p.IDNo, &p.PlaceOfBirth, &p.ContactNumber, &p.Country,
		&p.AddressLine, &p.City, &p.State, &p.ZipPostcode, &p.MotherFullName, &p.FatherFullName,
		&p.HeardAboutUniversity, &p.CreatedAt,
	}
}

func scanProfile(row pgx.Row) (*models.ApplicantProfile, error) {
	var p models.ApplicantProfile
	if err := row.Scan(profileDest(&p)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// profileValues maps every writable column except reference_code, which is
// only ever written by Insert.
func profileValues(in models.ApplicantProfileInput) map[string]interface{} {
	return map[string]interface{}{
		"first_name":             in.FirstName,
		"last_name":              in.LastName,
		"date_of_birth":          squirrel.Expr("?::date", in.DateOfBirth),
		"gender":                 in.Gender,
		"passport_no":            in.PassportNo,
		"id_no":                  in.IDNo,
		"place_of_birth":         in.PlaceOfBirth,
		"contact_number":         in.ContactNumber,
		"country":                in.Country,
		"address_line":           in.AddressLine,
		"city":                   in.City,
		"state":                  in.State,
		"zip_postcode":           in.ZipPostcode,
		"mother_full_name":       in.MotherFullName,
		"father_full_name":       in.FatherFullName,
		"heard_about_university": in.HeardAboutUniversity,
	}
}

// GetByUserID reads a profile without locking
func (r *ApplicantProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.ApplicantProfile, error) {
	return r.FindByUserID(ctx, r.db, userID, false)
}

// FindByUserID reads the profile of userID through q. With forUpdate the row
// is locked until q's transaction ends; concurrent writers for the same user
// queue behind it.
func (r *ApplicantProfileRepository) FindByUserID(ctx context.Context, q db.DBTX, userID int64, forUpdate bool) (*models.ApplicantProfile, error) {
	sb := psql.Select(profileColumns...).From("applicant_profiles").Where(squirrel.Eq{"user_id": userID})
	if forUpdate {
		sb = sb.Suffix("FOR UPDATE")
	}
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	p, err := scanProfile(q.QueryRow(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("error retrieving applicant profile: %w", err)
	}
	return p, err
}

// Insert creates the profile of userID with the given reference code.
//
// The statement runs inside a savepoint so a failed attempt leaves the outer
// transaction usable. Returns ErrReferenceCodeTaken when the code collides
// with another profile, and ErrProfileExists when a concurrent transaction
// created the user's profile first.
func (r *ApplicantProfileRepository) Insert(ctx context.Context, q db.DBTX, userID int64, referenceCode string, in models.ApplicantProfileInput) error {
	values := profileValues(in)
	values["user_id"] = userID
	values["reference_code"] = referenceCode

	query, args, err := psql.Insert("applicant_profiles").SetMap(values).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert profile query: %w", err)
	}

	sp, err := q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to open savepoint: %w", err)
	}
	defer func() { _ = sp.Rollback(ctx) }()

	tag, err := sp.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintProfilesReferenceCode) {
			return ErrReferenceCodeTaken
		}
		return fmt.Errorf("error inserting applicant profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileExists
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}

// UpdateByUserID overwrites every profile field except reference_code
func (r *ApplicantProfileRepository) UpdateByUserID(ctx context.Context, q db.DBTX, userID int64, in models.ApplicantProfileInput) error {
	query, args, err := psql.Update("applicant_profiles").SetMap(profileValues(in)).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating applicant profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
