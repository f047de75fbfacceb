package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID  `json:"id" db:"user_id"`
	Email                   string     `json:"email" db:"email"`
	PasswordHash            string     `json:"-" db:"password_hash"`
	Title                   *string    `json:"title,omitempty" db:"title"`
	FirstName               string     `json:"first_name" db:"first_name"`
	MiddleName              *string    `json:"middle_name,omitempty" db:"middle_name"`
	LastName                string     `json:"last_name" db:"last_name"`
	Suffix                  *string    `json:"suffix,omitempty" db:"suffix"`
	Address                 *string    `json:"address,omitempty" db:"address"`
	Address2                *string    `json:"address2,omitempty" db:"address2"`
	City                    *string    `json:"city,omitempty" db:"city"`
	State                   *string    `json:"state,omitempty" db:"state"`
	Zip                     *string    `json:"zip,omitempty" db:"zip"`
	DateOfBirth             *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Phone                   *string    `json:"-" db:"phone"`
	Mobile                  *string    `json:"-" db:"mobile"`
	Gender                  *string    `json:"gender,omitempty" db:"gender"`
	MaritalStatus           *string    `json:"marital_status,omitempty" db:"marital_status"`
	IsParent                bool       `json:"is_parent" db:"is_parent"`
	IsVeteran               bool       `json:"is_veteran" db:"is_veteran"`
	IsStudent               bool       `json:"is_student" db:"is_student"`
	IsRetired               bool       `json:"is_retired" db:"is_retired"`
	Role                    string     `json:"role" db:"role"`
	IsEmailVerified         bool       `json:"is_email_verified" db:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-" db:"email_verification_token"`
	EmailVerificationSentAt *time.Time `json:"-" db:"email_verification_sent_at"`
	PasswordResetToken      *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt  *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateUserInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

type UpdateProfileInput struct {
	Email         *string    `json:"email,omitempty" validate:"omitempty,email"`
	Title         *string    `json:"title,omitempty"`
	FirstName     *string    `json:"first_name,omitempty"`
	MiddleName    *string    `json:"middle_name,omitempty"`
	LastName      *string    `json:"last_name,omitempty"`
	Suffix        *string    `json:"suffix,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Address2      *string    `json:"address2,omitempty"`
	City          *string    `json:"city,omitempty"`
	State         *string    `json:"state,omitempty"`
	Zip           *string    `json:"zip,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	MobileNumber  *string    `json:"mobile_number,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	MaritalStatus *string    `json:"marital_status,omitempty"`
	IsParent      *bool      `json:"is_parent,omitempty"`
	IsVeteran     *bool      `json:"is_veteran,omitempty"`
	IsStudent     *bool      `json:"is_student,omitempty"`
	IsRetired     *bool      `json:"is_retired,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleCitizen UserRole = "citizen"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCitizen, RoleAdmin:
		return true
	default:
		return false
	}
}

func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == "admin"
	case "citizen":
		return u.Role == "citizen" || u.Role == "admin"
	default:
		return false
	}
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips a phone number down to its digits for storage.
func NormalizePhone(number string) string {
	return nonDigits.ReplaceAllString(number, "")
}

// PrettyPhone renders stored digits as xxx-xxx-xxxx.
func PrettyPhone(number *string) *string {
	if number == nil || *number == "" {
		return nil
	}
	n := *number
	if len(n) < 7 {
		return &n
	}
	pretty := n[0:3] + "-" + n[3:6] + "-" + n[6:]
	return &pretty
}

func (u *User) PhoneNumber() *string {
	return PrettyPhone(u.Phone)
}

func (u *User) MobileNumber() *string {
	return PrettyPhone(u.Mobile)
}

func (u *User) FullName() string {
	parts := []string{u.FirstName}
	if u.MiddleName != nil && *u.MiddleName != "" {
		parts = append(parts, *u.MiddleName)
	}
	parts = append(parts, u.LastName)
	if u.Suffix != nil && *u.Suffix != "" {
		parts = append(parts, *u.Suffix)
	}
	return strings.Join(parts, " ")
}

// SchemaOrgPerson projects the profile onto a schema.org Person shape
// for consumers that ingest structured profile data.
func (u *User) SchemaOrgPerson() map[string]any {
	street := []string{}
	if u.Address != nil && *u.Address != "" {
		street = append(street, *u.Address)
	}
	if u.Address2 != nil && *u.Address2 != "" {
		street = append(street, *u.Address2)
	}

	var birthDate string
	if u.DateOfBirth != nil {
		birthDate = u.DateOfBirth.Format("2006-01-02")
	}

	return map[string]any{
		"email":          u.Email,
		"givenName":      u.FirstName,
		"additionalName": deref(u.MiddleName),
		"familyName":     u.LastName,
		"homeLocation": map[string]any{
			"streetAddress":   strings.Join(street, ","),
			"addressLocality": deref(u.City),
			"addressRegion":   deref(u.State),
			"postalCode":      deref(u.Zip),
		},
		"birthDate": birthDate,
		"telephone": deref(u.Phone),
		"gender":    titleCase(deref(u.Gender)),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
