package users

import (
	"errors"
	"time"

	"github.com/island-scholars/server/internal/auth"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDeactivated = errors.New("user account is deactivated")
	ErrUnknownRole        = errors.New("unknown role")
)

// User is an account. Exactly one role-specific profile hangs off it,
// keyed by Role.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         auth.Role `json:"role"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	Location     string    `json:"location,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Active       bool      `json:"isActive"`
	Verified     bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the tagged variant of role-specific account data. Exactly
// one concrete type exists per role; construction is dispatched on the
// account's Role at signup.
type Profile interface {
	profileRole() auth.Role
}

type StudentProfile struct {
	ID            int64    `json:"id"`
	UserID        string   `json:"userId"`
	StudentNumber string   `json:"studentId,omitempty"`
	YearOfStudy   int      `json:"yearOfStudy,omitempty"`
	FieldOfStudy  string   `json:"fieldOfStudy,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	UniversityID  *int64   `json:"universityId,omitempty"`
}

func (StudentProfile) profileRole() auth.Role { return auth.RoleStudent }

type OrganizationProfile struct {
	ID                 int64    `json:"id"`
	UserID             string   `json:"userId"`
	CompanyName        string   `json:"companyName"`
	Industry           string   `json:"industry,omitempty"`
	CompanySize        string   `json:"companySize,omitempty"`
	Description        string   `json:"description,omitempty"`
	Website            string   `json:"website,omitempty"`
	FoundedYear        int      `json:"foundedYear,omitempty"`
	RegistrationNumber string   `json:"registrationNumber,omitempty"`
	DesiredSkills      []string `json:"desiredSkills,omitempty"`
}

func (OrganizationProfile) profileRole() auth.Role { return auth.RoleOrganization }

// UniversityProfile links an account to a university record owned by
// the universities domain.
type UniversityProfile struct {
	UserID          string   `json:"userId"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Website         string   `json:"website,omitempty"`
	EstablishedYear int      `json:"establishedYear,omitempty"`
	StudentCount    int      `json:"studentCount,omitempty"`
	FacultyCount    int      `json:"facultyCount,omitempty"`
	Programs        []string `json:"programs,omitempty"`
}

func (UniversityProfile) profileRole() auth.Role { return auth.RoleUniversity }
