package handlers

import (
	"errors"
	"net/http"

	"github.com/island-scholars/server/internal/api/problem"
	"github.com/island-scholars/server/internal/auth"
	"github.com/island-scholars/server/internal/domain/users"
)

type AuthHandler struct {
	Users *users.Service
	Env   string
}

func NewAuthHandler(service *users.Service, env string) *AuthHandler {
	return &AuthHandler{Users: service, Env: env}
}

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signinResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

// Signin accepts a username or email in the username field.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	result, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidCredentials):
			problem.Write(w, r, http.StatusUnauthorized, typeForbidden, "Invalid credentials", err, h.Env,
				problem.WithDetail("invalid username or password"))
		case errors.Is(err, users.ErrAccountDeactivated):
			problem.Write(w, r, http.StatusForbidden, typeForbidden, "Account deactivated", err, h.Env,
				problem.WithDetail("this account has been deactivated"))
		default:
			problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		}
		return
	}

	writeJSON(w, http.StatusOK, signinResponse{Token: result.Token, User: result.User})
}

type signupRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role" validate:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`

	// Student section
	University    string   `json:"university"`
	StudentNumber string   `json:"studentId"`
	YearOfStudy   int      `json:"yearOfStudy"`
	FieldOfStudy  string   `json:"fieldOfStudy"`
	Skills        []string `json:"skills"`

	// Organization section
	CompanyName        string   `json:"companyName"`
	Industry           string   `json:"industry"`
	CompanySize        string   `json:"companySize"`
	Description        string   `json:"description"`
	Website            string   `json:"website"`
	FoundedYear        int      `json:"foundedYear"`
	RegistrationNumber string   `json:"registrationNumber"`
	DesiredSkills      []string `json:"desiredSkills"`

	// University section
	UniversityName  string   `json:"universityName"`
	EstablishedYear int      `json:"establishedYear"`
	StudentCount    int      `json:"studentCount"`
	FacultyCount    int      `json:"facultyCount"`
	Programs        []string `json:"programs"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, h.Env, &req) {
		return
	}

	role, ok := auth.ParseRole(req.Role)
	if !ok {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", users.ErrUnknownRole, h.Env,
			problem.WithDetail("role must be one of STUDENT, ORGANIZATION, UNIVERSITY"))
		return
	}
	if role == auth.RoleAdmin {
		// Admin accounts come from the bootstrap, never from signup.
		problem.Write(w, r, http.StatusForbidden, typeForbidden, "Forbidden", nil, h.Env,
			problem.WithDetail("admin accounts cannot be self-registered"))
		return
	}

	created, err := h.Users.Register(r.Context(), users.RegisterParams{
		Username:           req.Username,
		Email:              req.Email,
		Password:           req.Password,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Role:               role,
		PhoneNumber:        req.PhoneNumber,
		Location:           req.Location,
		Bio:                req.Bio,
		University:         req.University,
		StudentNumber:      req.StudentNumber,
		YearOfStudy:        req.YearOfStudy,
		FieldOfStudy:       req.FieldOfStudy,
		Skills:             req.Skills,
		CompanyName:        req.CompanyName,
		Industry:           req.Industry,
		CompanySize:        req.CompanySize,
		Description:        req.Description,
		Website:            req.Website,
		FoundedYear:        req.FoundedYear,
		RegistrationNumber: req.RegistrationNumber,
		DesiredSkills:      req.DesiredSkills,
		UniversityName:     req.UniversityName,
		EstablishedYear:    req.EstablishedYear,
		StudentCount:       req.StudentCount,
		FacultyCount:       req.FacultyCount,
		Programs:           req.Programs,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUsernameTaken), errors.Is(err, users.ErrEmailTaken):
			problem.Write(w, r, http.StatusConflict, typeConflict, "Conflict", err, h.Env,
				problem.WithDetail(err.Error()))
		case errors.Is(err, users.ErrUnknownRole):
			problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", err, h.Env)
		default:
			problem.Write(w, r, http.StatusInternalServerError, typeServer, "Server error", err, h.Env)
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
