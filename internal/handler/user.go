package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"driveu/internal/domain"
	"driveu/internal/service"
)

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// CarDetailsPayload describes an owner's car.
type CarDetailsPayload struct {
	Model  string `json:"model"`
	Number string `json:"number"`
	Color  string `json:"color,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// DriverDetailsPayload is the driver-specific part of registration.
type DriverDetailsPayload struct {
	LicenseNumber string   `json:"license_number"`
	Experience    int      `json:"experience"`
	Skills        []string `json:"skills"`
	Habits        []string `json:"habits"`
	HourlyRate    float64  `json:"hourly_rate"`
}

// RegisterRequest is the HTTP request body for registration.
type RegisterRequest struct {
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	Password      string                `json:"password"`
	UserType      string                `json:"user_type"`
	City          string                `json:"city"`
	Location      *LocationPayload      `json:"location"`
	CarDetails    *CarDetailsPayload    `json:"car_details"`
	DriverDetails *DriverDetailsPayload `json:"driver_details"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	UserType    string       `json:"user_type"`
	UserName    string       `json:"user_name"`
	UserEmail   string       `json:"user_email"`
	User        UserResponse `json:"user"`
}

// UserResponse is the HTTP response for account data.
type UserResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	UserType    string             `json:"user_type"`
	City        string             `json:"city,omitempty"`
	Location    *LocationPayload   `json:"location,omitempty"`
	CarDetails  *CarDetailsPayload `json:"car_details,omitempty"`
	Driver      *DriverResponse    `json:"driver_profile,omitempty"`
	CreatedAt   *time.Time         `json:"created_at,omitempty"`
	LastLoginAt *time.Time         `json:"last_login_at,omitempty"`
}

func newUserResponse(p service.Profile) UserResponse {
	u := p.User
	resp := UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		UserType:    string(u.Role),
		City:        u.City,
		Location:    newLocationPayloadPtr(u.Location),
		CreatedAt:   timePtr(u.CreatedAt),
		LastLoginAt: timePtr(u.LastLoginAt),
	}
	if u.Car != nil {
		resp.CarDetails = &CarDetailsPayload{Model: u.Car.Model, Number: u.Car.Number, Color: u.Car.Color, Year: u.Car.Year}
	}
	if p.Driver != nil {
		d := newDriverResponse(*p.Driver, nil)
		resp.Driver = &d
	}
	return resp
}

func newTokenResponse(res *service.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: res.Token,
		TokenType:   "bearer",
		ExpiresAt:   res.Session.ExpiresAt,
		UserType:    string(res.Session.Role),
		UserName:    res.Profile.User.Name,
		UserEmail:   res.Profile.User.Email,
		User:        newUserResponse(res.Profile),
	}
}

// Register handles POST /v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	loc, ok := optionalLocation(req.Location)
	if !ok {
		respondError(c, service.ErrInvalidLocation)
		return
	}

	in := service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     domain.Role(req.UserType),
		City:     req.City,
		Location: loc,
	}
	if req.CarDetails != nil {
		in.Car = &domain.CarDetails{
			Model:  req.CarDetails.Model,
			Number: req.CarDetails.Number,
			Color:  req.CarDetails.Color,
			Year:   req.CarDetails.Year,
		}
	}
	if req.DriverDetails != nil {
		in.Driver = &service.DriverDetails{
			LicenseNumber:   req.DriverDetails.LicenseNumber,
			ExperienceYears: req.DriverDetails.Experience,
			Skills:          req.DriverDetails.Skills,
			Habits:          req.DriverDetails.Habits,
			HourlyRate:      req.DriverDetails.HourlyRate,
		}
	}

	res, err := h.authService.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newTokenResponse(res))
}

// Login handles POST /v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newTokenResponse(res))
}

// Me handles GET /v1/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	profile, err := h.authService.Me(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newUserResponse(profile))
}

// Logout handles POST /v1/auth/logout. Tokens are stateless, so the client
// simply discards its copy.
func (h *UserHandler) Logout(c *gin.Context) {
	respondJSON(c, http.StatusOK, gin.H{"message": "logged out"})
}
