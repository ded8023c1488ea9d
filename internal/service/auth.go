package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"driveu/internal/domain"
	"driveu/internal/repository"
	"driveu/internal/session"
)

const minPasswordLength = 6

// AuthService handles registration, login and profile lookup.
type AuthService struct {
	userRepo   repository.UserRepository
	driverRepo repository.DriverRepository
	accounts   repository.AccountRepository
	issuer     *session.Issuer
	bcryptCost int
	log        *slog.Logger
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	driverRepo repository.DriverRepository,
	accounts repository.AccountRepository,
	issuer *session.Issuer,
	bcryptCost int,
	log *slog.Logger,
) *AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		driverRepo: driverRepo,
		accounts:   accounts,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		log:        log,
		now:        time.Now,
	}
}

// DriverDetails is the profile a driver supplies at registration.
type DriverDetails struct {
	LicenseNumber   string
	ExperienceYears int
	Skills          []string
	Habits          []string
	HourlyRate      float64 // 0 uses domain.DefaultHourlyRate
}

// RegisterRequest contains the parameters for creating an account.
type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.Role
	City     string
	Location *domain.Location
	Car      *domain.CarDetails // required for owners
	Driver   *DriverDetails     // required for drivers
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token   string
	Session session.Session
	Profile Profile
}

// Profile is a user together with the driver profile, if any.
type Profile struct {
	User   *domain.User
	Driver *domain.Driver
}

// Register creates an account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := validateRegister(&req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
		City:         req.City,
		Location:     req.Location,
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	if req.Role == domain.RoleOwner {
		user.Car = req.Car
	}

	var driver *domain.Driver
	if req.Role == domain.RoleDriver {
		driver = newDriverProfile(user, req.Driver)
	}

	if err := s.accounts.CreateAccount(ctx, user, driver); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)

	token, sess, err := s.issuer.Issue(user.ID, user.Role, user.Name, false)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Session: sess, Profile: Profile{User: user, Driver: driver}}, nil
}

// Login verifies credentials. remember selects the long-lived token TTL.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.TouchLogin(ctx, user.ID, now); err != nil {
		s.log.WarnContext(ctx, "failed to record login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = now

	profile, err := s.profile(ctx, user)
	if err != nil {
		return nil, err
	}

	token, sess, err := s.issuer.Issue(user.ID, user.Role, user.Name, remember)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Session: sess, Profile: profile}, nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, sess session.Session) (Profile, error) {
	user, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return Profile{}, err
	}
	return s.profile(ctx, user)
}

func (s *AuthService) profile(ctx context.Context, user *domain.User) (Profile, error) {
	p := Profile{User: user}
	if user.Role != domain.RoleDriver {
		return p, nil
	}
	driver, err := s.driverRepo.GetByID(ctx, user.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return Profile{}, err
	}
	p.Driver = driver
	return p, nil
}

func newDriverProfile(user *domain.User, details *DriverDetails) *domain.Driver {
	rate := details.HourlyRate
	if rate == 0 {
		rate = domain.DefaultHourlyRate
	}
	d := &domain.Driver{
		ID:              user.ID,
		Name:            user.Name,
		Phone:           user.Phone,
		LicenseNumber:   details.LicenseNumber,
		ExperienceYears: details.ExperienceYears,
		Skills:          details.Skills,
		Habits:          details.Habits,
		Available:       true,
		HourlyRate:      rate,
	}
	if user.Location != nil {
		d.Location = *user.Location
	}
	return d
}

func validateRegister(req *RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" {
		return invalidArgument("name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return invalidArgument("invalid email %q", req.Email)
	}
	if len(req.Password) < minPasswordLength {
		return invalidArgument("password must be at least %d characters", minPasswordLength)
	}
	if req.Location != nil && !req.Location.Valid() {
		return ErrInvalidLocation
	}

	switch req.Role {
	case domain.RoleOwner:
		if req.Car == nil || strings.TrimSpace(req.Car.Model) == "" || strings.TrimSpace(req.Car.Number) == "" {
			return invalidArgument("car model and number are required for owners")
		}
	case domain.RoleDriver:
		if req.Driver == nil || strings.TrimSpace(req.Driver.LicenseNumber) == "" {
			return invalidArgument("license number is required for drivers")
		}
		if req.Driver.HourlyRate < 0 || req.Driver.ExperienceYears < 0 {
			return invalidArgument("hourly rate and experience must not be negative")
		}
	default:
		return invalidArgument("role must be %q or %q", domain.RoleOwner, domain.RoleDriver)
	}

	return nil
}
