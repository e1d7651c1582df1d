package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/repos"
	"github.com/jobbook/jobbook-backend/internal/types"
)

const legalAge = 18

var ErrInvalidCredentials = errors.New("incorrect email or password")
var ErrAccountNotActive = errors.New("the account has not been approved yet")

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      types.StaffRole
	BirthDate *time.Time
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	ParseAccessToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	log       *logger.Logger
	users     repos.UserRepo
	notify    NotificationService
	format    *Formatter
	jwtSecret []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewAuthService(
	baseLog *logger.Logger,
	users repos.UserRepo,
	notify NotificationService,
	format *Formatter,
	jwtSecret string,
	accessTTL time.Duration,
	now func() time.Time,
) AuthService {
	return &authService{
		log:       baseLog.With("service", "AuthService"),
		users:     users,
		notify:    notify,
		format:    format,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
		now:       now,
	}
}

// Register creates an inactive account; an administrator approves it before
// the first login.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" {
		return nil, NewValidationError("email", "an email is required")
	}
	if input.FirstName == "" {
		return nil, NewValidationError("first_name", "a first name is required")
	}
	if input.LastName == "" {
		return nil, NewValidationError("last_name", "a last name is required")
	}
	if !input.Role.Valid() {
		return nil, NewValidationError("role", fmt.Sprintf("unknown staff role %q", input.Role))
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if input.BirthDate != nil {
		adultCutoff := dateOnly(s.now()).AddDate(-legalAge, 0, 0)
		if dateOnly(*input.BirthDate).After(adultCutoff) {
			return nil, NewValidationError("birth_date", birthDateFormError)
		}
	}

	exists, err := s.users.EmailExists(ctx, nil, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewValidationError("email", "the email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		Email:     input.Email,
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      input.Role,
		BirthDate: input.BirthDate,
		IsActive:  false,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if _, err := s.users.Create(ctx, nil, user); err != nil {
		return nil, err
	}

	msg := s.format.RegistrationSubmitted()
	if _, err := s.notify.Enqueue(ctx, types.EventRegistrationSubmitted, user.ID, msg, ""); err != nil {
		return user, fmt.Errorf("enqueue registration notification: %w", err)
	}

	// The administrators review every registration; tell each of them.
	admins, err := s.users.ListAdmins(ctx, nil)
	if err != nil {
		return user, fmt.Errorf("list admins: %w", err)
	}
	adminMsg := s.format.RegistrationPendingReview(user.FullName(), user.Email)
	for _, admin := range admins {
		if _, err := s.notify.Enqueue(ctx, types.EventRegistrationSubmitted, admin.ID, adminMsg, ""); err != nil {
			s.log.Warn("Admin registration notice skipped", "admin_id", admin.ID, "error", err)
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrAccountNotActive
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign access token: %w", err)
	}
	return token, user, nil
}

func (s *authService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid access token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token subject: %w", err)
	}
	return userID, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return NewValidationError("password", passwordTooShortError)
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return NewValidationError("password", passwordNumericError)
	}
	return nil
}
