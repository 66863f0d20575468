package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sweetshop/internal/auth"
	"sweetshop/internal/errors"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
)

const bcryptCost = 10

// minPasswordLen is the minimum accepted password length.
const minPasswordLen = 6

var validate = validator.New()

// AuthService handles registration, login and session tokens.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo         repository.UserRepository
	jwtService       *auth.JWTService
	allowAdminSignup bool
}

// NewAuthService creates a new authentication service. When allowAdminSignup
// is false, a requested ADMIN role at registration is ignored.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, allowAdminSignup bool) AuthService {
	return &authService{
		userRepo:         userRepo,
		jwtService:       jwtService,
		allowAdminSignup: allowAdminSignup,
	}
}

// Register creates a new user with a hashed password and returns a session
// token plus the created user.
func (s *authService) Register(ctx context.Context, name, email, password, role string) (string, *model.User, error) {
	var violations []string
	if name == "" {
		violations = append(violations, "Name is required")
	}
	if email == "" {
		violations = append(violations, "Email is required")
	} else if validate.Var(email, "email") != nil {
		violations = append(violations, "Please provide a valid email")
	}
	if password == "" {
		violations = append(violations, "Password is required")
	} else if len(password) < minPasswordLen {
		violations = append(violations, "Password must be at least 6 characters")
	}
	if len(violations) > 0 {
		return "", nil, errors.NewValidation(violations...)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	// The caller-supplied role is honored so a fresh deployment can seed its
	// first admin; the config flag turns this off once real admins exist.
	assignedRole := model.RoleUser
	if role == model.RoleAdmin && s.allowAdminSignup {
		assignedRole = model.RoleAdmin
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         assignedRole,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Login authenticates a user and returns a session token. Failures are
// reported uniformly so callers cannot tell which credential was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	var violations []string
	if email == "" {
		violations = append(violations, "Email is required")
	}
	if password == "" {
		violations = append(violations, "Password is required")
	}
	if len(violations) > 0 {
		return "", nil, errors.NewValidation(violations...)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}
