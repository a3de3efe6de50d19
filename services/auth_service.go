package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"devclub.community/configs"
	"devclub.community/models"
	"devclub.community/repositories"
)

// AuthServiceError is a typed service-level error.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrEmailTaken         AuthServiceError = "an account with this email already exists"
	ErrInvalidCredentials AuthServiceError = "invalid email or password"
	ErrUserNotFound       AuthServiceError = "user not found"
)

// Claims is the JWT payload issued on login.
type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ProfileInput carries the member-editable profile fields.
type ProfileInput struct {
	Name     string
	Avatar   string
	Bio      string
	Skills   []string
	GitHub   string
	LinkedIn string
	Website  string
}

// IAuthService covers signup, login and profile management.
type IAuthService interface {
	Signup(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileInput) (*models.User, error)
	ParseToken(token string) (*Claims, error)
}

// AuthService implements IAuthService.
type AuthService struct {
	repo      repositories.IUserRepository
	secret    []byte
	expiresIn time.Duration
}

// NewAuthService wires the service on the shared connection.
func NewAuthService(cfg *configs.AppConfig) IAuthService {
	return &AuthService{
		repo:      repositories.NewUserRepository(),
		secret:    []byte(cfg.JWTSecret),
		expiresIn: time.Duration(cfg.JWTExpireMin) * time.Minute,
	}
}

// NewAuthServiceDB wires the service on an explicit handle; used by tests.
func NewAuthServiceDB(db *gorm.DB, secret string, expiresIn time.Duration) *AuthService {
	return &AuthService{
		repo:      repositories.NewUserRepositoryDB(db),
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Signup registers a member and returns a fresh token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	user := &models.User{
		Name:     name,
		Email:    models.NormalizeEmail(email),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, "", err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password report the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.CheckPassword(password) {
		return nil, "", ErrInvalidCredentials
	}
	now := time.Now().UTC()
	if err := s.repo.TouchLastLogin(ctx, user.ID); err == nil {
		user.LastLoginAt = &now
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile returns the member's own record.
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the member-editable fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, input ProfileInput) (*models.User, error) {
	data := map[string]interface{}{}
	if input.Name != "" {
		data["name"] = input.Name
	}
	if input.Avatar != "" {
		data["avatar"] = input.Avatar
	}
	if input.Bio != "" {
		data["bio"] = input.Bio
	}
	if len(input.Skills) > 0 {
		data["skills"] = pq.StringArray(input.Skills)
	}
	if input.GitHub != "" {
		data["git_hub"] = input.GitHub
	}
	if input.LinkedIn != "" {
		data["linked_in"] = input.LinkedIn
	}
	if input.Website != "" {
		data["website"] = input.Website
	}
	if len(data) > 0 {
		if err := s.repo.Update(ctx, userID, data); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}
	return s.GetProfile(ctx, userID)
}

var _ IAuthService = (*AuthService)(nil)
