package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"interview-booking-api/internal/auth"
	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
	"interview-booking-api/internal/repositories"
	"interview-booking-api/internal/validators"
	"interview-booking-api/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	repo      repositories.UserRepository
	validator validators.UserValidator
	secret    string
	ttl       time.Duration
}

func NewAuthService(repo repositories.UserRepository, validator validators.UserValidator, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		validator: validator,
		secret:    secret,
		ttl:       ttl,
	}
}

// Register creates a user with a hashed password and signs a token for it.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *auth.TokenDetails, error) {
	if err := s.validator.ValidateRegister(req); err != nil {
		return nil, nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, nil, fmt.Errorf("email %s: %w", req.Email, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check email existence: %w", err)
	}

	start := time.Now()
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Tel:       req.Tel,
		Role:      req.Role,
		Password:  string(hashed),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.sign(user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Login checks the credentials and signs a token. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *auth.TokenDetails, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validator.ValidateLogin(email, password); err != nil {
		return nil, nil, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("unknown email %s: %w", email, apperrors.ErrBadCredentials)
		}
		return nil, nil, fmt.Errorf("failed to query user: %w", err)
	}

	start := time.Now()
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	metrics.PasswordHashDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, nil, fmt.Errorf("password mismatch for %s: %w", email, apperrors.ErrBadCredentials)
	}

	token, err := s.sign(user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Me loads the user behind an authenticated request.
func (s *AuthService) Me(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate validates a token and loads its user. Tokens whose user no
// longer exists are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ValidateJWT(token, s.secret)
	if err != nil {
		return nil, apperrors.Unauthorized(err.Error())
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("token carries an invalid user id")
	}
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Unauthorized("token user no longer exists")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) sign(user *models.User) (*auth.TokenDetails, error) {
	token, err := auth.GenerateJWT(user.ID.Hex(), user.Role, s.secret, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
