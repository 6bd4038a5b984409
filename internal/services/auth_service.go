package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"sportstore/internal/models"
	"sportstore/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for registration and authentication.
type AuthService struct {
	userRepo       repositories.UserRepository
	jwtSecret      []byte
	adminSignupKey string
	tokenDurat     time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService. adminSignupKey may be empty, in
// which case no sign-up can create an admin account.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, adminSignupKey string) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		jwtSecret:      []byte(jwtSecret),
		adminSignupKey: adminSignupKey,
		tokenDurat:     24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	Email     string
	FirstName string
	Password  string
	AdminKey  string
}

// NormalizeEmail lowercases and trims an email address. All lookups and
// storage go through the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser validates the sign-up input, hashes the password and creates
// the account. The checks run in order and the first failure wins.
func (s *AuthService) RegisterUser(input RegisterInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	firstName := strings.TrimSpace(input.FirstName)

	if len(email) < 4 {
		return nil, NewValidationError("email must be greater than 3 characters")
	}
	if firstName == "" {
		return nil, NewValidationError("first name must be at least 1 character")
	}
	if len(input.Password) < 6 {
		return nil, NewValidationError("password must be at least 6 characters")
	}
	if existingUser, err := s.userRepo.GetByEmail(email); err == nil && existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     email,
		FirstName: firstName,
		Password:  string(hashedPassword),
		Admin:     s.isAdminSignup(input.AdminKey),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// isAdminSignup reports whether the provided key matches the configured
// admin sign-up key. An empty configured key never matches.
func (s *AuthService) isAdminSignup(adminKey string) bool {
	if s.adminSignupKey == "" {
		return false
	}
	return adminKey == s.adminSignupKey
}

// LoginUser authenticates a user by email and returns a JWT token and the
// user if successful. Any failure is reported as ErrInvalidCredentials.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken generates a signed JWT for the user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"admin":   user.Admin,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
