package server

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"bookclub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return respondErr(c, models.NewValidationError("Username, email, and password are required"))
	}
	if len(req.Password) < 8 {
		return respondErr(c, models.NewValidationError("Password must be at least 8 characters"))
	}

	if _, err := s.userRepo.GetByEmail(c.Context(), req.Email); err == nil {
		return respondErr(c, models.NewConflictError("An account with this email already exists"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondErr(c, models.NewInternalError(err))
	}
	if _, err := s.userRepo.GetByUsername(c.Context(), req.Username); err == nil {
		return respondErr(c, models.NewConflictError("This username is taken"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondErr(c, models.NewInternalError(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return respondErr(c, models.NewUnauthorizedError("Invalid credentials"))
	}
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return respondErr(c, models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondErr(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// generateToken creates a JWT token for the given user ID
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "bookclub-api",
		"aud": "bookclub-client",
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
