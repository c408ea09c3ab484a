package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kaintayo/food-rescue-api/db"
	"github.com/kaintayo/food-rescue-api/middleware"
	"github.com/kaintayo/food-rescue-api/models"
	"github.com/kaintayo/food-rescue-api/redis"
	"github.com/kaintayo/food-rescue-api/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Landing paths by role, mirrored by the LandingPath derivation below.
const (
	WelcomePath          = "/welcome"
	ProviderListingsPath = "/provider/listings"
	ReceiverBrowsePath   = "/receiver/browse"
	RootPath             = "/"
)

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	DisplayName     string      `json:"display_name"`
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirm_password"`
	Role            models.Role `json:"role"`
}

// Validate runs the pre-remote checks: required fields, password rules and a
// known role. Nothing touches the database until this passes.
func (in *RegisterInput) Validate() error {
	if in.Email == "" || in.Password == "" {
		return errors.New("Missing required fields")
	}
	if in.Password != in.ConfirmPassword {
		return errors.New("Passwords do not match.")
	}
	if len(in.Password) < 6 {
		return errors.New("Password should be at least 6 characters.")
	}
	if !in.Role.Valid() {
		return errors.New("Role must be provider or receiver")
	}
	return nil
}

// Register handles user sign-up and creates the profile row with its role.
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := input.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Check if user already exists
	var existingUser models.User
	if db.DB.Where("email = ?", input.Email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User with this email already exists",
		})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		DisplayName: input.DisplayName,
		Email:       input.Email,
		Password:    string(hashedPassword),
		Role:        input.Role,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user: " + err.Error(),
		})
	}

	// Remove password from response
	user.Password = ""

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Find user
	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	// Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	tokenString, refreshTokenString, err := issueTokenPair(user)
	if err != nil {
		log.Printf("Error issuing token pair: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(sessionResponse(user, tokenString, refreshTokenString))
}

// issueTokenPair creates an access token and a redis-backed refresh token for
// a user. Both password and OAuth logins end in the same pair.
func issueTokenPair(user models.User) (string, string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(middleware.Secret())
	if err != nil {
		return "", "", err
	}

	// Refresh token carries a jti recorded in redis so logout can revoke it
	tokenID := utils.GenerateTokenID()
	refreshClaims := jwt.MapClaims{
		"id":  user.ID,
		"jti": tokenID,
		"exp": time.Now().Add(refreshTokenTTL).Unix(),
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(middleware.Secret())
	if err != nil {
		return "", "", err
	}

	if err := redis.StoreRefreshToken(tokenID, user.ID, refreshTokenTTL); err != nil {
		return "", "", err
	}

	return tokenString, refreshTokenString, nil
}

func sessionResponse(user models.User, token, refreshToken string) fiber.Map {
	return fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user": fiber.Map{
			"id":           user.ID,
			"display_name": user.DisplayName,
			"email":        user.Email,
			"role":         user.Role,
		},
	}
}

// GetUserProfile returns the current user's profile
func GetUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var userProfile models.User
	if err := db.DB.First(&userProfile, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	// Don't send password
	userProfile.Password = ""

	return c.JSON(userProfile)
}

// Logout revokes the caller's refresh token. Access tokens stay stateless and
// simply age out.
func Logout(c *fiber.Ctx) error {
	type LogoutRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(LogoutRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return middleware.Secret(), nil
	})
	if err == nil && token.Valid {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if tokenID, ok := claims["jti"].(string); ok {
				if err := redis.RevokeRefreshToken(tokenID); err != nil {
					log.Printf("Error revoking refresh token: %v", err)
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return middleware.Secret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	tokenID, ok := claims["jti"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	// A revoked token is gone from redis even if its signature still checks out
	userID, err := redis.RefreshTokenUser(tokenID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Refresh token revoked or expired",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	newClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString(middleware.Secret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

// LandingPath derives where a client should land from its session state and
// role: guests go to the welcome screen, providers to their listings,
// receivers to browse, and anything else to the root.
func LandingPath(authenticated bool, role models.Role) string {
	if !authenticated {
		return WelcomePath
	}
	switch role {
	case models.RoleProvider:
		return ProviderListingsPath
	case models.RoleReceiver:
		return ReceiverBrowsePath
	default:
		return RootPath
	}
}

// Landing resolves the landing path for the caller. The token is optional:
// a missing or unparseable token means guest, and a profile-fetch failure
// degrades to the root path rather than an error.
func Landing(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(fiber.Map{"path": LandingPath(false, "")})
	}

	token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(token *jwt.Token) (interface{}, error) {
		return middleware.Secret(), nil
	})
	if err != nil || !token.Valid {
		return c.JSON(fiber.Map{"path": LandingPath(false, "")})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.JSON(fiber.Map{"path": LandingPath(false, "")})
	}

	idVal, ok := claims["id"].(float64)
	if !ok {
		return c.JSON(fiber.Map{"path": LandingPath(false, "")})
	}

	var user models.User
	if err := db.DB.First(&user, uint(idVal)).Error; err != nil {
		log.Printf("Error fetching profile for landing: %v", err)
		return c.JSON(fiber.Map{"path": LandingPath(true, "")})
	}

	return c.JSON(fiber.Map{"path": LandingPath(true, user.Role)})
}
