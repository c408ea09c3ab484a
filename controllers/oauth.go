package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kaintayo/food-rescue-api/db"
	"github.com/kaintayo/food-rescue-api/models"
	"github.com/kaintayo/food-rescue-api/redis"
	"github.com/kaintayo/food-rescue-api/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateTTL     = 10 * time.Minute
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// buildOAuthState ties a redis-backed nonce to the role chosen on the sign-up
// screen, so the role survives the round trip through the provider.
func buildOAuthState(nonce string, role models.Role) string {
	return nonce + ":" + string(role)
}

func parseOAuthState(state string) (string, models.Role, error) {
	nonce, role, found := strings.Cut(state, ":")
	if !found || nonce == "" {
		return "", "", errors.New("malformed OAuth state")
	}
	return nonce, models.Role(role), nil
}

// GoogleLogin starts the Google OAuth flow. There is no direct return value;
// the client is redirected to the consent screen and comes back through
// GoogleCallback.
func GoogleLogin(c *fiber.Ctx) error {
	role := models.Role(c.Query("role", string(models.RoleReceiver)))
	if !role.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Role must be provider or receiver",
		})
	}

	nonce := utils.GenerateTokenID()
	if err := redis.StoreOAuthNonce(nonce, oauthStateTTL); err != nil {
		log.Printf("Error storing OAuth nonce: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start OAuth flow",
		})
	}

	url := googleOAuthConfig().AuthCodeURL(buildOAuthState(nonce, role))
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

// GoogleCallback exchanges the authorization code, finds or creates the
// matching profile, and issues the same token pair as a password login. The
// role from the state only applies to accounts created here; an existing
// account keeps its role.
func GoogleCallback(c *fiber.Ctx) error {
	nonce, role, err := parseOAuthState(c.Query("state"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid OAuth state",
		})
	}

	if err := redis.ConsumeOAuthNonce(nonce); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unknown or expired OAuth state",
		})
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing authorization code",
		})
	}

	conf := googleOAuthConfig()
	token, err := conf.Exchange(context.Background(), code)
	if err != nil {
		log.Printf("OAuth code exchange failed: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Failed to exchange authorization code",
		})
	}

	profile, err := fetchGoogleProfile(conf, token)
	if err != nil {
		log.Printf("Error fetching Google profile: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to fetch profile from Google",
		})
	}
	if profile.Email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Google account has no email",
		})
	}

	var user models.User
	if db.DB.Where("email = ?", profile.Email).First(&user).RowsAffected == 0 {
		if !role.Valid() {
			role = models.RoleReceiver
		}
		user = models.User{
			DisplayName: profile.Name,
			Email:       profile.Email,
			Role:        role,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			log.Printf("Error creating user from OAuth profile: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create user: " + err.Error(),
			})
		}
	}

	accessToken, refreshToken, err := issueTokenPair(user)
	if err != nil {
		log.Printf("Error issuing token pair: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(sessionResponse(user, accessToken, refreshToken))
}

type googleProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func fetchGoogleProfile(conf *oauth2.Config, token *oauth2.Token) (googleProfile, error) {
	client := conf.Client(context.Background(), token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return googleProfile{}, err
	}
	return profile, nil
}
