package controllers

import (
	"testing"

	"github.com/kaintayo/food-rescue-api/models"
	"github.com/stretchr/testify/assert"
)

func TestLandingPath(t *testing.T) {
	cases := []struct {
		name          string
		authenticated bool
		role          models.Role
		want          string
	}{
		{"guest", false, "", WelcomePath},
		{"guest with stale role", false, models.RoleProvider, WelcomePath},
		{"provider", true, models.RoleProvider, ProviderListingsPath},
		{"receiver", true, models.RoleReceiver, ReceiverBrowsePath},
		{"missing profile", true, "", RootPath},
		{"unknown role", true, models.Role("admin"), RootPath},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LandingPath(tc.authenticated, tc.role))
		})
	}
}

func TestRegisterInputValidate(t *testing.T) {
	valid := RegisterInput{
		DisplayName:     "Corner Bakery",
		Email:           "bakery@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            models.RoleProvider,
	}
	assert.NoError(t, valid.Validate())

	short := valid
	short.Password = "abc"
	short.ConfirmPassword = "abc"
	assert.EqualError(t, short.Validate(), "Password should be at least 6 characters.")

	mismatch := valid
	mismatch.ConfirmPassword = "secret2"
	assert.EqualError(t, mismatch.Validate(), "Passwords do not match.")

	missing := valid
	missing.Email = ""
	assert.EqualError(t, missing.Validate(), "Missing required fields")

	badRole := valid
	badRole.Role = "admin"
	assert.Error(t, badRole.Validate())
}
