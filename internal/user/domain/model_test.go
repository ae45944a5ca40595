package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
)

func TestUser_Profile_StripsSecrets(t *testing.T) {
	user := User{
		ID:           "user-1",
		Username:     "marta",
		Email:        "marta@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Avatar:       &media.AssetHandle{URL: "https://cdn/a.jpg", DeleteKey: "secret-key"},
	}

	profile := user.Profile()
	assert.Equal(t, "marta", profile.Username)
	assert.Equal(t, "https://cdn/a.jpg", profile.AvatarURL)

	raw, err := json.Marshal(profile)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), user.PasswordHash)
	assert.NotContains(t, string(raw), "secret-key")
}

func TestUser_JSONNeverCarriesHashOrDeleteKey(t *testing.T) {
	user := User{
		ID:           "user-1",
		Username:     "marta",
		Email:        "marta@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Avatar:       &media.AssetHandle{URL: "https://cdn/a.jpg", DeleteKey: "secret-key"},
	}

	raw, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), user.PasswordHash)
	assert.NotContains(t, string(raw), "secret-key")
}

func TestUser_Validate(t *testing.T) {
	valid := User{
		Username:     "marta",
		Email:        "marta@example.com",
		PasswordHash: "hash",
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*User)
	}{
		{"EmptyUsername", func(u *User) { u.Username = "" }},
		{"EmptyEmail", func(u *User) { u.Email = "" }},
		{"MalformedEmail", func(u *User) { u.Email = "not an address" }},
		{"MissingHash", func(u *User) { u.PasswordHash = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := valid
			tc.mutate(&u)
			assert.Error(t, u.Validate())
		})
	}
}
