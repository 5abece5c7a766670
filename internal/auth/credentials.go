package auth

import (
	"strings"

	"github.com/taskdeck/taskdeck/db"
	"github.com/taskdeck/taskdeck/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// NormalizeEmail lower-cases and trims an email for use as the login key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate verifies a credential pair against the user table. The single
// boolean failure signal deliberately does not distinguish an unknown email
// from a wrong password.
func Authenticate(email string, password string) (models.User, bool) {
	email = NormalizeEmail(email)

	if email == "" || password == "" {
		return models.User{}, false
	}

	var user models.User

	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, false
	}

	return user, true
}
