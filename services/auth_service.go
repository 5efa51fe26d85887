package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/kthiza/protein-tracking-app/config"
	"github.com/kthiza/protein-tracking-app/models"
	"github.com/kthiza/protein-tracking-app/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	ErrEmailTaken     = errors.New("username or email already exists")
	ErrNotVerified    = errors.New("email not verified")
	ErrBadToken       = errors.New("invalid verification token")
	ErrBadCredentials = errors.New("invalid username or password")
)

func RegisterUser(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(username) < 3 {
		return nil, errors.New("username must be at least 3 characters")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	if !emailPattern.MatchString(email) {
		return nil, errors.New("invalid email format")
	}

	var existing models.User
	err := config.DB.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:          username,
		Email:             email,
		Password:          hashed,
		VerificationToken: uuid.NewString(),
	}
	if err := config.DB.Create(user).Error; err != nil {
		return nil, err
	}

	if err := utils.SendVerificationEmail(email, username, user.VerificationToken); err != nil {
		// Registration stands; the user can ask for the mail again.
		return user, nil
	}
	return user, nil
}

func VerifyEmail(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrBadToken
	}
	var user models.User
	err := config.DB.Where("verification_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadToken
		}
		return nil, err
	}
	user.EmailVerified = true
	user.VerificationToken = ""
	if err := config.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func AuthenticateUser(username, password string) (string, *models.User, error) {
	var user models.User
	err := config.DB.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		return "", nil, ErrBadCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrBadCredentials
	}
	if !user.EmailVerified {
		return "", nil, ErrNotVerified
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
