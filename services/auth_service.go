package services

import (
	"errors"
	"strings"

	"nutrilog/models"
	"nutrilog/utils"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthService(db *gorm.DB, secret []byte) *AuthService {
	return &AuthService{db: db, secret: secret}
}

func (s *AuthService) RegisterUser(email, password, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	var n int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: strings.TrimSpace(fullName),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser returns a signed token carrying the user id.
func (s *AuthService) AuthenticateUser(email, password string) (string, error) {
	var user models.User
	result := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user)
	if result.Error != nil {
		return "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(user.ID, user.Email, s.secret)
}

func (s *AuthService) FindUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := s.db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email)))
	if result.Error != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *AuthService) GetUserProfile(id string) (map[string]interface{}, error) {
	user, err := s.FindUserByID(id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":         user.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
		"created_at": user.CreatedAt,
	}, nil
}
