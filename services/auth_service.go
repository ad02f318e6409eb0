package services

import (
	"strings"

	"github.com/AhmedHajAhmed/Homi/models"
	"github.com/AhmedHajAhmed/Homi/storage"

	"golang.org/x/crypto/bcrypt"
)

// AuthService owns user records and credentials. Token issuance lives with
// the HTTP layer; this service only answers identity questions.
type AuthService struct {
	users storage.UserStore
}

func NewAuthService(users storage.UserStore) *AuthService {
	return &AuthService{users: users}
}

type SignupParams struct {
	Email    string
	Password string
	Name     string
	Role     string
	Bio      string
	Phone    string
}

func (s *AuthService) Signup(p SignupParams) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))

	existing, err := s.users.ByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Name:     p.Name,
		Role:     p.Role,
		Bio:      p.Bio,
		Phone:    p.Phone,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login resolves credentials to a user. Unknown email and wrong password
// fail identically.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.users.ByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Get(id uint) (*models.User, error) {
	user, err := s.users.ByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ProfileUpdate carries the mutable profile fields; nil means untouched.
type ProfileUpdate struct {
	Name  *string
	Bio   *string
	Phone *string
}

func (s *AuthService) UpdateProfile(id uint, upd ProfileUpdate) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}
