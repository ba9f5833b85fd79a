package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/auth"
	"github.com/quizlytics/quizlytics-api/internal/config"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("email, password and full_name are required")
	ErrInvalidReminder    = errors.New("invalid time format, use HH:MM")
)

var reminderPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

const sessionDuration = 30 * time.Minute

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*UserResponse, string, error)
	GoogleLogin(ctx context.Context, code string) (*UserResponse, string, error)
	GetByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context) ([]*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
	UpdateReminderTime(ctx context.Context, userID string, hhmm string) error
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	email := strings.TrimSpace(strings.ToLower(dto.Email))
	if email == "" || dto.Password == "" || strings.TrimSpace(dto.FullName) == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		log.WithError(err).Error("Failed to look up email")
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:       uuid.New(),
		Email:    email,
		FullName: strings.TrimSpace(dto.FullName),
		Password: string(hashed),
		Role:     RoleUser,
	}
	if err := s.repo.Create(u); err != nil {
		// A concurrent registration can slip past the lookup above and land
		// on the unique email index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return toResponse(u), nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*UserResponse, string, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByEmail(strings.TrimSpace(strings.ToLower(dto.Email)))
	if err != nil {
		log.WithError(err).Error("Failed to look up user")
		return nil, "", err
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID.String(), string(u.Role), sessionDuration)
	if err != nil {
		log.WithError(err).Error("Failed to issue session token")
		return nil, "", err
	}

	now := time.Now().UTC()
	u.LastVisited = &now
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Warn("Failed to update last_visited")
	}

	return toResponse(u), token, nil
}

func (s *userService) GoogleLogin(ctx context.Context, code string) (*UserResponse, string, error) {
	log := config.WithContext(ctx)

	profile, providerToken, err := auth.ExchangeGoogleCode(ctx, code)
	if err != nil {
		log.WithError(err).Error("Google code exchange failed")
		return nil, "", ErrInvalidCredentials
	}

	provider := "google"
	u, err := s.repo.FindByProvider(provider, profile.ID)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		u, err = s.repo.FindByEmail(strings.ToLower(profile.Email))
		if err != nil {
			return nil, "", err
		}
	}

	encrypted, err := config.Encrypt(providerToken.AccessToken)
	if err != nil {
		log.WithError(err).Warn("Failed to encrypt provider token, storing none")
	}

	if u == nil {
		u = &User{
			ID:       uuid.New(),
			Email:    strings.ToLower(profile.Email),
			FullName: profile.Name,
			Provider: &provider,
			Role:     RoleUser,
		}
		u.ProviderID = &profile.ID
		if encrypted != "" {
			u.ProviderToken = &encrypted
		}
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Failed to create user from Google profile")
			return nil, "", err
		}
	} else {
		u.Provider = &provider
		u.ProviderID = &profile.ID
		if encrypted != "" {
			u.ProviderToken = &encrypted
		}
	}

	token, err := auth.GenerateJWT(u.ID.String(), string(u.Role), sessionDuration)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	u.LastVisited = &now
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Warn("Failed to update user after Google login")
	}

	return toResponse(u), token, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*UserResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.repo.FindByID(parsed)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return toResponse(u), nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses, nil
}

// DeleteUser removes the user; attempts and scores follow via FK cascade.
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrUserNotFound
	}
	u, err := s.repo.FindByID(parsed)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	if err := s.repo.Delete(parsed); err != nil {
		log.WithError(err).Error("Failed to delete user")
		return err
	}
	log.WithField("user_id", id).Info("User deleted")
	return nil
}

func (s *userService) UpdateReminderTime(ctx context.Context, userID string, hhmm string) error {
	if !reminderPattern.MatchString(hhmm) {
		return ErrInvalidReminder
	}

	parsed, err := uuid.Parse(userID)
	if err != nil {
		return ErrUserNotFound
	}
	u, err := s.repo.FindByID(parsed)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	u.ReminderTime = &hhmm
	return s.repo.Update(u)
}
