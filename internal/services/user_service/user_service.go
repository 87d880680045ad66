package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wslider/internal/domain/models"
	"wslider/internal/lib/jwt"
	"wslider/internal/lib/logger/sl"
	"wslider/internal/repository"
	"wslider/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	log         *slog.Logger
	repo        repository.UserRepository
	tokenTTL    time.Duration
	tokenSecret string
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, tokenTTL time.Duration, tokenSecret string) *UserService {
	return &UserService{
		log:         log,
		repo:        repo,
		tokenTTL:    tokenTTL,
		tokenSecret: tokenSecret,
	}
}

// Register создает пользователя с bcrypt-хешем пароля.
func (s *UserService) Register(ctx context.Context, name, email, password string, isAdmin bool) (uuid.UUID, error) {
	const op = "user_service.Register"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.SaveUser(ctx, models.User{
		Name:     name,
		Email:    email,
		Password: passHash,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		log.Error("failed to save user", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", id.String()))

	return id, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (models.TokenPair, error) {
	const op = "user_service.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("username", email),
	)

	log.Info("attempting to login user")

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))

			return models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))

		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, expiresAt, err := jwt.NewToken(user, s.tokenTTL, s.tokenSecret)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully")

	return models.TokenPair{
		UserID:      user.ID.String(),
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

// Authenticate проверяет bearer-токен и возвращает ID пользователя.
func (s *UserService) Authenticate(token string) (uuid.UUID, error) {
	const op = "user_service.Authenticate"

	id, err := jwt.ParseToken(token, s.tokenSecret)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "user_service.IsAdmin"

	isAdmin, err := s.repo.IsAdmin(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return false, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isAdmin, nil
}

// CanEditPost сообщает, может ли пользователь редактировать запись. Админ
// редактирует все, автор только свои записи.
func (s *UserService) CanEditPost(ctx context.Context, userID uuid.UUID, post models.Post) (bool, error) {
	const op = "user_service.CanEditPost"

	if userID == uuid.Nil {
		return false, nil
	}
	if post.AuthorID == userID {
		return true, nil
	}

	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		s.log.Error("failed to check permissions", slog.String("op", op), sl.Err(err))

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isAdmin, nil
}
