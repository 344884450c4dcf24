package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/token"
	"taskapp/internal/core/util"
)

type AuthService struct {
	repo port.UserRepository
}

func NewAuthService(repo port.UserRepository) *AuthService {
	return &AuthService{repo}
}

func (as *AuthService) Signup(ctx context.Context, req *request.SignUpRequest) (*domain.User, string, error) {
	oldUser, err := as.repo.GetByEmail(ctx, req.Email)

	if err == nil && oldUser.Email != "" {
		return nil, "", domain.ErrEmailTaken
	}

	encrypted, err := util.GenerateEncrypt(req.Password)

	if err != nil {
		return nil, "", err
	}

	now := time.Now()

	user := domain.User{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Email:             req.Email,
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	saved, err := as.repo.Create(ctx, user)

	if err != nil {
		slog.Error("Auth#Signup", "create_user", err)
		return nil, "", err
	}

	accessToken, err := token.CreateTokenForUser(saved.ID, saved.Email)

	if err != nil {
		return nil, "", err
	}

	return &saved, accessToken, nil
}

// Signin returns ErrInvalidCredentials for an unknown email and for a
// wrong password; the caller cannot tell which part failed.
func (as *AuthService) Signin(ctx context.Context, req *request.SignInRequest) (*domain.User, string, error) {
	user, err := as.repo.GetByEmail(ctx, req.Email)

	if err != nil {
		slog.Error("Auth#Signin", "get_by_email", err)
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	accessToken, err := token.CreateTokenForUser(user.ID, user.Email)

	if err != nil {
		return nil, "", err
	}

	return &user, accessToken, nil
}
