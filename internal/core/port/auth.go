package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignUpRequest) (*domain.User, string, error)
	Signin(ctx context.Context, req *request.SignInRequest) (*domain.User, string, error)
}
