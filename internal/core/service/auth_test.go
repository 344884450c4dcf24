package service_test

import (
	"context"
	"os"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "taskapp/pkg/test"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/service"
	"taskapp/internal/core/token"
)

type AuthServiceTestSuite struct {
	suite.Suite
	svc *service.AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	os.Setenv("JWT_SECRET", "test-secret")

	db := InitTestDB()
	s.svc = service.NewAuthService(repository.NewUserRepository(db))
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestService_Signup_ReturnsUserAndToken() {
	user, tok, err := s.svc.Signup(context.Background(), &request.SignUpRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})

	assert.NoError(s.T(), err)
	Expect(user.ID).To(Not(BeEmpty()))
	Expect(user.Email).To(Equal("alice@example.com"))
	Expect(tok).To(Not(BeEmpty()))

	claims, err := token.VerifyToken(tok)
	Expect(err).To(BeNil())
	Expect(claims["sub"]).To(Equal(user.ID))
	Expect(claims["email"]).To(Equal("alice@example.com"))
}

func (s *AuthServiceTestSuite) TestService_Signup_EmailTaken() {
	ctx := context.Background()

	_, _, err := s.svc.Signup(ctx, &request.SignUpRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	assert.NoError(s.T(), err)

	_, _, err = s.svc.Signup(ctx, &request.SignUpRequest{
		Email:    "alice@example.com",
		Password: "another123",
		Name:     "Alice Again",
	})

	Expect(err).To(MatchError(domain.ErrEmailTaken))
}

func (s *AuthServiceTestSuite) TestService_Signin_RoundTrip() {
	ctx := context.Background()

	created, _, err := s.svc.Signup(ctx, &request.SignUpRequest{
		Email:    "bob@example.com",
		Password: "secret123",
		Name:     "Bob",
	})
	assert.NoError(s.T(), err)

	user, tok, err := s.svc.Signin(ctx, &request.SignInRequest{
		Email:    "bob@example.com",
		Password: "secret123",
	})

	assert.NoError(s.T(), err)
	Expect(user.ID).To(Equal(created.ID))
	Expect(tok).To(Not(BeEmpty()))
}

func (s *AuthServiceTestSuite) TestService_Signin_WrongPassword() {
	ctx := context.Background()

	_, _, err := s.svc.Signup(ctx, &request.SignUpRequest{
		Email:    "carol@example.com",
		Password: "secret123",
		Name:     "Carol",
	})
	assert.NoError(s.T(), err)

	_, _, err = s.svc.Signin(ctx, &request.SignInRequest{
		Email:    "carol@example.com",
		Password: "wrongpass",
	})

	Expect(err).To(MatchError(domain.ErrInvalidCredentials))
}

func (s *AuthServiceTestSuite) TestService_Signin_UnknownEmail() {
	_, _, err := s.svc.Signin(context.Background(), &request.SignInRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})

	Expect(err).To(MatchError(domain.ErrInvalidCredentials))
}
