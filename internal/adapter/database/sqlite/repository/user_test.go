package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "taskapp/pkg/test"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	repo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	db := InitTestDB()

	s.repo = repository.NewUserRepository(db)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) newUser(email string) domain.User {
	now := time.Now()

	return domain.User{
		ID:                uuid.NewString(),
		Name:              "Test User",
		Email:             email,
		EncryptedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_Success() {
	user, err := s.repo.Create(context.Background(), s.newUser("test@example.com"))

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), user.ID)
	assert.Equal(s.T(), "Test User", user.Name)
	assert.Equal(s.T(), "test@example.com", user.Email)
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_DuplicateEmail() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, s.newUser("dup@example.com"))
	assert.NoError(s.T(), err)

	_, err = s.repo.Create(ctx, s.newUser("dup@example.com"))

	Expect(err).To(MatchError(domain.ErrEmailTaken))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByEmail_Success() {
	ctx := context.Background()

	created, _ := s.repo.Create(ctx, s.newUser("find@example.com"))

	found, err := s.repo.GetByEmail(ctx, "find@example.com")

	Expect(err).To(BeNil())
	Expect(found.ID).To(Equal(created.ID))
	Expect(found.EncryptedPassword).To(Not(BeEmpty()))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByEmail_NotFound() {
	_, err := s.repo.GetByEmail(context.Background(), "nobody@example.com")

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByID_NotFound() {
	_, err := s.repo.GetByID(context.Background(), uuid.NewString())

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}
