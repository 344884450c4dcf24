package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"taskapp/internal/adapter/database/postgres"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select("id", "name", "email", "encrypted_password", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	return ur.scanOne(ctx, stmt, args)
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select("id", "name", "email", "encrypted_password", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	return ur.scanOne(ctx, stmt, args)
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("id", "name", "email", "encrypted_password", "created_at", "updated_at").
		Values(user.ID, user.Name, user.Email, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	_, err = ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrEmailTaken
		}

		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return ur.GetByID(ctx, user.ID)
}

func (ur *UserRepository) scanOne(ctx context.Context, stmt string, args []interface{}) (domain.User, error) {
	var user domain.User

	err := ur.db.QueryRow(ctx, stmt, args...).
		Scan(&user.ID, &user.Name, &user.Email, &user.EncryptedPassword, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
