package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService { return &UserService{Users: users} }

type Registration struct {
	Email    string
	Name     string
	Password string
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.Users.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// Register creates a USER account. Roles are never taken from the request.
func (s *UserService) Register(ctx context.Context, in Registration) (*domain.User, error) {
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, invalid("invalid email")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return nil, invalid("name must be 1-40 characters")
	}
	if !validate.Password(in.Password) {
		return nil, invalid("password must be 8-64 characters with upper, lower, digit and symbol")
	}
	if err := s.emailFree(ctx, email, 0); err != nil {
		return nil, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Email: email, Name: name, Hash: string(h), Role: domain.RoleUser}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update changes a user's email and name.
func (s *UserService) Update(ctx context.Context, id int64, email, name string) (*domain.User, error) {
	email, ok := validate.Email(email)
	if !ok {
		return nil, invalid("invalid email")
	}
	name, ok = validate.Name(name)
	if !ok {
		return nil, invalid("name must be 1-40 characters")
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.emailFree(ctx, email, id); err != nil {
		return nil, err
	}
	u.Email, u.Name = email, name
	found, err := s.Users.Update(ctx, *u)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) emailFree(ctx context.Context, email string, self int64) error {
	other, err := s.Users.ByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != self {
		return invalid("email already registered")
	}
	return nil
}
