package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"linkstash/model"
	"linkstash/repository"
	"linkstash/services"
	"linkstash/utils"
)

// UserService covers the minimal account surface the stores need for
// ownership scoping: signup and credential checks.
type UserService struct {
	UserRepo repository.UserRepository
}

func (svc *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, model.NewValidationError("email and password are required")
	}

	existing, err := svc.UserRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, model.NewConflictError(0, "user already exists")
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.GenerateID(),
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}
	if err := svc.UserRepo.InsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user when the credentials check out,
// NotFoundError otherwise. The same error covers unknown email and
// wrong password so neither case leaks which one failed.
func (svc *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, model.NewValidationError("email and password are required")
	}

	user, err := svc.UserRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.NewNotFoundError("invalid credentials")
	}

	match, err := services.VerifyPassword(user.Password, password)
	if err != nil || !match {
		return nil, model.NewNotFoundError("invalid credentials")
	}
	return user, nil
}
