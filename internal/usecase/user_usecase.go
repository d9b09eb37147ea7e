package usecase

import (
	"context"
	"strings"

	"freestuff/internal/domain/entity"
	"freestuff/internal/domain/repository"
	"freestuff/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

// GetProfile returns the stored profile, creating a stub from the auth
// record on first access. The mobile client signs users up through Firebase
// directly, so the profile document may not exist yet.
func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	email, authErr := uc.firebaseAuth.GetUserEmail(ctx, uid)
	if authErr != nil {
		return nil, err
	}

	user = &entity.User{
		UID:   uid,
		Name:  "User",
		Email: email,
		City:  "Unknown",
	}
	if err := uc.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

type UpdateProfileInput struct {
	Name string
	City string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.Validation("name must not be empty")
	}

	user, err := uc.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.City = input.City
	if err := uc.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
