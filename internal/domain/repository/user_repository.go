package repository

import (
	"context"

	"freestuff/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
}
