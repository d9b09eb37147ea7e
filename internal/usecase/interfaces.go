package usecase

import "context"

type FirebaseAuthClient interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	GetUserEmail(ctx context.Context, uid string) (string, error)
}
