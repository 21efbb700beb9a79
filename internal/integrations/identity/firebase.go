package identity

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// FirebaseVerifier проверяет ID-токены Firebase Authentication
// Роль берется из custom claims "role" и "admin"
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier создает верификатор поверх клиента Firebase Auth
func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify проверяет токен и возвращает пользователя
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, ErrMissingToken
	}

	verified, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return domain.Principal{}, ErrExpiredToken
		}
		return domain.Principal{}, ErrInvalidToken
	}

	role, _ := verified.Claims["role"].(string)
	admin, _ := verified.Claims["admin"].(bool)

	return principalFromClaims(verified.UID, role, admin), nil
}
