package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// Claims содержимое токена доступа
type Claims struct {
	Role  string `json:"role,omitempty"`
	Admin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier проверяет токены HS256, выпущенные внешним сервисом авторизации
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier создает верификатор; пустой issuer не проверяется
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Verify проверяет подпись и срок действия токена и возвращает пользователя
func (v *JWTVerifier) Verify(_ context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, ErrExpiredToken
		}
		return domain.Principal{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return domain.Principal{}, ErrInvalidToken
	}

	return principalFromClaims(claims.Subject, claims.Role, claims.Admin), nil
}

// Issue выпускает токен для пользователя (локальная разработка и тесты)
func (v *JWTVerifier) Issue(principal domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:  principal.Role,
		Admin: principal.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func principalFromClaims(id, role string, admin bool) domain.Principal {
	return domain.Principal{
		ID:      id,
		Role:    role,
		IsAdmin: admin || role == domain.RoleAdmin,
	}
}
