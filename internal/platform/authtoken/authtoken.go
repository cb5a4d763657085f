package authtoken

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/outreach-backend/internal/platform/ctxutil"
)

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier resolves bearer tokens issued by the identity layer.
type Verifier interface {
	Issue(userID uuid.UUID, email string, ttl time.Duration) (string, error)
	Parse(tokenString string) (*ctxutil.RequestData, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type verifier struct {
	secret []byte
}

func New(secret string) (Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("missing JWT_SECRET_KEY")
	}
	return &verifier{secret: []byte(secret)}, nil
}

func (v *verifier) Issue(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := time.Now()
	claims := Claims{
		Email: strings.TrimSpace(email),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func (v *verifier) Parse(tokenString string) (*ctxutil.RequestData, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("empty token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	return &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Email:       claims.Email,
	}, nil
}

func (v *verifier) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	ctx = ctxutil.Default(ctx)
	rd, err := v.Parse(tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}
