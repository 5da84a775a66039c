package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// MemberIDKey is the context key for the authenticated member ID
	MemberIDKey ContextKey = "member_id"
	// MemberHandleKey is the context key for the member's display handle
	MemberHandleKey ContextKey = "member_handle"
)

// Claims represents the portal session token claims
type Claims struct {
	MemberID uuid.UUID `json:"member_id"`
	Handle   string    `json:"handle"`
	jwt.RegisteredClaims
}

// JWTService validates portal session tokens. Tokens are minted by the remote
// auth service with the shared secret; this service only needs to verify them.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateToken mints a session token. Kept for local development and tests;
// in production the auth service issues tokens.
func (s *JWTService) GenerateToken(memberID uuid.UUID, handle string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &Claims{
		MemberID: memberID,
		Handle:   handle,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "atlashaul",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a session token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Pin the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// JWTMiddleware creates a middleware that validates session tokens
func JWTMiddleware(jwtService *JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), MemberIDKey, claims.MemberID)
			ctx = context.WithValue(ctx, MemberHandleKey, claims.Handle)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetMemberIDFromContext extracts the member ID from the request context
func GetMemberIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	memberID, ok := ctx.Value(MemberIDKey).(uuid.UUID)
	return memberID, ok
}

// GetMemberHandleFromContext extracts the member handle from the request context
func GetMemberHandleFromContext(ctx context.Context) (string, bool) {
	handle, ok := ctx.Value(MemberHandleKey).(string)
	return handle, ok
}
