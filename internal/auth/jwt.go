package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin her kullanıcının puanı üzerinde işlem yapabilir
const RoleAdmin = "admin"

// ErrAuthDisabled secret tanımlı değilken token üretilmeye çalışıldı
var ErrAuthDisabled = errors.New("auth kapalı: JWT secret tanımlı değil")

// Claims JWT payload'ını temsil eder
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IsAdmin admin rolü var mı
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// TokenManager HS256 token üretir ve doğrular
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager secret boşsa nil döner (auth kapalı)
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if secret == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// GenerateToken kullanıcı için JWT token oluşturur
func (m *TokenManager) GenerateToken(userID int64, role string) (string, error) {
	if m == nil {
		return "", ErrAuthDisabled
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token oluşturulamadı: %w", err)
	}

	return tokenString, nil
}

// ValidateToken JWT token'ını doğrular ve claims'i döner
func (m *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	if m == nil {
		return nil, ErrAuthDisabled
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Signing method kontrolü
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("beklenmeyen signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token parse edilemedi: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("geçersiz token")
}
