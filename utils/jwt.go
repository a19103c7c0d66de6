package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 24 * time.Hour

type SessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionManager gère les tokens de session. Le JWT prouve la signature,
// le miroir Redis permet la révocation immédiate au logout — sans lui un
// token signé resterait valable jusqu'à expiration.
type SessionManager struct {
	secret []byte
	kv     KV
}

func NewSessionManager(secret string, kv KV) *SessionManager {
	return &SessionManager{secret: []byte(secret), kv: kv}
}

func (s *SessionManager) Issue(userID uint) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("can't sign the token: %w", err)
	}

	if err := s.kv.Set("access_token:"+signed, strconv.FormatUint(uint64(userID), 10), sessionTTL); err != nil {
		return "", fmt.Errorf("can't save the token: %w", err)
	}
	return signed, nil
}

func (s *SessionManager) Verify(tokenStr string) (uint, error) {
	exists, err := s.kv.Exists("access_token:" + tokenStr)
	if err != nil {
		return 0, fmt.Errorf("failed to check token existence: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("token not found")
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return 0, err
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.UserID == 0 {
		return 0, fmt.Errorf("invalid token")
	}
	return claims.UserID, nil
}

func (s *SessionManager) Revoke(tokenStr string) error {
	return s.kv.Del("access_token:" + tokenStr)
}
