package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("token invalide ou expiré")

type ResetClaims struct {
	UserID      uint   `json:"user_id"`
	Fingerprint string `json:"pwd"`
	jwt.RegisteredClaims
}

// ResetTokenService émet des tokens de reset autoporteurs : signés HS256,
// liés à l'empreinte du hash de mot de passe courant, aucune table de
// révocation côté serveur. La vérification est purement cryptographique.
type ResetTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewResetTokenService(secret string, ttl time.Duration) *ResetTokenService {
	return &ResetTokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *ResetTokenService) Issue(userID uint, passwordHash string) (string, error) {
	claims := ResetClaims{
		UserID:      userID,
		Fingerprint: HashFingerprint(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("can't sign the token: %w", err)
	}
	return signed, nil
}

// Verify rend l'id utilisateur et l'empreinte embarquée. Toute anomalie
// (signature, parsing, expiration) se traduit par ErrInvalidToken, jamais
// par un panic.
func (s *ResetTokenService) Verify(tokenStr string) (uint, string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))

	if err != nil {
		return 0, "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*ResetClaims)
	if !ok || !parsed.Valid || claims.UserID == 0 {
		return 0, "", ErrInvalidToken
	}
	return claims.UserID, claims.Fingerprint, nil
}
