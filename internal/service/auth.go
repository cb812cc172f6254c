package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"yatube/internal/config"
	"yatube/internal/model"
)

// AuthService issues the signed session tokens stored in the session cookie.
type AuthService struct {
	config *config.Config
	now    func() time.Time
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{config: cfg, now: time.Now}
}

// IssueToken signs an HS256 token identifying user, valid for SessionMaxAge.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.SessionMaxAge()).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a token issued by IssueToken and returns the session
// it carries. Expired, tampered or malformed tokens yield ErrInvalidToken.
func (s *AuthService) ParseToken(tokenString string) (*model.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, model.ErrInvalidToken
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, model.ErrInvalidToken
	}
	username, _ := claims["username"].(string)

	return &model.Session{UserID: int64(userIDFloat), Username: username}, nil
}

// SessionMaxAge is how long an issued token (and its cookie) stays valid.
func (s *AuthService) SessionMaxAge() time.Duration {
	return time.Duration(s.config.SessionMaxAge) * time.Second
}
