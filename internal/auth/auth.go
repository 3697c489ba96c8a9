// Package auth отвечает за получение bearer-токена для запросов к сервису сокращения ссылок.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrTokenExpired возвращается, если статический токен уже истёк
var ErrTokenExpired = errors.New("token expired")

// TokenSource выдаёт bearer-токен для одного запроса.
// Токен запрашивается заново на каждый вызов и не кэшируется между запросами.
type TokenSource interface {
	Token() (string, error)
}

// Claims описывает полезную нагрузку JWT
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// JWTSource выпускает свежий HS256-токен на каждый запрос
type JWTSource struct {
	secret []byte
	userID string
	ttl    time.Duration
}

// NewJWTSource создаёт JWTSource с заданным секретом, пользователем и временем жизни токена
func NewJWTSource(secret, userID string, ttl time.Duration) *JWTSource {
	return &JWTSource{
		secret: []byte(secret),
		userID: userID,
		ttl:    ttl,
	}
}

// Token подписывает и возвращает новый JWT
func (s *JWTSource) Token() (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
		UserID: s.userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// StaticSource возвращает заранее выданный токен, проверяя его срок действия перед каждым запросом.
// Подпись не проверяется: валидация токена остаётся за сервисом.
type StaticSource struct {
	token string
}

// NewStaticSource создаёт StaticSource с готовым токеном
func NewStaticSource(token string) *StaticSource {
	return &StaticSource{token: token}
}

// Token возвращает сохранённый токен или ErrTokenExpired, если срок его действия вышел
func (s *StaticSource) Token() (string, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.token, &claims); err != nil {
		// Непрозрачный токен, не JWT: отдаём как есть
		return s.token, nil
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return "", ErrTokenExpired
	}
	return s.token, nil
}
