package models

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrInvalidURL возвращается, если URL не парсится или имеет схему, отличную от http/https
	ErrInvalidURL = errors.New("invalid URL")
	// ErrInvalidCode возвращается, если пользовательский код содержит недопустимые символы
	ErrInvalidCode = errors.New("invalid custom code")
)

// codePattern описывает допустимые символы пользовательского кода
var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Link описывает одну сокращённую ссылку пользователя.
// ShortCode назначается сервисом и неизменяем, Clicks увеличивает только сервис.
type Link struct {
	ShortCode   string    `json:"shortCode"`
	ShortURL    string    `json:"shortUrl,omitempty"`
	OriginalURL string    `json:"originalUrl"`
	Clicks      int       `json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ShortenRequest описывает тело запроса на создание ссылки.
// CustomCode опускается в JSON, если пользователь не задал свой код.
type ShortenRequest struct {
	URL        string `json:"url"`
	CustomCode string `json:"customCode,omitempty"`
}

// UpdateRequest описывает тело запроса на изменение оригинального URL
type UpdateRequest struct {
	OriginalURL string `json:"originalUrl"`
}

// ErrorResponse описывает структурированное тело ошибки сервиса
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateInput содержит проверенные данные для создания ссылки
type CreateInput struct {
	URL        string
	CustomCode string
}

// ValidateCreate проверяет данные перед созданием ссылки.
// Пустой customCode означает автогенерацию кода на стороне сервиса.
func ValidateCreate(rawURL, customCode string) (CreateInput, error) {
	u, err := ValidateEdit(rawURL)
	if err != nil {
		return CreateInput{}, err
	}
	code := strings.TrimSpace(customCode)
	if code != "" && !codePattern.MatchString(code) {
		return CreateInput{}, ErrInvalidCode
	}
	return CreateInput{URL: u, CustomCode: code}, nil
}

// ValidateEdit проверяет новый оригинальный URL перед изменением ссылки.
// Валидация клиентская и предварительная: источником истины остаётся сервис.
func ValidateEdit(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}
	return trimmed, nil
}
