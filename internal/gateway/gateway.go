// Package gateway реализует клиент REST-контракта сервиса сокращения ссылок.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tempizhere/linkdesk/internal/auth"
	"github.com/tempizhere/linkdesk/internal/models"
	"go.uber.org/zap"
)

// Kind классифицирует ошибку шлюза
type Kind int

const (
	// KindTransport — сетевая ошибка или ответ без структурированного тела
	KindTransport Kind = iota
	// KindInvalidInput — сервис отклонил данные запроса
	KindInvalidInput
	// KindConflict — запрошенный пользовательский код уже занят
	KindConflict
	// KindNotFound — код больше не существует
	KindNotFound
	// KindUnauthorized — токен отсутствует, истёк или отклонён
	KindUnauthorized
)

// String возвращает читаемое имя вида ошибки
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "transport"
	}
}

// Error описывает ошибку одной операции шлюза
type Error struct {
	Kind       Kind
	Op         string
	Message    string
	StatusCode int
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

// IsKind сообщает, относится ли ошибка к заданному виду
func IsKind(err error, kind Kind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == kind
}

// Gateway определяет пять операций REST-контракта сервиса
type Gateway interface {
	// ListLinks возвращает все ссылки пользователя
	ListLinks(ctx context.Context) ([]models.Link, error)
	// CreateLink создаёт ссылку; customCode пустой — код генерирует сервис
	CreateLink(ctx context.Context, url, customCode string) (models.Link, error)
	// UpdateLink заменяет оригинальный URL существующей ссылки
	UpdateLink(ctx context.Context, shortCode, newURL string) (models.Link, error)
	// DeleteLink удаляет ссылку; уже удалённая считается успехом
	DeleteLink(ctx context.Context, shortCode string) error
	// FetchStats возвращает одну ссылку со статистикой кликов
	FetchStats(ctx context.Context, shortCode string) (models.Link, error)
}

// HTTPGateway реализует Gateway поверх net/http.
// Повторных попыток нет: каждая операция — ровно один сетевой вызов,
// ограниченный таймаутом клиента.
type HTTPGateway struct {
	client  *http.Client
	baseURL string
	tokens  auth.TokenSource
	logger  *zap.Logger
}

// NewHTTPGateway создаёт HTTPGateway с таймаутом на каждый запрос
func NewHTTPGateway(baseURL string, tokens auth.TokenSource, timeout time.Duration, logger *zap.Logger) *HTTPGateway {
	return &HTTPGateway{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
	}
}

// ListLinks запрашивает GET /api/urls
func (g *HTTPGateway) ListLinks(ctx context.Context) ([]models.Link, error) {
	const op = "list"
	var links []models.Link
	if err := g.do(ctx, op, http.MethodGet, "/api/urls", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// CreateLink запрашивает POST /api/shorten
func (g *HTTPGateway) CreateLink(ctx context.Context, url, customCode string) (models.Link, error) {
	const op = "create"
	req := models.ShortenRequest{URL: url, CustomCode: customCode}
	var link models.Link
	if err := g.do(ctx, op, http.MethodPost, "/api/shorten", req, &link); err != nil {
		return models.Link{}, err
	}
	return link, nil
}

// UpdateLink запрашивает PUT /api/urls/{shortCode}
func (g *HTTPGateway) UpdateLink(ctx context.Context, shortCode, newURL string) (models.Link, error) {
	const op = "update"
	req := models.UpdateRequest{OriginalURL: newURL}
	var link models.Link
	if err := g.do(ctx, op, http.MethodPut, "/api/urls/"+shortCode, req, &link); err != nil {
		return models.Link{}, err
	}
	return link, nil
}

// DeleteLink запрашивает DELETE /api/urls/{shortCode}.
// Ответ 404 означает, что ссылка уже удалена: для вызывающего это успех,
// но факт фиксируется в логе отдельно.
func (g *HTTPGateway) DeleteLink(ctx context.Context, shortCode string) error {
	const op = "delete"
	err := g.do(ctx, op, http.MethodDelete, "/api/urls/"+shortCode, nil, nil)
	if err != nil && IsKind(err, KindNotFound) {
		g.logger.Warn("delete of already removed link",
			zap.String("short_code", shortCode),
		)
		return nil
	}
	return err
}

// FetchStats запрашивает GET /api/stats/{shortCode}
func (g *HTTPGateway) FetchStats(ctx context.Context, shortCode string) (models.Link, error) {
	const op = "stats"
	var link models.Link
	if err := g.do(ctx, op, http.MethodGet, "/api/stats/"+shortCode, nil, &link); err != nil {
		return models.Link{}, err
	}
	return link, nil
}

// do выполняет один HTTP-запрос с bearer-токеном и разбирает ответ в out
func (g *HTTPGateway) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	token, err := g.tokens.Token()
	if err != nil {
		return &Error{Kind: KindUnauthorized, Op: op, Message: err.Error()}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Op: op, Message: err.Error()}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("request failed", zap.String("op", op), zap.Error(err))
		return &Error{Kind: KindTransport, Op: op, Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return g.errorFromResponse(op, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindTransport, Op: op, Message: "malformed response body", StatusCode: resp.StatusCode}
		}
	}
	return nil
}

// errorFromResponse строит Error из не-2xx ответа.
// Отсутствие структурированного тела ошибки допустимо.
func (g *HTTPGateway) errorFromResponse(op string, resp *http.Response) *Error {
	var kind Kind
	switch resp.StatusCode {
	case http.StatusBadRequest:
		kind = KindInvalidInput
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindUnauthorized
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusConflict:
		kind = KindConflict
	default:
		kind = KindTransport
	}

	message := ""
	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		message = body.Error
	}

	g.logger.Warn("service returned error",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message),
	)
	return &Error{Kind: kind, Op: op, Message: message, StatusCode: resp.StatusCode}
}
