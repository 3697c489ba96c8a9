// Package testutil содержит имитацию удалённого сервиса сокращения ссылок для тестов.
package testutil

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/linkdesk/internal/models"
)

// FakeRemote хранит ссылки в памяти и обслуживает REST-контракт сервиса.
// Каждый запрос требует заголовок Authorization с bearer-токеном.
type FakeRemote struct {
	mu    sync.Mutex
	links map[string]models.Link
	order []string
	now   func() time.Time
}

// NewFakeRemote создаёт пустой FakeRemote
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		links: make(map[string]models.Link),
		now:   time.Now,
	}
}

// SetNow подменяет источник времени для детерминированных createdAt
func (f *FakeRemote) SetNow(now func() time.Time) {
	f.now = now
}

// Seed добавляет готовую ссылку в хранилище
func (f *FakeRemote) Seed(link models.Link) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.links[link.ShortCode]; !exists {
		f.order = append(f.order, link.ShortCode)
	}
	f.links[link.ShortCode] = link
}

// Len возвращает количество ссылок в хранилище
func (f *FakeRemote) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.links)
}

// Handler возвращает маршрутизатор с пятью операциями контракта
func (f *FakeRemote) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requireBearer)
	r.Get("/api/urls", f.handleList)
	r.Post("/api/shorten", f.handleShorten)
	r.Put("/api/urls/{shortCode}", f.handleUpdate)
	r.Delete("/api/urls/{shortCode}", f.handleDelete)
	r.Get("/api/stats/{shortCode}", f.handleStats)
	return r
}

// requireBearer отклоняет запросы без bearer-токена
func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") || strings.TrimPrefix(header, "Bearer ") == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleList возвращает все ссылки в порядке добавления
func (f *FakeRemote) handleList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	links := make([]models.Link, 0, len(f.order))
	for _, code := range f.order {
		links = append(links, f.links[code])
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, links)
}

// handleShorten создаёт новую ссылку
func (f *FakeRemote) handleShorten(w http.ResponseWriter, r *http.Request) {
	var req models.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	code := req.CustomCode
	if code != "" {
		if _, exists := f.links[code]; exists {
			writeError(w, http.StatusConflict, "custom code already taken")
			return
		}
	} else {
		for {
			code = generateCode()
			if _, exists := f.links[code]; !exists {
				break
			}
		}
	}

	link := models.Link{
		ShortCode:   code,
		ShortURL:    "http://" + r.Host + "/" + code,
		OriginalURL: req.URL,
		Clicks:      0,
		CreatedAt:   f.now(),
	}
	f.links[code] = link
	f.order = append(f.order, code)
	writeJSON(w, http.StatusCreated, link)
}

// handleUpdate заменяет оригинальный URL существующей ссылки
func (f *FakeRemote) handleUpdate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "shortCode")
	var req models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OriginalURL == "" {
		writeError(w, http.StatusBadRequest, "originalUrl is required")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	link, exists := f.links[code]
	if !exists {
		writeError(w, http.StatusNotFound, "URL not found")
		return
	}
	link.OriginalURL = req.OriginalURL
	f.links[code] = link
	writeJSON(w, http.StatusOK, link)
}

// handleDelete удаляет ссылку
func (f *FakeRemote) handleDelete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "shortCode")

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.links[code]; !exists {
		writeError(w, http.StatusNotFound, "URL not found")
		return
	}
	delete(f.links, code)
	for i, c := range f.order {
		if c == code {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStats возвращает одну ссылку со статистикой
func (f *FakeRemote) handleStats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "shortCode")

	f.mu.Lock()
	link, exists := f.links[code]
	f.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "URL not found")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// generateCode генерирует случайный код из 8 символов
func generateCode() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return base64.URLEncoding.EncodeToString(bytes)[:8]
}

// writeJSON сериализует ответ в JSON
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError пишет структурированное тело ошибки
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
