// Package store содержит коллекцию ссылок сессии в памяти.
package store

import (
	"errors"
	"sync"

	"github.com/tempizhere/linkdesk/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateCode возвращается при попытке вставить ссылку с уже занятым кодом.
	// Это дефект вызывающего кода, а не пользовательская ошибка.
	ErrDuplicateCode = errors.New("duplicate short code")
)

// Store хранит коллекцию ссылок одного пользователя на время сессии.
// Порядок ссылок повторяет порядок списка сервиса, новые ссылки добавляются в конец:
// он служит базовым порядком для стабильной сортировки.
// Store не выполняет сетевых вызовов: им управляют координатор и начальная загрузка.
type Store struct {
	mu      sync.RWMutex
	links   []models.Link
	index   map[string]int
	version uint64
	loading bool
	lastErr error
	logger  *zap.Logger
}

// NewStore создаёт пустой Store
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		index:  make(map[string]int),
		logger: logger,
	}
}

// ReplaceAll заменяет коллекцию результатом свежей загрузки и сбрасывает последнюю ошибку.
// Дубликат кода в данных сервиса — нарушение инварианта: коллекция остаётся прежней.
func (s *Store) ReplaceAll(links []models.Link) error {
	index := make(map[string]int, len(links))
	for i, link := range links {
		if _, exists := index[link.ShortCode]; exists {
			s.logger.Error("duplicate short code in service response",
				zap.String("short_code", link.ShortCode),
			)
			return ErrDuplicateCode
		}
		index[link.ShortCode] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append([]models.Link(nil), links...)
	s.index = index
	s.lastErr = nil
	s.version++
	return nil
}

// ApplyCreated добавляет новую ссылку в конец коллекции
func (s *Store) ApplyCreated(link models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[link.ShortCode]; exists {
		s.logger.Error("duplicate insert into collection",
			zap.String("short_code", link.ShortCode),
		)
		return ErrDuplicateCode
	}
	s.index[link.ShortCode] = len(s.links)
	s.links = append(s.links, link)
	s.version++
	return nil
}

// ApplyUpdated заменяет оригинальный URL ссылки.
// Отсутствующий код — безопасный no-op: запоздавший ответ ничего не ломает.
func (s *Store) ApplyUpdated(shortCode, newURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, exists := s.index[shortCode]
	if !exists {
		return false
	}
	s.links[i].OriginalURL = newURL
	s.version++
	return true
}

// ApplyRemoved удаляет ссылку из коллекции, no-op для отсутствующего кода
func (s *Store) ApplyRemoved(shortCode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, exists := s.index[shortCode]
	if !exists {
		return false
	}
	s.links = append(s.links[:i], s.links[i+1:]...)
	delete(s.index, shortCode)
	for j := i; j < len(s.links); j++ {
		s.index[s.links[j].ShortCode] = j
	}
	s.version++
	return true
}

// Snapshot возвращает копию коллекции и её версию.
// Версия растёт на каждой мутации и служит ключом мемоизации производных представлений.
func (s *Store) Snapshot() ([]models.Link, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	links := append([]models.Link(nil), s.links...)
	return links, s.version
}

// Get возвращает ссылку по коду
func (s *Store) Get(shortCode string) (models.Link, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, exists := s.index[shortCode]
	if !exists {
		return models.Link{}, false
	}
	return s.links[i], true
}

// Len возвращает размер коллекции
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}

// SetLoading выставляет флаг выполняющейся загрузки
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Loading сообщает, выполняется ли загрузка
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError запоминает последнюю ошибку загрузки или мутации
func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// LastError возвращает последнюю ошибку, nil — если её не было или она сброшена
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Clear очищает коллекцию при завершении сессии
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = nil
	s.index = make(map[string]int)
	s.lastErr = nil
	s.loading = false
	s.version++
}
