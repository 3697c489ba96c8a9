package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tempizhere/linkdesk/internal/models"
	"go.uber.org/zap"
)

// makeLink создаёт ссылку для тестов
func makeLink(code string, clicks int) models.Link {
	return models.Link{
		ShortCode:   code,
		OriginalURL: "https://example.com/" + code,
		Clicks:      clicks,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_ReplaceAll(t *testing.T) {
	s := NewStore(zap.NewNop())

	// Тест 1: загрузка коллекции
	err := s.ReplaceAll([]models.Link{makeLink("abc", 0), makeLink("xyz", 5)})
	assert.NoError(t, err, "ReplaceAll should not return error")
	assert.Equal(t, 2, s.Len(), "Collection should contain two links")

	// Тест 2: порядок списка сохраняется
	links, version := s.Snapshot()
	assert.Equal(t, "abc", links[0].ShortCode, "List order should be preserved")
	assert.Equal(t, uint64(1), version, "Version should be incremented")

	// Тест 3: дубликат кода в ответе сервиса отклоняется, коллекция не меняется
	err = s.ReplaceAll([]models.Link{makeLink("dup", 0), makeLink("dup", 1)})
	assert.ErrorIs(t, err, ErrDuplicateCode, "Duplicate code should be rejected")
	assert.Equal(t, 2, s.Len(), "Previous collection should be kept")

	// Тест 4: успешная перезагрузка сбрасывает последнюю ошибку
	s.SetError(assert.AnError)
	err = s.ReplaceAll([]models.Link{makeLink("abc", 1)})
	assert.NoError(t, err, "ReplaceAll should not return error")
	assert.NoError(t, s.LastError(), "Last error should be cleared")
}

func TestStore_ApplyCreated(t *testing.T) {
	s := NewStore(zap.NewNop())

	// Тест 1: вставка новой ссылки
	err := s.ApplyCreated(makeLink("abc", 0))
	assert.NoError(t, err, "ApplyCreated should not return error")

	// Тест 2: повторная вставка того же кода — нарушение инварианта
	err = s.ApplyCreated(makeLink("abc", 3))
	assert.ErrorIs(t, err, ErrDuplicateCode, "Duplicate insert should be rejected")
	assert.Equal(t, 1, s.Len(), "Collection should still contain one link")

	link, exists := s.Get("abc")
	assert.True(t, exists, "Link should exist")
	assert.Equal(t, 0, link.Clicks, "Original link should be untouched")
}

func TestStore_ApplyUpdated(t *testing.T) {
	s := NewStore(zap.NewNop())
	assert.NoError(t, s.ApplyCreated(makeLink("abc", 0)))

	// Тест 1: обновление существующей ссылки
	ok := s.ApplyUpdated("abc", "https://new.example.com")
	assert.True(t, ok, "ApplyUpdated should report success")
	link, _ := s.Get("abc")
	assert.Equal(t, "https://new.example.com", link.OriginalURL, "URL should be updated")

	// Тест 2: обновление отсутствующего кода — no-op
	_, before := s.Snapshot()
	ok = s.ApplyUpdated("gone", "https://new.example.com")
	assert.False(t, ok, "Missing code should be a no-op")
	_, after := s.Snapshot()
	assert.Equal(t, before, after, "Version should not change on no-op")
}

func TestStore_ApplyRemoved(t *testing.T) {
	s := NewStore(zap.NewNop())
	assert.NoError(t, s.ReplaceAll([]models.Link{makeLink("a", 0), makeLink("b", 1), makeLink("c", 2)}))

	// Тест 1: удаление из середины сохраняет порядок остальных
	ok := s.ApplyRemoved("b")
	assert.True(t, ok, "ApplyRemoved should report success")
	links, _ := s.Snapshot()
	assert.Equal(t, "a", links[0].ShortCode, "Order should be preserved")
	assert.Equal(t, "c", links[1].ShortCode, "Order should be preserved")

	// Тест 2: индекс остаётся согласованным после удаления
	link, exists := s.Get("c")
	assert.True(t, exists, "Remaining link should be reachable")
	assert.Equal(t, 2, link.Clicks, "Link data should match")

	// Тест 3: удаление отсутствующего кода — no-op
	ok = s.ApplyRemoved("b")
	assert.False(t, ok, "Missing code should be a no-op")

	// Тест 4: код можно переиспользовать после удаления
	assert.NoError(t, s.ApplyCreated(makeLink("b", 9)), "Code should be reusable after removal")
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewStore(zap.NewNop())
	assert.NoError(t, s.ApplyCreated(makeLink("abc", 0)))

	// Изменение снимка не затрагивает коллекцию
	links, _ := s.Snapshot()
	links[0].OriginalURL = "mutated"

	link, _ := s.Get("abc")
	assert.Equal(t, "https://example.com/abc", link.OriginalURL, "Snapshot mutation should not affect store")
}

func TestStore_LoadingAndError(t *testing.T) {
	s := NewStore(zap.NewNop())

	s.SetLoading(true)
	assert.True(t, s.Loading(), "Loading flag should be set")
	s.SetLoading(false)
	assert.False(t, s.Loading(), "Loading flag should be cleared")

	s.SetError(assert.AnError)
	assert.Error(t, s.LastError(), "Last error should be kept")
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(zap.NewNop())
	assert.NoError(t, s.ApplyCreated(makeLink("abc", 0)))
	s.SetError(assert.AnError)

	s.Clear()

	assert.Equal(t, 0, s.Len(), "Collection should be empty")
	assert.NoError(t, s.LastError(), "Error should be cleared")
	_, exists := s.Get("abc")
	assert.False(t, exists, "Link should be gone")
}
