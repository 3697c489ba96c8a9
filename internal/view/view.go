// Package view строит отображаемый срез коллекции: поиск, фильтр, сортировка, пагинация.
package view

import (
	"sort"
	"strings"
	"sync"

	"github.com/tempizhere/linkdesk/internal/models"
)

// SortKey задаёт порядок сортировки
type SortKey string

const (
	// SortNewest — по дате создания, новые первыми
	SortNewest SortKey = "newest"
	// SortOldest — по дате создания, старые первыми
	SortOldest SortKey = "oldest"
	// SortMostClicks — по кликам по убыванию
	SortMostClicks SortKey = "most-clicks"
	// SortLeastClicks — по кликам по возрастанию
	SortLeastClicks SortKey = "least-clicks"
)

// FilterKey задаёт фильтр по активности
type FilterKey string

const (
	// FilterAll пропускает все ссылки
	FilterAll FilterKey = "all"
	// FilterActive оставляет ссылки с кликами
	FilterActive FilterKey = "active"
	// FilterInactive оставляет ссылки без кликов
	FilterInactive FilterKey = "inactive"
)

// DefaultPageSize — размер страницы по умолчанию
const DefaultPageSize = 5

// Query описывает параметры представления. Значение неизменяемое и сравнимое:
// оно служит частью ключа мемоизации.
type Query struct {
	SearchTerm string
	Sort       SortKey
	Filter     FilterKey
	Page       int
	PageSize   int
}

// DefaultQuery возвращает параметры представления по умолчанию
func DefaultQuery(pageSize int) Query {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Query{
		Sort:     SortNewest,
		Filter:   FilterAll,
		Page:     1,
		PageSize: pageSize,
	}
}

// Result содержит страницу ссылок и данные пагинации
type Result struct {
	Links        []models.Link
	Page         int
	TotalPages   int
	TotalMatches int
}

// Derive строит страницу представления из коллекции. Функция чистая:
// исходный срез не изменяется, одинаковые входы дают одинаковый результат.
func Derive(links []models.Link, q Query) Result {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	// Шаг 1: поиск по подстроке без учёта регистра
	filtered := make([]models.Link, 0, len(links))
	term := strings.ToLower(q.SearchTerm)
	for _, link := range links {
		if term != "" &&
			!strings.Contains(strings.ToLower(link.ShortCode), term) &&
			!strings.Contains(strings.ToLower(link.OriginalURL), term) {
			continue
		}
		// Шаг 2: фильтр по активности
		switch q.Filter {
		case FilterActive:
			if link.Clicks == 0 {
				continue
			}
		case FilterInactive:
			if link.Clicks > 0 {
				continue
			}
		}
		filtered = append(filtered, link)
	}

	// Шаг 3: стабильная сортировка, ничьи сохраняют прежний порядок
	sort.SliceStable(filtered, func(i, j int) bool {
		switch q.Sort {
		case SortOldest:
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		case SortMostClicks:
			return filtered[i].Clicks > filtered[j].Clicks
		case SortLeastClicks:
			return filtered[i].Clicks < filtered[j].Clicks
		default:
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
	})

	// Шаг 4: пагинация с ограничением номера страницы
	totalMatches := len(filtered)
	totalPages := (totalMatches + q.PageSize - 1) / q.PageSize
	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if start > totalMatches {
		start = totalMatches
	}
	if end > totalMatches {
		end = totalMatches
	}

	return Result{
		Links:        filtered[start:end],
		Page:         page,
		TotalPages:   totalPages,
		TotalMatches: totalMatches,
	}
}

// State хранит текущие параметры представления.
// Смена поиска, сортировки или фильтра возвращает пользователя на первую страницу,
// чтобы он не остался на несуществующем номере.
type State struct {
	q Query
}

// NewState создаёт State с параметрами по умолчанию
func NewState(pageSize int) *State {
	return &State{q: DefaultQuery(pageSize)}
}

// Query возвращает текущие параметры
func (s *State) Query() Query {
	return s.q
}

// SetSearch меняет строку поиска и сбрасывает страницу
func (s *State) SetSearch(term string) {
	if s.q.SearchTerm == term {
		return
	}
	s.q.SearchTerm = term
	s.q.Page = 1
}

// SetSort меняет сортировку и сбрасывает страницу
func (s *State) SetSort(key SortKey) {
	if s.q.Sort == key {
		return
	}
	s.q.Sort = key
	s.q.Page = 1
}

// SetFilter меняет фильтр и сбрасывает страницу
func (s *State) SetFilter(key FilterKey) {
	if s.q.Filter == key {
		return
	}
	s.q.Filter = key
	s.q.Page = 1
}

// SetPage переходит на страницу, номера меньше единицы игнорируются
func (s *State) SetPage(page int) {
	if page < 1 {
		return
	}
	s.q.Page = page
}

// memoKey — ключ кэша: версия коллекции плюс параметры представления
type memoKey struct {
	version uint64
	query   Query
}

// Memo кэширует последний результат Derive и пересчитывает его
// только при смене версии коллекции или параметров представления.
type Memo struct {
	mu     sync.Mutex
	key    memoKey
	result Result
	valid  bool
}

// Derive возвращает кэшированный результат или пересчитывает его
func (m *Memo) Derive(links []models.Link, version uint64, q Query) Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memoKey{version: version, query: q}
	if m.valid && m.key == key {
		return m.result
	}
	m.result = Derive(links, q)
	m.key = key
	m.valid = true
	return m.result
}
