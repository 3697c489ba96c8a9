package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tempizhere/linkdesk/internal/models"
)

// makeLink создаёт ссылку с заданным кодом, кликами и смещением даты создания
func makeLink(code string, clicks int, createdOffset time.Duration) models.Link {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return models.Link{
		ShortCode:   code,
		OriginalURL: "https://example.com/" + code,
		Clicks:      clicks,
		CreatedAt:   base.Add(createdOffset),
	}
}

func TestDerive_Search(t *testing.T) {
	links := []models.Link{
		makeLink("promo", 0, 0),
		{ShortCode: "abc", OriginalURL: "https://news.example.com/PROMO-page", CreatedAt: time.Now()},
		makeLink("other", 0, 0),
	}

	// Тест 1: поиск без учёта регистра по коду и URL
	res := Derive(links, Query{SearchTerm: "PrOmO", Sort: SortNewest, Filter: FilterAll, Page: 1, PageSize: 5})
	assert.Equal(t, 2, res.TotalMatches, "Search should match shortCode and originalUrl")

	// Тест 2: пустой поиск пропускает всё
	res = Derive(links, Query{Sort: SortNewest, Filter: FilterAll, Page: 1, PageSize: 5})
	assert.Equal(t, 3, res.TotalMatches, "Empty term should match everything")
}

func TestDerive_Filter(t *testing.T) {
	links := []models.Link{
		makeLink("abc", 0, 0),
		makeLink("xyz", 5, time.Hour),
	}

	// Тест 1: active оставляет только ссылки с кликами
	res := Derive(links, Query{Sort: SortNewest, Filter: FilterActive, Page: 1, PageSize: 5})
	assert.Len(t, res.Links, 1, "Active filter should keep one link")
	assert.Equal(t, "xyz", res.Links[0].ShortCode, "Active filter should keep clicked link")

	// Тест 2: inactive оставляет только ссылки без кликов
	res = Derive(links, Query{Sort: SortNewest, Filter: FilterInactive, Page: 1, PageSize: 5})
	assert.Len(t, res.Links, 1, "Inactive filter should keep one link")
	assert.Equal(t, "abc", res.Links[0].ShortCode, "Inactive filter should keep unclicked link")
}

func TestDerive_Sort(t *testing.T) {
	links := []models.Link{
		makeLink("old", 3, 0),
		makeLink("mid", 1, time.Hour),
		makeLink("new", 2, 2*time.Hour),
	}
	q := Query{Filter: FilterAll, Page: 1, PageSize: 5}

	// Тест 1: newest
	q.Sort = SortNewest
	res := Derive(links, q)
	assert.Equal(t, "new", res.Links[0].ShortCode, "Newest should come first")

	// Тест 2: oldest
	q.Sort = SortOldest
	res = Derive(links, q)
	assert.Equal(t, "old", res.Links[0].ShortCode, "Oldest should come first")

	// Тест 3: most-clicks
	q.Sort = SortMostClicks
	res = Derive(links, q)
	assert.Equal(t, "old", res.Links[0].ShortCode, "Most clicked should come first")

	// Тест 4: least-clicks
	q.Sort = SortLeastClicks
	res = Derive(links, q)
	assert.Equal(t, "mid", res.Links[0].ShortCode, "Least clicked should come first")
}

func TestDerive_SortStability(t *testing.T) {
	// Две ссылки с равными кликами сохраняют исходный относительный порядок
	links := []models.Link{
		makeLink("first", 5, 0),
		makeLink("second", 5, time.Hour),
		makeLink("third", 9, 2*time.Hour),
	}

	res := Derive(links, Query{Sort: SortMostClicks, Filter: FilterAll, Page: 1, PageSize: 5})
	assert.Equal(t, "third", res.Links[0].ShortCode, "Highest clicks should come first")
	assert.Equal(t, "first", res.Links[1].ShortCode, "Ties should keep original order")
	assert.Equal(t, "second", res.Links[2].ShortCode, "Ties should keep original order")
}

func TestDerive_Pagination(t *testing.T) {
	var links []models.Link
	for i := 0; i < 12; i++ {
		links = append(links, makeLink(string(rune('a'+i)), 0, time.Duration(i)*time.Hour))
	}
	q := Query{Sort: SortOldest, Filter: FilterAll, PageSize: 5}

	// Тест 1: первая страница полная
	q.Page = 1
	res := Derive(links, q)
	assert.Len(t, res.Links, 5, "First page should be full")
	assert.Equal(t, 3, res.TotalPages, "Total pages should be ceil(12/5)")

	// Тест 2: последняя страница укорочена
	q.Page = 3
	res = Derive(links, q)
	assert.Len(t, res.Links, 2, "Last page should be short")

	// Тест 3: завышенный номер страницы ограничивается последней
	q.Page = 99
	res = Derive(links, q)
	assert.Equal(t, 3, res.Page, "Page should be clamped to the last one")
	assert.Len(t, res.Links, 2, "Clamped page should return last page links")

	// Тест 4: пустая коллекция
	res = Derive(nil, q)
	assert.Equal(t, 0, res.TotalPages, "Empty collection should have zero pages")
	assert.Empty(t, res.Links, "Empty collection should return no links")
}

func TestDerive_Purity(t *testing.T) {
	links := []models.Link{
		makeLink("b", 2, 0),
		makeLink("a", 1, time.Hour),
	}
	q := Query{Sort: SortMostClicks, Filter: FilterAll, Page: 1, PageSize: 5}

	// Повторный вызов с теми же входами даёт тот же результат
	res1 := Derive(links, q)
	res2 := Derive(links, q)
	assert.Equal(t, res1, res2, "Same inputs should yield identical results")

	// Исходный срез не изменён
	assert.Equal(t, "b", links[0].ShortCode, "Source slice should be unmodified")
	assert.Equal(t, "a", links[1].ShortCode, "Source slice should be unmodified")
}

func TestState_PageReset(t *testing.T) {
	s := NewState(5)
	s.SetPage(3)
	assert.Equal(t, 3, s.Query().Page, "Page should be set")

	// Тест 1: смена поиска сбрасывает страницу
	s.SetSearch("promo")
	assert.Equal(t, 1, s.Query().Page, "Search change should reset page")

	// Тест 2: смена сортировки сбрасывает страницу
	s.SetPage(2)
	s.SetSort(SortMostClicks)
	assert.Equal(t, 1, s.Query().Page, "Sort change should reset page")

	// Тест 3: смена фильтра сбрасывает страницу
	s.SetPage(2)
	s.SetFilter(FilterActive)
	assert.Equal(t, 1, s.Query().Page, "Filter change should reset page")

	// Тест 4: установка того же значения страницу не трогает
	s.SetPage(2)
	s.SetFilter(FilterActive)
	assert.Equal(t, 2, s.Query().Page, "Same filter should not reset page")

	// Тест 5: некорректный номер страницы игнорируется
	s.SetPage(0)
	assert.Equal(t, 2, s.Query().Page, "Invalid page should be ignored")
}

func TestMemo(t *testing.T) {
	links := []models.Link{makeLink("abc", 1, 0)}
	q := DefaultQuery(5)
	var m Memo

	// Тест 1: повторный вызов с тем же ключом возвращает кэш
	res1 := m.Derive(links, 1, q)
	res2 := m.Derive(links, 1, q)
	assert.Equal(t, res1, res2, "Cached result should match")

	// Тест 2: смена версии коллекции пересчитывает результат
	more := append(links, makeLink("xyz", 0, time.Hour))
	res3 := m.Derive(more, 2, q)
	assert.Equal(t, 2, res3.TotalMatches, "New version should recompute")

	// Тест 3: смена параметров пересчитывает результат
	q2 := q
	q2.Filter = FilterInactive
	res4 := m.Derive(more, 2, q2)
	assert.Equal(t, 1, res4.TotalMatches, "New query should recompute")
}
