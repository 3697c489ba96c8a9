package view_test

import (
	"fmt"
	"time"

	"github.com/tempizhere/linkdesk/internal/models"
	"github.com/tempizhere/linkdesk/internal/view"
)

// ExampleDerive демонстрирует построение страницы представления
func ExampleDerive() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	links := []models.Link{
		{ShortCode: "promo", OriginalURL: "https://example.com/sale", Clicks: 12, CreatedAt: base},
		{ShortCode: "docs", OriginalURL: "https://example.com/manual", Clicks: 0, CreatedAt: base.Add(time.Hour)},
		{ShortCode: "blog", OriginalURL: "https://example.com/posts", Clicks: 3, CreatedAt: base.Add(2 * time.Hour)},
	}

	// Активные ссылки, по убыванию кликов
	res := view.Derive(links, view.Query{
		Sort:     view.SortMostClicks,
		Filter:   view.FilterActive,
		Page:     1,
		PageSize: 5,
	})

	for _, link := range res.Links {
		fmt.Printf("%s: %d кликов\n", link.ShortCode, link.Clicks)
	}
	fmt.Printf("страница %d из %d\n", res.Page, res.TotalPages)

	// Output:
	// promo: 12 кликов
	// blog: 3 кликов
	// страница 1 из 1
}
