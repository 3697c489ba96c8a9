// Package analytics считает сводные метрики по коллекции ссылок.
package analytics

import (
	"math"
	"sort"

	"github.com/tempizhere/linkdesk/internal/models"
)

const (
	// topLinksLimit — размер списка лучших ссылок
	topLinksLimit = 5
	// distributionLimit — число сегментов распределения кликов
	distributionLimit = 6
)

// Slice — один сегмент распределения кликов
type Slice struct {
	Label string
	Value int
}

// Summary — сводка по коллекции. Значение производное:
// оно пересчитывается на каждом изменении коллекции и нигде не хранится.
type Summary struct {
	TotalLinks    int
	TotalClicks   int
	AverageClicks int
	ActiveLinks   int
	// TopLinks — до пяти ссылок по убыванию кликов, ничьи сохраняют исходный порядок
	TopLinks []models.Link
	// Distribution — до шести сегментов по убыванию кликов;
	// nil, когда кликов нет вовсе, чтобы не рисовать вырожденную диаграмму
	Distribution []Slice
}

// Summarize строит сводку по коллекции. Исходный срез не изменяется.
func Summarize(links []models.Link) Summary {
	summary := Summary{TotalLinks: len(links)}
	for _, link := range links {
		summary.TotalClicks += link.Clicks
		if link.Clicks > 0 {
			summary.ActiveLinks++
		}
	}
	if summary.TotalLinks > 0 {
		summary.AverageClicks = int(math.Round(float64(summary.TotalClicks) / float64(summary.TotalLinks)))
	}

	byClicks := append([]models.Link(nil), links...)
	sort.SliceStable(byClicks, func(i, j int) bool {
		return byClicks[i].Clicks > byClicks[j].Clicks
	})

	top := topLinksLimit
	if top > len(byClicks) {
		top = len(byClicks)
	}
	if top > 0 {
		summary.TopLinks = byClicks[:top]
	}

	if summary.TotalClicks > 0 {
		limit := distributionLimit
		if limit > len(byClicks) {
			limit = len(byClicks)
		}
		summary.Distribution = make([]Slice, 0, limit)
		for _, link := range byClicks[:limit] {
			summary.Distribution = append(summary.Distribution, Slice{
				Label: link.ShortCode,
				Value: link.Clicks,
			})
		}
	}

	return summary
}
