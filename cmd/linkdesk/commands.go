package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tempizhere/linkdesk/internal/analytics"
	"github.com/tempizhere/linkdesk/internal/coordinator"
	"github.com/tempizhere/linkdesk/internal/gateway"
	"github.com/tempizhere/linkdesk/internal/models"
	"github.com/tempizhere/linkdesk/internal/view"
)

// userMessage переводит ошибку в сообщение для пользователя.
// Вид ошибки шлюза сохраняется, транспортные сбои сводятся к предложению повторить.
func userMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidURL):
		return "enter a valid http(s) URL"
	case errors.Is(err, models.ErrInvalidCode):
		return "custom code may only contain letters, numbers, hyphens and underscores"
	case errors.Is(err, coordinator.ErrCancelled):
		return "cancelled"
	}
	var ge *gateway.Error
	if errors.As(err, &ge) {
		switch ge.Kind {
		case gateway.KindConflict:
			return "this code is already taken, pick another one"
		case gateway.KindInvalidInput:
			if ge.Message != "" {
				return ge.Message
			}
			return "the service rejected the request"
		case gateway.KindNotFound:
			return "link not found, it may have been deleted already"
		case gateway.KindUnauthorized:
			return "authorization failed, sign in again"
		default:
			return "the service is unreachable, please try again"
		}
	}
	return err.Error()
}

// newListCmd выводит страницу коллекции с поиском, фильтром и сортировкой
func newListCmd() *cobra.Command {
	var (
		search   string
		sortKey  string
		filter   string
		page     int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show your shortened links",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(terminalConfirmer{})
			if err != nil {
				return err
			}
			defer s.Teardown()
			if err := s.Init(cmd.Context()); err != nil {
				return errors.New(userMessage(err))
			}

			// Порядок установки повторяет порядок шагов конвейера
			s.ViewState().SetSearch(search)
			s.ViewState().SetSort(view.SortKey(sortKey))
			s.ViewState().SetFilter(view.FilterKey(filter))
			s.ViewState().SetPage(page)

			res := s.View()
			if s.Store().Len() == 0 {
				fmt.Println("No links yet. Create your first one with `linkdesk create`.")
				return nil
			}
			if res.TotalMatches == 0 {
				fmt.Println("No links found. Try adjusting your search or filters.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tCLICKS\tORIGINAL URL\tCREATED")
			for _, link := range res.Links {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					link.ShortCode, link.Clicks, link.OriginalURL, formatCreated(link.CreatedAt))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("page %d of %d (%d links)\n", res.Page, res.TotalPages, res.TotalMatches)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by substring of code or URL")
	cmd.Flags().StringVar(&sortKey, "sort", string(view.SortNewest), "sort order: newest|oldest|most-clicks|least-clicks")
	cmd.Flags().StringVar(&filter, "filter", string(view.FilterAll), "category: all|active|inactive")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

// newCreateCmd создаёт новую ссылку
func newCreateCmd() *cobra.Command {
	var customCode string
	cmd := &cobra.Command{
		Use:   "create <url>",
		Short: "Shorten a long URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(terminalConfirmer{})
			if err != nil {
				return err
			}
			defer s.Teardown()
			if err := s.Init(cmd.Context()); err != nil {
				return errors.New(userMessage(err))
			}

			link, err := s.Coordinator().Create(cmd.Context(), args[0], customCode)
			if err != nil {
				return errors.New(userMessage(err))
			}
			fmt.Printf("Created %s\n", link.ShortCode)
			if link.ShortURL != "" {
				fmt.Printf("Short URL: %s\n", link.ShortURL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&customCode, "code", "c", "", "custom short code (leave empty to auto-generate)")
	return cmd
}

// newEditCmd меняет оригинальный URL ссылки
func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <code> <url>",
		Short: "Replace the original URL of a link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(terminalConfirmer{})
			if err != nil {
				return err
			}
			defer s.Teardown()
			if err := s.Init(cmd.Context()); err != nil {
				return errors.New(userMessage(err))
			}

			link, err := s.Coordinator().Edit(cmd.Context(), args[0], args[1])
			if err != nil {
				return errors.New(userMessage(err))
			}
			fmt.Printf("Updated %s -> %s\n", link.ShortCode, link.OriginalURL)
			return nil
		},
	}
}

// newDeleteCmd удаляет ссылку после подтверждения
func newDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <code>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirm coordinator.Confirmer = terminalConfirmer{}
			if yes {
				confirm = acceptAll{}
			}
			s, err := newSession(confirm)
			if err != nil {
				return err
			}
			defer s.Teardown()
			if err := s.Init(cmd.Context()); err != nil {
				return errors.New(userMessage(err))
			}

			if err := s.Coordinator().Delete(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, coordinator.ErrCancelled) {
					fmt.Println("Cancelled.")
					return nil
				}
				return errors.New(userMessage(err))
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// newStatsCmd показывает статистику одной ссылки
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <code>",
		Short: "Show statistics for a single link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(terminalConfirmer{})
			if err != nil {
				return err
			}
			defer s.Teardown()

			link, err := s.Coordinator().Stats(cmd.Context(), args[0])
			if err != nil {
				return errors.New(userMessage(err))
			}
			fmt.Printf("Code:     %s\n", link.ShortCode)
			fmt.Printf("URL:      %s\n", link.OriginalURL)
			fmt.Printf("Clicks:   %d\n", link.Clicks)
			fmt.Printf("Created:  %s\n", formatCreated(link.CreatedAt))
			return nil
		},
	}
}

// newAnalyticsCmd показывает сводку по коллекции
func newAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show a summary of your collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(terminalConfirmer{})
			if err != nil {
				return err
			}
			defer s.Teardown()
			if err := s.Init(cmd.Context()); err != nil {
				return errors.New(userMessage(err))
			}

			summary := s.Summary()
			if summary.TotalLinks == 0 {
				fmt.Println("No analytics data. Create some links first.")
				return nil
			}
			printSummary(summary)
			return nil
		},
	}
}

// printSummary печатает сводку, лучшие ссылки и распределение кликов
func printSummary(summary analytics.Summary) {
	fmt.Printf("Total links:   %d\n", summary.TotalLinks)
	fmt.Printf("Total clicks:  %d\n", summary.TotalClicks)
	fmt.Printf("Avg clicks:    %d\n", summary.AverageClicks)
	fmt.Printf("Active links:  %d\n", summary.ActiveLinks)

	fmt.Println("\nTop links by clicks:")
	for _, link := range summary.TopLinks {
		fmt.Printf("  %-16s %d\n", link.ShortCode, link.Clicks)
	}

	fmt.Println("\nClick distribution:")
	if summary.Distribution == nil {
		fmt.Println("  No clicks yet")
		return
	}
	for _, slice := range summary.Distribution {
		share := float64(slice.Value) / float64(summary.TotalClicks) * 100
		fmt.Printf("  %-16s %3.0f%%\n", slice.Label, share)
	}
}
