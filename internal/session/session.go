// Package session связывает шлюз, коллекцию, координатор и представление
// в объект с явным жизненным циклом: создание после аутентификации,
// Teardown при выходе пользователя.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/tempizhere/linkdesk/internal/analytics"
	"github.com/tempizhere/linkdesk/internal/auth"
	"github.com/tempizhere/linkdesk/internal/config"
	"github.com/tempizhere/linkdesk/internal/coordinator"
	"github.com/tempizhere/linkdesk/internal/gateway"
	"github.com/tempizhere/linkdesk/internal/store"
	"github.com/tempizhere/linkdesk/internal/view"
	"go.uber.org/zap"
)

// Session держит состояние одной пользовательской сессии.
// Глобальных синглтонов нет: всё состояние живёт в этом объекте
// и умирает вместе с ним.
type Session struct {
	store       *store.Store
	coordinator *coordinator.Coordinator
	state       *view.State
	memo        view.Memo
	logger      *zap.Logger
	done        chan struct{}
	teardown    sync.Once
}

// New создаёт сессию после успешной аутентификации.
// При ненулевом RefreshInterval запускается периодическая фоновая перезагрузка
// коллекции; при нулевом обновление остаётся только ручным.
func New(cfg *config.Config, tokens auth.TokenSource, confirm coordinator.Confirmer, logger *zap.Logger) *Session {
	st := store.NewStore(logger)
	gw := gateway.NewHTTPGateway(cfg.APIBaseURL, tokens, cfg.RequestTimeout, logger)
	s := &Session{
		store:       st,
		coordinator: coordinator.NewCoordinator(gw, st, confirm, logger),
		state:       view.NewState(cfg.PageSize),
		logger:      logger,
		done:        make(chan struct{}),
	}
	if cfg.RefreshInterval > 0 {
		go s.refreshLoop(cfg.RefreshInterval)
	}
	return s
}

// refreshLoop периодически перезагружает коллекцию до Teardown
func (s *Session) refreshLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			// Неудача не фатальна: прежняя коллекция остаётся доступной
			_ = s.coordinator.Refresh(context.Background())
		}
	}
}

// Init выполняет начальную загрузку коллекции
func (s *Session) Init(ctx context.Context) error {
	return s.coordinator.Refresh(ctx)
}

// Teardown завершает сессию: останавливает фоновое обновление и очищает коллекцию.
// Повторные вызовы безопасны.
func (s *Session) Teardown() {
	s.teardown.Do(func() {
		close(s.done)
		s.store.Clear()
		_ = s.logger.Sync()
	})
}

// Store возвращает коллекцию сессии
func (s *Session) Store() *store.Store {
	return s.store
}

// Coordinator возвращает координатор мутаций
func (s *Session) Coordinator() *coordinator.Coordinator {
	return s.coordinator
}

// ViewState возвращает параметры представления
func (s *Session) ViewState() *view.State {
	return s.state
}

// View строит текущую страницу представления через мемоизацию:
// пересчёт происходит только при изменении коллекции или параметров.
func (s *Session) View() view.Result {
	links, version := s.store.Snapshot()
	return s.memo.Derive(links, version, s.state.Query())
}

// Summary строит сводку по текущей коллекции
func (s *Session) Summary() analytics.Summary {
	links, _ := s.store.Snapshot()
	return analytics.Summarize(links)
}
