// Package coordinator управляет мутациями коллекции: создание, правка, удаление, обновление.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tempizhere/linkdesk/internal/gateway"
	"github.com/tempizhere/linkdesk/internal/models"
	"github.com/tempizhere/linkdesk/internal/store"
	"go.uber.org/zap"
)

// ErrCancelled возвращается, если пользователь не подтвердил операцию
var ErrCancelled = errors.New("operation cancelled")

// MutationState — состояние одной мутации
type MutationState int

const (
	// StatePending — сетевой вызов ещё выполняется
	StatePending MutationState = iota
	// StateCommitted — сервис подтвердил изменение, коллекция обновлена
	StateCommitted
	// StateFailed — мутация не прошла, коллекция гарантированно не тронута
	StateFailed
)

// String возвращает читаемое имя состояния
func (s MutationState) String() string {
	switch s {
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Mutation фиксирует ход одной мутации коллекции
type Mutation struct {
	Op    string
	Code  string
	state MutationState
	err   error
}

// State возвращает текущее состояние мутации
func (m *Mutation) State() MutationState {
	return m.state
}

// Err возвращает ошибку завершившейся неуспешно мутации
func (m *Mutation) Err() error {
	return m.err
}

// commit переводит мутацию в состояние committed
func (m *Mutation) commit() {
	m.state = StateCommitted
}

// fail переводит мутацию в состояние failed с ошибкой
func (m *Mutation) fail(err error) {
	m.state = StateFailed
	m.err = err
}

// Confirmer запрашивает у пользователя подтверждение необратимой операции.
// Координатор зависит от интерфейса, реализация остаётся за слоем представления.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Coordinator выполняет мутации последовательно внутри одного вызова:
// один сетевой запрос, затем одно изменение коллекции. Мутация коллекции
// происходит только после подтверждения сервиса, оптимистичных вставок
// и удалений нет.
type Coordinator struct {
	gw      gateway.Gateway
	store   *store.Store
	confirm Confirmer
	logger  *zap.Logger

	mu   sync.Mutex
	last *Mutation
}

// NewCoordinator создаёт Coordinator
func NewCoordinator(gw gateway.Gateway, st *store.Store, confirm Confirmer, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		gw:      gw,
		store:   st,
		confirm: confirm,
		logger:  logger,
	}
}

// Last возвращает последнюю начатую мутацию, nil — если мутаций не было
func (c *Coordinator) Last() *Mutation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// begin создаёт мутацию в состоянии pending
func (c *Coordinator) begin(op, code string) *Mutation {
	m := &Mutation{Op: op, Code: code, state: StatePending}
	c.mu.Lock()
	c.last = m
	c.mu.Unlock()
	return m
}

// Refresh перечитывает коллекцию с сервиса.
// Неудача не фатальна: прежняя коллекция остаётся видимой, ошибка — в LastError.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	links, err := c.gw.ListLinks(ctx)
	if err != nil {
		c.logger.Warn("refresh failed, keeping stale collection", zap.Error(err))
		c.store.SetError(err)
		return err
	}
	if err := c.store.ReplaceAll(links); err != nil {
		c.store.SetError(err)
		return err
	}
	c.logger.Info("collection refreshed", zap.Int("links", len(links)))
	return nil
}

// Create создаёт ссылку: валидация, запрос к сервису, вставка в коллекцию.
// Код назначает сервис, поэтому вставка происходит только после его ответа.
func (c *Coordinator) Create(ctx context.Context, rawURL, customCode string) (models.Link, error) {
	input, err := models.ValidateCreate(rawURL, customCode)
	if err != nil {
		return models.Link{}, err
	}

	m := c.begin("create", input.CustomCode)
	link, err := c.gw.CreateLink(ctx, input.URL, input.CustomCode)
	if err != nil {
		m.fail(err)
		return models.Link{}, err
	}
	if err := c.store.ApplyCreated(link); err != nil {
		// Дубликат кода в коллекции — дефект, фиксируем и отдаём вызывающему
		c.logger.Error("created link collides with collection",
			zap.String("short_code", link.ShortCode),
		)
		m.fail(err)
		return models.Link{}, fmt.Errorf("create %q: %w", link.ShortCode, err)
	}
	m.commit()
	c.logger.Info("link created", zap.String("short_code", link.ShortCode))
	return link, nil
}

// Edit заменяет оригинальный URL ссылки. При неудаче коллекция не меняется,
// чтобы пользователь мог поправить ввод и повторить.
func (c *Coordinator) Edit(ctx context.Context, shortCode, rawURL string) (models.Link, error) {
	newURL, err := models.ValidateEdit(rawURL)
	if err != nil {
		return models.Link{}, err
	}

	m := c.begin("update", shortCode)
	link, err := c.gw.UpdateLink(ctx, shortCode, newURL)
	if err != nil {
		m.fail(err)
		return models.Link{}, err
	}
	c.store.ApplyUpdated(shortCode, link.OriginalURL)
	m.commit()
	c.logger.Info("link updated", zap.String("short_code", shortCode))
	return link, nil
}

// Delete удаляет ссылку после явного подтверждения пользователя.
// Строка исчезает из коллекции только после успеха сервиса: неудачное удаление
// не должно спрятать данные, которыми пользователь всё ещё владеет.
func (c *Coordinator) Delete(ctx context.Context, shortCode string) error {
	ok, err := c.confirm.Confirm(fmt.Sprintf("Delete %q? This action cannot be undone.", shortCode))
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}

	m := c.begin("delete", shortCode)
	if err := c.gw.DeleteLink(ctx, shortCode); err != nil {
		m.fail(err)
		return err
	}
	c.store.ApplyRemoved(shortCode)
	m.commit()
	c.logger.Info("link deleted", zap.String("short_code", shortCode))
	return nil
}

// Stats возвращает одну ссылку со статистикой для детального просмотра.
// Результат в коллекцию не попадает.
func (c *Coordinator) Stats(ctx context.Context, shortCode string) (models.Link, error) {
	return c.gw.FetchStats(ctx, shortCode)
}
