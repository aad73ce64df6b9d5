package service

import (
	"context"
	"errors"
	"sync"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"github.com/25260173/crema-cafe-demo/internal/queue"
	"github.com/25260173/crema-cafe-demo/internal/repo"
)

// in-memory fakes for the repository interfaces, keyed the same way the
// redis implementations are

type memCartRepo struct {
	mu    sync.Mutex
	lines map[string][]domain.CartLine
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{lines: make(map[string][]domain.CartLine)}
}

func (m *memCartRepo) Lines(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.CartLine, len(m.lines[sessionID]))
	copy(out, m.lines[sessionID])
	return out, nil
}

func (m *memCartRepo) SaveLines(_ context.Context, sessionID string, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lines[sessionID] = lines
	return nil
}

func (m *memCartRepo) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.lines, sessionID)
	return nil
}

func (m *memCartRepo) Watch(ctx context.Context, sessionID string) (<-chan struct{}, error) {
	return make(chan struct{}), nil
}

type memCustomizationRepo struct {
	mu      sync.Mutex
	entries map[string]map[int64]domain.CustomizationEntry
}

func newMemCustomizationRepo() *memCustomizationRepo {
	return &memCustomizationRepo{entries: make(map[string]map[int64]domain.CustomizationEntry)}
}

func (m *memCustomizationRepo) Entries(_ context.Context, sessionID string) (map[int64]domain.CustomizationEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[int64]domain.CustomizationEntry, len(m.entries[sessionID]))
	for k, v := range m.entries[sessionID] {
		out[k] = v
	}
	return out, nil
}

func (m *memCustomizationRepo) SaveEntries(_ context.Context, sessionID string, entries map[int64]domain.CustomizationEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[sessionID] = entries
	return nil
}

func (m *memCustomizationRepo) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, sessionID)
	return nil
}

type memPreferencesRepo struct {
	mu    sync.Mutex
	prefs map[string]domain.CustomerPreferences
}

func newMemPreferencesRepo() *memPreferencesRepo {
	return &memPreferencesRepo{prefs: make(map[string]domain.CustomerPreferences)}
}

func (m *memPreferencesRepo) Get(_ context.Context, sessionID string) (domain.CustomerPreferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.prefs[sessionID], nil
}

func (m *memPreferencesRepo) Save(_ context.Context, sessionID string, prefs domain.CustomerPreferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prefs[sessionID] = prefs
	return nil
}

type memBackupRepo struct {
	mu      sync.Mutex
	backups map[string]*domain.OrderBackup
}

func newMemBackupRepo() *memBackupRepo {
	return &memBackupRepo{backups: make(map[string]*domain.OrderBackup)}
}

func (m *memBackupRepo) Get(_ context.Context, sessionID string) (*domain.OrderBackup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.backups[sessionID], nil
}

func (m *memBackupRepo) Save(_ context.Context, sessionID string, backup domain.OrderBackup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.backups[sessionID] = &backup
	return nil
}

type memHistoryRepo struct {
	mu      sync.Mutex
	history map[string][]domain.ArchivedOrder
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{history: make(map[string][]domain.ArchivedOrder)}
}

func (m *memHistoryRepo) Push(_ context.Context, sessionID string, order domain.ArchivedOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := append([]domain.ArchivedOrder{order}, m.history[sessionID]...)
	if len(history) > repo.HistoryLimit {
		history = history[:repo.HistoryLimit]
	}
	m.history[sessionID] = history
	return nil
}

func (m *memHistoryRepo) List(_ context.Context, sessionID string) ([]domain.ArchivedOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.ArchivedOrder, len(m.history[sessionID]))
	copy(out, m.history[sessionID])
	return out, nil
}

type memFallbackRepo struct {
	mu    sync.Mutex
	queue []domain.Order
}

func newMemFallbackRepo() *memFallbackRepo {
	return &memFallbackRepo{}
}

func (m *memFallbackRepo) Enqueue(_ context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queue = append(m.queue, order)
	return nil
}

func (m *memFallbackRepo) Dequeue(_ context.Context) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return nil, nil
	}
	order := m.queue[0]
	m.queue = m.queue[1:]
	return &order, nil
}

func (m *memFallbackRepo) Requeue(_ context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queue = append([]domain.Order{order}, m.queue...)
	return nil
}

func (m *memFallbackRepo) Len(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.queue)), nil
}

type memArchiveRepo struct {
	mu     sync.Mutex
	orders []domain.ArchivedOrder
}

func newMemArchiveRepo() *memArchiveRepo {
	return &memArchiveRepo{}
}

func (m *memArchiveRepo) Create(_ context.Context, order *domain.ArchivedOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orders = append(m.orders, *order)
	return nil
}

func (m *memArchiveRepo) ListRecent(_ context.Context, limit int64) ([]domain.ArchivedOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.ArchivedOrder, 0, limit)
	for i := len(m.orders) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, m.orders[i])
	}
	return out, nil
}

// fakeCatalog satisfies Catalog with fixed products and toppings.
type fakeCatalog struct {
	products map[int]domain.Product
	toppings map[int]domain.Topping
}

func (f *fakeCatalog) FindProduct(id int) (domain.Product, bool) {
	p, ok := f.products[id]
	return p, ok
}

func (f *fakeCatalog) FindTopping(id int) (domain.Topping, bool) {
	t, ok := f.toppings[id]
	return t, ok
}

// fakeSubmitter fails while failing is set and records delivered orders.
type fakeSubmitter struct {
	mu        sync.Mutex
	failing   bool
	delivered []domain.Order
	block     chan struct{}
}

func (f *fakeSubmitter) Submit(_ context.Context, order domain.Order) error {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return errors.New("connection refused")
	}
	f.delivered = append(f.delivered, order)
	return nil
}

type fakeBroker struct {
	mu        sync.Mutex
	published [][]byte
}

func (f *fakeBroker) Publish(_ context.Context, _ string, message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.published = append(f.published, message)
	return nil
}

func (f *fakeBroker) Subscribe(_ context.Context, _ string, _ queue.MessageHandler) error {
	return nil
}

func (f *fakeBroker) Close() error { return nil }

// fakeIDGen hands out sequential IDs from a fixed base for deterministic
// assertions.
type fakeIDGen struct {
	mu   sync.Mutex
	next int64
}

func (g *fakeIDGen) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return g.next
}

func (g *fakeIDGen) OrderNumber(id int64) string {
	return "ORD-TEST"
}

func (g *fakeIDGen) ReceiptNumber() string {
	return "250101-0001"
}
