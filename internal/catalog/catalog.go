package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/25260173/crema-cafe-demo/internal/domain"
	"go.uber.org/zap"
)

// Store holds the read-only menu and topping catalogs. Both are loaded once
// at startup from external JSON documents; a failed source degrades to an
// empty collection instead of failing the load.
type Store struct {
	cfg    Config
	client *http.Client
	logger *zap.SugaredLogger

	mu       sync.RWMutex
	products []domain.Product
	toppings domain.ToppingCatalog
}

type Config struct {
	MenuURL     string
	ToppingsURL string
	Timeout     time.Duration
}

func New(cfg Config, logger *zap.SugaredLogger) *Store {
	return &Store{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// menuItem is the wire shape of the menu document: flat volumeN/priceN
// fields that Load converts into explicit tiers.
type menuItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Volume1     string `json:"volume1"`
	Volume2     string `json:"volume2"`
	Volume3     string `json:"volume3"`
	Price1      int    `json:"price1"`
	Price2      int    `json:"price2"`
	Price3      int    `json:"price3"`
}

type toppingItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// toppingsDoc is the wire shape of the toppings document: four named arrays.
type toppingsDoc struct {
	Toppings            []toppingItem `json:"toppings"`
	AlternativeMilk     []toppingItem `json:"alternative_milk"`
	SyrupsForCoffee     []toppingItem `json:"syrups_for_coffee"`
	SyrupsForColdDrinks []toppingItem `json:"syrups_for_cold_drinks"`
}

// Load fetches both catalogs. Either source failing leaves that catalog
// empty and is only logged; the store always comes up serving.
func (s *Store) Load(ctx context.Context) {
	var items []menuItem
	if err := s.fetchJSON(ctx, s.cfg.MenuURL, &items); err != nil {
		s.logger.Warnw("failed to load menu, serving empty catalog", "url", s.cfg.MenuURL, "error", err)
		items = nil
	}

	var doc toppingsDoc
	if err := s.fetchJSON(ctx, s.cfg.ToppingsURL, &doc); err != nil {
		s.logger.Warnw("failed to load toppings, serving empty catalog", "url", s.cfg.ToppingsURL, "error", err)
		doc = toppingsDoc{}
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, item.toProduct())
	}

	s.mu.Lock()
	s.products = products
	s.toppings = domain.ToppingCatalog{
		General:         convertToppings(doc.Toppings, domain.ToppingGeneral),
		AlternativeMilk: convertToppings(doc.AlternativeMilk, domain.ToppingAlternativeMilk),
		SyrupsHot:       convertToppings(doc.SyrupsForCoffee, domain.ToppingSyrupHot),
		SyrupsCold:      convertToppings(doc.SyrupsForColdDrinks, domain.ToppingSyrupCold),
	}
	s.mu.Unlock()

	s.logger.Infow("catalog loaded", "products", len(products))
}

func (s *Store) fetchJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	return nil
}

// toProduct converts the volumeN/priceN wire fields into tier slots. Slot
// positions are preserved so tier keys keep pointing at the same volume. A
// product with a lone price1 and no volume label becomes a single untitled
// tier that needs no volume selection.
func (m menuItem) toProduct() domain.Product {
	tiers := []domain.Tier{
		{VolumeLabel: m.Volume1, Price: m.Price1},
		{VolumeLabel: m.Volume2, Price: m.Price2},
		{VolumeLabel: m.Volume3, Price: m.Price3},
	}

	last := -1
	for i, t := range tiers {
		if t.Price > 0 {
			last = i
		}
	}
	tiers = tiers[:last+1]

	return domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    domain.ProductCategory(m.Category),
		Image:       m.Image,
		Tiers:       tiers,
	}
}

func convertToppings(items []toppingItem, kind domain.ToppingKind) []domain.Topping {
	out := make([]domain.Topping, 0, len(items))
	for _, item := range items {
		out = append(out, domain.Topping{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
			Kind:  kind,
		})
	}

	return out
}

// Products returns the loaded menu in document order.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)

	return out
}

// FindProduct looks a product up by ID.
func (s *Store) FindProduct(id int) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}

	return domain.Product{}, false
}

// FindTopping looks a topping up by ID across all groups.
func (s *Store) FindTopping(id int) (domain.Topping, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.toppings.Find(id)
}

// ToppingsFor lists the toppings visible for a product category, in the
// stable general/syrups/milk concatenation order.
func (s *Store) ToppingsFor(category domain.ProductCategory) []domain.Topping {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.toppings.VisibleFor(category)
}
