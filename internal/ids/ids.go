package ids

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Generator mints identifiers for cart lines and orders. Callers receive it
// as an injected dependency; nothing in the service layer touches the clock
// for identity.
type Generator interface {
	// NextID returns a strictly increasing identifier.
	NextID() int64
	// OrderNumber formats the human-readable order number for an ID.
	OrderNumber(id int64) string
	// ReceiptNumber returns a date-prefixed receipt number. Collisions are
	// unlikely but possible within one day; receipts are not primary keys.
	ReceiptNumber() string
}

// generator seeds an atomic counter from the wall clock once at startup and
// steps it afterwards, so rapid successive calls within the same clock tick
// can never collide.
type generator struct {
	counter atomic.Int64

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func New() Generator {
	g := &generator{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	g.counter.Store(time.Now().UnixMilli())

	return g
}

func (g *generator) NextID() int64 {
	return g.counter.Add(1)
}

func (g *generator) OrderNumber(id int64) string {
	s := strconv.FormatInt(id, 10)
	if len(s) > 8 {
		s = s[len(s)-8:]
	}

	return "ORD-" + s
}

func (g *generator) ReceiptNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return fmt.Sprintf("%s-%04d", g.now().Format("060102"), g.rnd.Intn(10000))
}
