package orderbook

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	orderv1 "github.com/kaushalkahapola/exchange-application/internal/domain/order/v1"
	orderbookv1 "github.com/kaushalkahapola/exchange-application/internal/domain/orderbook/v1"
)

// Book holds the resting orders of a single instrument. Each side is a price
// level map plus a price index kept sorted in matching priority order (bids
// descending, asks ascending), so the best opposite level is always the head
// of the index. Time priority within a level is the level's FIFO queue.
type Book struct {
	mu         sync.RWMutex
	instrument orderv1.Instrument

	askLimits map[string]*orderbookv1.Limit // price key -> limit
	bidLimits map[string]*orderbookv1.Limit // price key -> limit
	asks      []*orderbookv1.Limit          // sorted by price ascending
	bids      []*orderbookv1.Limit          // sorted by price descending
}

// NewBook creates an empty order book for the given instrument.
func NewBook(instrument orderv1.Instrument) *Book {
	return &Book{
		instrument: instrument,
		askLimits:  make(map[string]*orderbookv1.Limit),
		bidLimits:  make(map[string]*orderbookv1.Limit),
	}
}

// Instrument returns the instrument this book belongs to.
func (b *Book) Instrument() orderv1.Instrument {
	return b.instrument
}

// InsertResting books an order on its own side, keeping the price index
// sorted. The order must carry remaining quantity and belong to this book's
// instrument.
func (b *Book) InsertResting(order *orderv1.Order) error {
	if order == nil {
		return fmt.Errorf("order cannot be nil")
	}
	if order.Remaining <= 0 {
		return fmt.Errorf("order %d has no remaining quantity", order.ID)
	}
	if order.Instrument != b.instrument {
		return fmt.Errorf("order %d is for %s, book is for %s", order.ID, order.Instrument, b.instrument)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	limit := b.findOrCreateLimit(order.Side, order.Price)
	return limit.AddOrder(order)
}

// Match walks the opposite side in price-time priority, filling the incoming
// order against every crossing candidate until the order is exhausted or the
// best remaining level no longer crosses. Exhausted resting orders and empty
// levels are removed as they occur. The incoming order is NOT booked here;
// any remainder is the caller's to rest.
func (b *Book) Match(incoming *orderv1.Order) []orderbookv1.Fill {
	if incoming == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var fills []orderbookv1.Fill

	for incoming.Remaining > 0 {
		limit := b.bestLimit(incoming.Side.Opposite())
		if limit == nil || !incoming.Crosses(limit.Price) {
			// Priority order guarantees no further level can cross.
			break
		}

		fills = append(fills, limit.Fill(incoming)...)

		if limit.IsEmpty() {
			b.dropLimit(incoming.Side.Opposite(), limit)
		}
	}

	return fills
}

// BestOpposite returns the highest-priority resting order on the side opposite
// to the given one, or nil when that side is empty.
func (b *Book) BestOpposite(side orderv1.Side) *orderv1.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	limit := b.bestLimit(side.Opposite())
	if limit == nil {
		return nil
	}
	return limit.Peek()
}

// Asks returns the ask levels sorted by price ascending.
func (b *Book) Asks() []*orderbookv1.Limit {
	b.mu.RLock()
	defer b.mu.RUnlock()

	limits := make([]*orderbookv1.Limit, len(b.asks))
	copy(limits, b.asks)
	return limits
}

// Bids returns the bid levels sorted by price descending.
func (b *Book) Bids() []*orderbookv1.Limit {
	b.mu.RLock()
	defer b.mu.RUnlock()

	limits := make([]*orderbookv1.Limit, len(b.bids))
	copy(limits, b.bids)
	return limits
}

// AskTotalVolume returns the total resting sell quantity.
func (b *Book) AskTotalVolume() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var total int64
	for _, limit := range b.asks {
		total += limit.TotalVolume
	}
	return total
}

// BidTotalVolume returns the total resting buy quantity.
func (b *Book) BidTotalVolume() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var total int64
	for _, limit := range b.bids {
		total += limit.TotalVolume
	}
	return total
}

// IsEmpty checks if the book holds no resting orders on either side.
func (b *Book) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.asks) == 0 && len(b.bids) == 0
}

// bestLimit returns the head of a side's priority index. Callers hold the lock.
func (b *Book) bestLimit(side orderv1.Side) *orderbookv1.Limit {
	if side == orderv1.SideBuy {
		if len(b.bids) == 0 {
			return nil
		}
		return b.bids[0]
	}
	if len(b.asks) == 0 {
		return nil
	}
	return b.asks[0]
}

// findOrCreateLimit returns a side's level at the given price, creating it and
// inserting it into the sorted index when absent. Callers hold the lock.
func (b *Book) findOrCreateLimit(side orderv1.Side, price decimal.Decimal) *orderbookv1.Limit {
	limits := b.askLimits
	if side == orderv1.SideBuy {
		limits = b.bidLimits
	}

	key := price.String()
	if limit, exists := limits[key]; exists {
		return limit
	}

	limit := orderbookv1.NewLimit(price)
	limits[key] = limit

	if side == orderv1.SideBuy {
		// Bids are kept best (highest) price first.
		i := sort.Search(len(b.bids), func(i int) bool {
			return b.bids[i].Price.LessThan(price)
		})
		b.bids = append(b.bids, nil)
		copy(b.bids[i+1:], b.bids[i:])
		b.bids[i] = limit
	} else {
		// Asks are kept best (lowest) price first.
		i := sort.Search(len(b.asks), func(i int) bool {
			return b.asks[i].Price.GreaterThan(price)
		})
		b.asks = append(b.asks, nil)
		copy(b.asks[i+1:], b.asks[i:])
		b.asks[i] = limit
	}

	return limit
}

// dropLimit removes an empty level from a side's map and index. Callers hold
// the lock.
func (b *Book) dropLimit(side orderv1.Side, limit *orderbookv1.Limit) {
	if side == orderv1.SideBuy {
		delete(b.bidLimits, limit.Price.String())
		for i, l := range b.bids {
			if l == limit {
				b.bids = append(b.bids[:i], b.bids[i+1:]...)
				break
			}
		}
		return
	}

	delete(b.askLimits, limit.Price.String())
	for i, l := range b.asks {
		if l == limit {
			b.asks = append(b.asks[:i], b.asks[i+1:]...)
			break
		}
	}
}
