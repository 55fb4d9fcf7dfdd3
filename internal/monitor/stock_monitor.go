package monitor

import (
	"log"
	"sync"
	"time"

	"github.com/dondigital/storefront/internal/repository"
)

// StockMonitor periodically recomputes the derived stock state of every
// product against the current Robux balance and logs transitions. It is
// log-only observability: no writes, no side effects on the catalog.
type StockMonitor struct {
	productRepo repository.ProductRepository
	statsRepo   repository.StatisticsRepository
	interval    time.Duration
	knownStates map[uint]bool // product ID -> last observed in-stock state
	mu          sync.Mutex
}

// NewStockMonitor creates and returns a new StockMonitor.
func NewStockMonitor(productRepo repository.ProductRepository, statsRepo repository.StatisticsRepository, interval time.Duration) *StockMonitor {
	return &StockMonitor{
		productRepo: productRepo,
		statsRepo:   statsRepo,
		interval:    interval,
		knownStates: make(map[uint]bool),
	}
}

// Start launches the periodic check loop. Blocking; run it in a goroutine.
func (m *StockMonitor) Start() {
	log.Printf("[MONITOR] Starting stock monitor with interval of %v...", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.checkStock()

	for range ticker.C {
		m.checkStock()
	}
}

// checkStock compares every product's Robux amount against the current
// balance and logs state changes since the previous pass.
func (m *StockMonitor) checkStock() {
	stats, err := m.statsRepo.Get()
	if err != nil {
		log.Printf("[MONITOR] ERROR retrieving statistics: %v", err)
		return
	}

	products, err := m.productRepo.GetAllByRobuxAsc()
	if err != nil {
		log.Printf("[MONITOR] ERROR retrieving products: %v", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, product := range products {
		inStock := product.RobuxAmount <= stats.CurrentRobux

		previous, seen := m.knownStates[product.ID]
		if seen && previous != inStock {
			if inStock {
				log.Printf("[MONITOR] Product '%s' (%d Robux) is back in stock (balance: %d)",
					product.Tier, product.RobuxAmount, stats.CurrentRobux)
			} else {
				log.Printf("[MONITOR] Product '%s' (%d Robux) is sold out (balance: %d)",
					product.Tier, product.RobuxAmount, stats.CurrentRobux)
			}
		}
		m.knownStates[product.ID] = inStock
	}
}
