package engine

// MarketMaker is the dealer side of the market: it quotes a single price,
// absorbs every order into its own inventory, and tracks realized P&L.
// Histories are append-only and grow by exactly one entry per executed
// order, plus one seed entry written at construction.
type MarketMaker struct {
	price         float64
	inventory     float64
	k             float64 // price impact per unit of order size
	inventoryRisk float64 // price adjustment per unit of held inventory
	profitLoss    float64

	priceHistory     []float64
	inventoryHistory []float64
	pnlHistory       []float64
}

// NewMarketMaker creates a market maker quoting initialPrice with the given
// starting inventory. k and inventoryRisk may be any real value; bounds are
// a configuration concern, not enforced here.
func NewMarketMaker(initialPrice, initialInventory, k, inventoryRisk float64) *MarketMaker {
	return &MarketMaker{
		price:            initialPrice,
		inventory:        initialInventory,
		k:                k,
		inventoryRisk:    inventoryRisk,
		priceHistory:     []float64{initialPrice},
		inventoryHistory: []float64{initialInventory},
		pnlHistory:       []float64{0},
	}
}

// AdjustPrice moves the quote by the order's price impact plus the standing
// inventory pressure. Inventory is read before the order is applied, so the
// adjustment reflects the position held going into this trade. The price is
// unbounded; it may go negative for extreme inputs.
func (mm *MarketMaker) AdjustPrice(orderSize float64) {
	orderImpact := mm.k * orderSize
	inventoryImpact := mm.inventoryRisk * mm.inventory
	mm.price += orderImpact + inventoryImpact
}

// ExecuteOrder fills a signed order against the maker's own book. The trade
// executes at the post-impact quote: the price moves first, then the order
// fills at the new price. A positive orderSize is a trader buy, which
// reduces the maker's inventory. P&L books the movement the maker traded
// against. One entry is appended to each history.
func (mm *MarketMaker) ExecuteOrder(orderSize float64) {
	prevPrice := mm.price
	mm.AdjustPrice(orderSize)
	transactionPrice := mm.price

	mm.inventory -= orderSize
	mm.profitLoss += -orderSize * (transactionPrice - prevPrice)

	mm.priceHistory = append(mm.priceHistory, mm.price)
	mm.inventoryHistory = append(mm.inventoryHistory, mm.inventory)
	mm.pnlHistory = append(mm.pnlHistory, mm.profitLoss)
}

// Price returns the current quote.
func (mm *MarketMaker) Price() float64 { return mm.price }

// Inventory returns the maker's signed net position.
func (mm *MarketMaker) Inventory() float64 { return mm.inventory }

// ProfitLoss returns cumulative realized P&L.
func (mm *MarketMaker) ProfitLoss() float64 { return mm.profitLoss }

// PriceHistory returns the live backing slice; callers must not modify it.
func (mm *MarketMaker) PriceHistory() []float64 { return mm.priceHistory }

// InventoryHistory returns the live backing slice; callers must not modify it.
func (mm *MarketMaker) InventoryHistory() []float64 { return mm.inventoryHistory }

// PnLHistory returns the live backing slice; callers must not modify it.
func (mm *MarketMaker) PnLHistory() []float64 { return mm.pnlHistory }
