package engine

import "strconv"

// TraderID identifies a trader within a single market.
type TraderID int64

func (id TraderID) String() string { return strconv.FormatInt(int64(id), 10) }

// Strategy selects a trader's order-generation policy.
// It is deliberately a string type: values outside the known set are
// accepted and behave as StrategyNeutral rather than being rejected.
type Strategy string

const (
	StrategyBuy     Strategy = "buy"
	StrategySell    Strategy = "sell"
	StrategyRandom  Strategy = "random"
	StrategyNeutral Strategy = "neutral"
)

// Strategies returns the known strategies in display order.
func Strategies() []Strategy {
	return []Strategy{StrategyBuy, StrategySell, StrategyRandom, StrategyNeutral}
}

// Known reports whether s is one of the recognized strategies.
func (s Strategy) Known() bool {
	switch s {
	case StrategyBuy, StrategySell, StrategyRandom, StrategyNeutral:
		return true
	default:
		return false
	}
}
