package core

import (
	"context"

	"github.com/holiman/uint256"
)

// ReserveDataUpdated emitted after every successful rate update
type ReserveDataUpdated struct {
	Asset               string       `json:"asset"`
	LiquidityRate       *uint256.Int `json:"liquidity_rate"`
	StableBorrowRate    *uint256.Int `json:"stable_borrow_rate"`
	VariableBorrowRate  *uint256.Int `json:"variable_borrow_rate"`
	LiquidityIndex      *uint256.Int `json:"liquidity_index"`
	VariableBorrowIndex *uint256.Int `json:"variable_borrow_index"`
}

// IEventSink receives reserve notifications
type IEventSink interface {
	ReserveDataUpdated(ctx context.Context, event *ReserveDataUpdated)
}
