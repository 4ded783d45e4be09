package event

import (
	"context"
	"strings"

	"lending/core"
	"lending/pkg/id"
	"lending/pkg/wadray"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

type logSink struct{}

// New event sink writing reserve updates to the context logger
func New() core.IEventSink {
	return &logSink{}
}

type reserveDataUpdatedView struct {
	ID                  string `json:"event_id"`
	Asset               string `json:"asset"`
	LiquidityRate       string `json:"liquidity_rate"`
	StableBorrowRate    string `json:"stable_borrow_rate"`
	VariableBorrowRate  string `json:"variable_borrow_rate"`
	LiquidityIndex      string `json:"liquidity_index"`
	VariableBorrowIndex string `json:"variable_borrow_index"`
}

func (s *logSink) ReserveDataUpdated(ctx context.Context, event *core.ReserveDataUpdated) {
	view := reserveDataUpdatedView{
		ID:                  eventID(event),
		Asset:               event.Asset,
		LiquidityRate:       wadray.RayToDecimal(event.LiquidityRate).String(),
		StableBorrowRate:    wadray.RayToDecimal(event.StableBorrowRate).String(),
		VariableBorrowRate:  wadray.RayToDecimal(event.VariableBorrowRate).String(),
		LiquidityIndex:      wadray.RayToDecimal(event.LiquidityIndex).String(),
		VariableBorrowIndex: wadray.RayToDecimal(event.VariableBorrowIndex).String(),
	}

	logger.FromContext(ctx).WithFields(logrus.Fields(structs.Map(view))).Infoln("ReserveDataUpdated")
}

// eventID same reserve state, same id
func eventID(event *core.ReserveDataUpdated) string {
	return id.TraceIDFrom(strings.Join([]string{
		event.Asset,
		event.LiquidityRate.Dec(),
		event.StableBorrowRate.Dec(),
		event.VariableBorrowRate.Dec(),
		event.LiquidityIndex.Dec(),
		event.VariableBorrowIndex.Dec(),
	}, ":"))
}
