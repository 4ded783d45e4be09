package event

import (
	"context"
	"testing"

	"lending/core"
	"lending/pkg/wadray"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yiplee/structs"
)

func TestReserveDataUpdated(t *testing.T) {
	structs.DefaultTagName = "json"

	log, hook := test.NewNullLogger()
	ctx := logger.WithContext(context.Background(), logrus.NewEntry(log))

	New().ReserveDataUpdated(ctx, &core.ReserveDataUpdated{
		Asset:               "eth",
		LiquidityRate:       wadray.MustRay("0.033"),
		StableBorrowRate:    wadray.MustRay("0.07"),
		VariableBorrowRate:  wadray.MustRay("0.05"),
		LiquidityIndex:      wadray.MustRay("1.01"),
		VariableBorrowIndex: wadray.Ray(),
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "ReserveDataUpdated", entry.Message)
	assert.Equal(t, "eth", entry.Data["asset"])
	assert.Equal(t, "0.033", entry.Data["liquidity_rate"])
	assert.Equal(t, "1", entry.Data["variable_borrow_index"])
	assert.NotEmpty(t, entry.Data["event_id"])
}

func TestEventIDFollowsState(t *testing.T) {
	a := &core.ReserveDataUpdated{
		Asset:               "eth",
		LiquidityRate:       wadray.MustRay("0.033"),
		StableBorrowRate:    wadray.MustRay("0.07"),
		VariableBorrowRate:  wadray.MustRay("0.05"),
		LiquidityIndex:      wadray.MustRay("1.01"),
		VariableBorrowIndex: wadray.Ray(),
	}
	b := *a
	assert.Equal(t, eventID(a), eventID(&b))

	b.LiquidityIndex = wadray.MustRay("1.02")
	assert.NotEqual(t, eventID(a), eventID(&b))
}
