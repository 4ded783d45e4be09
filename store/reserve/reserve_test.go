package reserve

import (
	"context"
	"fmt"
	"testing"

	"lending/core"
	"lending/pkg/wadray"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReserve(asset string) *core.Reserve {
	return &core.Reserve{
		Asset:               asset,
		LiquidityIndex:      wadray.Ray(),
		VariableBorrowIndex: wadray.Ray(),
	}
}

func TestAddAssignsDenseIDs(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i, asset := range []string{"eth", "dai", "usdc"} {
		r := newReserve(asset)
		require.Nil(t, s.Add(ctx, r))
		assert.Equal(t, uint16(i), r.ID)
	}

	r, err := s.FindByID(ctx, 1)
	require.Nil(t, err)
	assert.Equal(t, "dai", r.Asset)

	r, err = s.Find(ctx, "usdc")
	require.Nil(t, err)
	assert.Equal(t, uint16(2), r.ID)

	count, err := s.Count(ctx)
	require.Nil(t, err)
	assert.Equal(t, 3, count)

	err = s.Add(ctx, newReserve("eth"))
	assert.ErrorIs(t, err, core.ErrReserveAlreadyInitialized)

	_, err = s.Find(ctx, "wbtc")
	assert.ErrorIs(t, err, core.ErrReserveNotFound)

	_, err = s.FindByID(ctx, 3)
	assert.ErrorIs(t, err, core.ErrReserveNotFound)
}

func TestFindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.Nil(t, s.Add(ctx, newReserve("eth")))

	r, err := s.Find(ctx, "eth")
	require.Nil(t, err)
	r.LiquidityIndex.SetUint64(7)

	stored, err := s.Find(ctx, "eth")
	require.Nil(t, err)
	assert.True(t, stored.LiquidityIndex.Eq(wadray.RAY))
}

func TestUpdateOptimisticLock(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.Nil(t, s.Add(ctx, newReserve("eth")))

	a, _ := s.Find(ctx, "eth")
	b, _ := s.Find(ctx, "eth")

	a.LastUpdateTimestamp = 10
	require.Nil(t, s.Update(ctx, a))
	assert.Equal(t, int64(1), a.Version)

	b.LastUpdateTimestamp = 20
	assert.ErrorIs(t, s.Update(ctx, b), core.ErrOptimisticLock)

	stored, _ := s.Find(ctx, "eth")
	assert.Equal(t, uint64(10), stored.LastUpdateTimestamp)

	assert.ErrorIs(t, s.Update(ctx, newReserve("dai")), core.ErrReserveNotFound)
}

func TestMaxReserves(t *testing.T) {
	ctx := context.Background()
	s := New()
	for i := 0; i < core.MaxReserves; i++ {
		require.Nil(t, s.Add(ctx, newReserve(fmt.Sprintf("asset-%d", i))))
	}

	assert.ErrorIs(t, s.Add(ctx, newReserve("one-too-many")), core.ErrNoMoreReservesAllowed)
}
