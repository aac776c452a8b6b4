package rendezvous_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/rendezvous/rendezvous"
)

// Join3 short-circuits on the first failure in dependency order.
func TestJoin3_FailureShortCircuits(t *testing.T) {
	t.Parallel()

	fa := rendezvous.Value[int](1)
	fb := rendezvous.Err[string](errBoom)
	fc := rendezvous.Value[int](3)

	joined := rendezvous.Join3(fa, fb, fc)

	r := joined.AwaitSafe()
	require.Error(t, r.Error)
	assert.ErrorIs(t, r.Error, errBoom)
}

func TestJoin2_AllSucceed(t *testing.T) {
	t.Parallel()

	fa := rendezvous.Value[int](1)
	fb := rendezvous.Value[string]("two")

	joined := rendezvous.Join2(fa, fb)

	r := joined.AwaitSafe()
	value, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, value.First())
	assert.Equal(t, "two", value.Second())
}

func TestJoin12_AllSucceed(t *testing.T) {
	t.Parallel()

	joined := rendezvous.Join12(
		rendezvous.Value[int](1),
		rendezvous.Value[int](2),
		rendezvous.Value[int](3),
		rendezvous.Value[int](4),
		rendezvous.Value[int](5),
		rendezvous.Value[int](6),
		rendezvous.Value[int](7),
		rendezvous.Value[int](8),
		rendezvous.Value[int](9),
		rendezvous.Value[int](10),
		rendezvous.Value[int](11),
		rendezvous.Value[int](12),
	)

	r := joined.AwaitSafe()
	value, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, value.First())
	assert.Equal(t, 12, value.Twelfth())
}

// Collect preserves order and short-circuits at the first failure.
func TestCollect_PreservesOrder(t *testing.T) {
	t.Parallel()

	futures := []*rendezvous.Future[int]{
		rendezvous.Value[int](1),
		rendezvous.Value[int](2),
		rendezvous.Value[int](3),
	}

	r := rendezvous.Collect(futures).AwaitSafe()
	value, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, value)
}

func TestCollect_FirstFailureWins(t *testing.T) {
	t.Parallel()

	futures := []*rendezvous.Future[int]{
		rendezvous.Value[int](1),
		rendezvous.Err[int](errBoom),
		rendezvous.Value[int](3),
	}

	r := rendezvous.Collect(futures).AwaitSafe()
	require.Error(t, r.Error)
	assert.ErrorIs(t, r.Error, errBoom)
}

func TestCollect_Empty(t *testing.T) {
	t.Parallel()

	r := rendezvous.Collect[int](nil).AwaitSafe()
	value, err := r.Get()
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestCollectAll_AggregatesEveryFailure(t *testing.T) {
	t.Parallel()

	errOther := errors.New("other")

	futures := []*rendezvous.Future[int]{
		rendezvous.Value[int](1),
		rendezvous.Err[int](errBoom),
		rendezvous.Err[int](errOther),
	}

	r := rendezvous.CollectAll(futures).AwaitSafe()
	require.NoError(t, r.Error) // outer Future never fails; the aggregate lives in the inner Try

	inner, err := r.Get()
	require.NoError(t, err)
	require.Error(t, inner.Error)
	assert.ErrorIs(t, inner.Error, errBoom)
	assert.ErrorIs(t, inner.Error, errOther)
}

func TestCollectAll_AllSucceed(t *testing.T) {
	t.Parallel()

	futures := []*rendezvous.Future[int]{
		rendezvous.Value[int](1),
		rendezvous.Value[int](2),
	}

	r := rendezvous.CollectAll(futures).AwaitSafe()
	inner, err := r.Get()
	require.NoError(t, err)
	require.NoError(t, inner.Error)
	assert.Equal(t, []int{1, 2}, inner.Value)
}

func TestJoinAllTuple2_AwaitsBothOnFailure(t *testing.T) {
	t.Parallel()

	fa := rendezvous.Err[int](errBoom)
	fb, pb := rendezvous.New[string]()

	joined := rendezvous.JoinAllTuple2(fa, fb)
	assert.False(t, joined.IsResolved(), "JoinAllTuple2 must await every input, not short-circuit")

	pb.Success("ok")

	r := joined.AwaitSafe()
	require.Error(t, r.Error)
	assert.ErrorIs(t, r.Error, errBoom)
}

func TestJoinAllTuple3_AllSucceed(t *testing.T) {
	t.Parallel()

	r := rendezvous.JoinAllTuple3(
		rendezvous.Value[int](1),
		rendezvous.Value[string]("two"),
		rendezvous.Value[bool](true),
	).AwaitSafe()

	value, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, value.First())
	assert.Equal(t, "two", value.Second())
	assert.True(t, value.Third())
}

func TestSpawn_Success(t *testing.T) {
	t.Parallel()

	f := rendezvous.Spawn(func() (int, error) {
		return 42, nil
	})

	r := f.AwaitSafe()
	value, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestSpawn_RecoversPanic(t *testing.T) {
	t.Parallel()

	f := rendezvous.Spawn(func() (int, error) {
		panic("kaboom")
	})

	r := f.AwaitSafe()
	require.Error(t, r.Error)
}

func TestSpawnAll_PreservesOrder(t *testing.T) {
	t.Parallel()

	f := rendezvous.SpawnAll(
		func() (int, error) { time.Sleep(5 * time.Millisecond); return 1, nil },
		func() (int, error) { return 2, nil },
		func() (int, error) { return 3, nil },
	)

	r := f.AwaitSafe()
	value, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, value)
}

func TestSpawnAll_FirstErrorWins(t *testing.T) {
	t.Parallel()

	f := rendezvous.SpawnAll(
		func() (int, error) { return 1, nil },
		func() (int, error) { return 0, errBoom },
	)

	r := f.AwaitSafe()
	require.Error(t, r.Error)
	assert.ErrorIs(t, r.Error, errBoom)
}
