package binding_test

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/delaneyj/rewire/binding"
	"github.com/delaneyj/rewire/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should rewire every hop as links appear, change and disappear
func TestChainRewiresAsLinksChange(t *testing.T) {
	a := cell.New[*A]()
	root := binding.Observe[*A](a)
	toB := binding.MustThen(root, aToB)
	toC := binding.MustThen(toB, bToC)
	toD := binding.MustThen(toC, cToD)

	c1 := &C{d: cell.Of(&D{value: cell.Of(5)})}
	b1 := &B{c: cell.Of[*C](nil)}
	a1 := &A{b: cell.Of(b1)}

	require.NoError(t, a.SetValue(a1))
	assert.Equal(t, b1, value(toB))
	assert.Nil(t, value(toC))
	assert.Nil(t, value(toD))

	require.NoError(t, b1.c.SetValue(c1))
	d, ok := toD.Value()
	require.True(t, ok)
	assert.Equal(t, 5, d.value.Get())

	a2 := &A{b: cell.New[*B]()}
	require.NoError(t, a.SetValue(a2))
	assert.Nil(t, value(toB))
	assert.Nil(t, value(toC))
	assert.Nil(t, value(toD))

	runtime.KeepAlive(a)
	runtime.KeepAlive(a1)
	runtime.KeepAlive(c1)
}

// should leave every node absent and run no terminal when nothing is set
func TestChainBuiltOnEmptyRoot(t *testing.T) {
	a := cell.New[*A]()
	root := binding.Observe[*A](a)
	toB := binding.MustThen(root, aToB)
	toC := binding.MustThen(toB, bToC)
	toD := binding.MustThen(toC, cToD)
	leaf := binding.MustThen(toD, dToValue)

	calls := 0
	_, err := leaf.Consume(nil, func(cell.Observable[int]) {
		calls++
	})
	require.NoError(t, err)

	assert.Nil(t, value(root))
	assert.Nil(t, value(toB))
	assert.Nil(t, value(toC))
	assert.Nil(t, value(toD))
	assert.Nil(t, value(leaf))
	assert.Equal(t, 0, calls)

	runtime.KeepAlive(a)
}

// buildAndSet builds a four hop chain after the build-th of the four link
// assignments, making the assignments in the given order.
func buildAndSet(t *testing.T, build int, order []int) (*binding.Node[int], cell.Observable[int]) {
	t.Helper()

	a := cell.New[*A]()
	d1 := &D{value: cell.Of(42)}
	c1 := &C{d: cell.New[*D]()}
	b1 := &B{c: cell.New[*C]()}
	a1 := &A{b: cell.New[*B]()}

	sets := []func() error{
		func() error { return a.SetValue(a1) },
		func() error { return a1.b.SetValue(b1) },
		func() error { return b1.c.SetValue(c1) },
		func() error { return c1.d.SetValue(d1) },
	}

	var leaf *binding.Node[int]
	for i := 0; i <= len(order); i++ {
		if i == build {
			root := binding.Observe[*A](a)
			leaf = binding.MustThen(binding.MustThen(binding.MustThen(binding.MustThen(root, aToB), bToC), cToD), dToValue)
		}
		if i < len(order) {
			require.NoError(t, sets[order[i]]())
		}
	}

	t.Cleanup(func() {
		runtime.KeepAlive(a)
	})
	return leaf, d1.value
}

// should wire a chain the same whatever the order of building and assigning
func TestChainAlreadySetInitialization(t *testing.T) {
	orders := map[string][]int{
		"root to leaf": {0, 1, 2, 3},
		"leaf to root": {3, 2, 1, 0},
		"shuffled":     {2, 0, 3, 1},
	}
	for name, order := range orders {
		for build := 0; build <= len(order); build++ {
			t.Run(fmt.Sprintf("%s, built after %d", name, build), func(t *testing.T) {
				leaf, d := buildAndSet(t, build, order)
				assert.Equal(t, 42, value(leaf))

				resolved, ok := leaf.Resolved()
				require.True(t, ok)
				assert.Same(t, d, resolved)

				runtime.KeepAlive(d)
			})
		}
	}
}

// should keep upstream nodes working and make downstream ones inert
func TestChainDisposalCascade(t *testing.T) {
	x, y := cell.Of(cell.Of(1)), cell.Of(cell.Of(2))
	a := cell.Of(x)
	root := binding.Observe[*cell.Cell[*cell.Cell[int]]](a)
	n1 := binding.MustThen(root, ident[*cell.Cell[int]])
	n2 := binding.MustThen(n1, ident[int])
	n3 := binding.MustThen(n2, func(v int) cell.Observable[string] {
		return cell.Of(fmt.Sprint(v))
	}, binding.Strong())

	assert.Equal(t, "1", value(n3))

	var notified []string
	n3.Subscribe(func(_, v string) error {
		notified = append(notified, v)
		return nil
	})

	require.NoError(t, n2.Dispose())
	assert.True(t, n2.Disposed())
	assert.True(t, n3.Disposed())
	assert.False(t, n1.Disposed())
	assert.Nil(t, value(n2))
	assert.Nil(t, value(n3))

	require.NoError(t, a.SetValue(y))
	assert.Equal(t, y.Get(), value(n1))
	require.NoError(t, y.Get().SetValue(3))
	require.NoError(t, x.Get().SetValue(4))
	assert.Nil(t, value(n2))
	assert.Nil(t, value(n3))
	assert.Empty(t, notified)

	_, err := binding.Then(n2, func(int) cell.Observable[int] { return nil })
	assert.ErrorIs(t, err, binding.ErrUseAfterDispose)

	runtime.KeepAlive(a)
	runtime.KeepAlive(x)
	runtime.KeepAlive(y)
}

// should dispose the previous child when a new one is attached
func TestChainThenReplacesChild(t *testing.T) {
	x := cell.Of(1)
	a := cell.Of(x)
	root := binding.Observe[*cell.Cell[int]](a)

	first := binding.MustThen(root, ident[int])
	assert.Equal(t, 1, value(first))

	second := binding.MustThen(root, ident[int], binding.Named("second"))
	assert.True(t, first.Disposed())
	assert.Equal(t, 1, value(second))
	assert.Equal(t, "root.second", second.Path())

	require.NoError(t, x.SetValue(2))
	assert.Equal(t, 2, value(second))
	assert.Nil(t, value(first))

	runtime.KeepAlive(a)
}

// should treat a nil resolution as a broken chain
func TestChainResolverReturnsNil(t *testing.T) {
	x := cell.Of(1)
	a := cell.Of(0)
	root := binding.Observe[int](a)
	n1 := binding.MustThen(root, func(v int) cell.Observable[int] {
		if v == 0 {
			return nil
		}
		return x
	})
	assert.Nil(t, value(n1))

	require.NoError(t, a.SetValue(1))
	assert.Equal(t, 1, value(n1))

	require.NoError(t, a.SetValue(0))
	assert.Nil(t, value(n1))
	_, ok := n1.Resolved()
	assert.False(t, ok)

	runtime.KeepAlive(a)
	runtime.KeepAlive(x)
}

// should surface resolver panics as resolution errors
func TestChainResolverPanics(t *testing.T) {
	x := cell.Of("ok")
	a := cell.Of(1)
	root := binding.Observe[int](a)
	n1, err := binding.Then(root, func(v int) cell.Observable[string] {
		switch v {
		case 2:
			panic(errors.New("two is not allowed"))
		case 3:
			panic("three neither")
		}
		return x
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value(n1))

	err = a.SetValue(2)
	require.ErrorIs(t, err, binding.ErrResolution)
	var resErr *binding.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "root.1", resErr.Path)
	assert.Equal(t, 2, resErr.Value)
	assert.EqualError(t, resErr.Cause, "two is not allowed")
	assert.Nil(t, value(n1))

	err = a.SetValue(3)
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Cause.Error(), "three neither")

	require.NoError(t, a.SetValue(4))
	assert.Equal(t, "ok", value(n1))

	runtime.KeepAlive(a)
	runtime.KeepAlive(x)
}

// should return the node together with a failed first resolution
func TestChainThenFirstResolutionFails(t *testing.T) {
	a := cell.Of(2)
	root := binding.Observe[int](a)
	n1, err := binding.Then(root, func(v int) cell.Observable[int] {
		if v == 2 {
			panic("bad")
		}
		return a
	})
	require.ErrorIs(t, err, binding.ErrResolution)
	require.NotNil(t, n1)
	assert.Nil(t, value(n1))

	require.NoError(t, a.SetValue(5))
	assert.Equal(t, 5, value(n1))

	runtime.KeepAlive(a)
}

// should reject a resolver returning a node of its own chain
func TestChainCycle(t *testing.T) {
	a := cell.Of(1)
	root := binding.Observe[int](a)
	n1, err := binding.Then(root, func(int) cell.Observable[int] {
		return root
	})
	require.ErrorIs(t, err, binding.ErrResolution)
	require.NotNil(t, n1)
	assert.Nil(t, value(n1))

	runtime.KeepAlive(a)
}

// should reject missing resolvers
func TestChainInvalidArguments(t *testing.T) {
	root := binding.Observe[int](cell.New[int]())

	_, err := binding.Then[int, int](root, nil)
	assert.ErrorIs(t, err, binding.ErrInvalidArgument)

	_, err = binding.Then[int, int](nil, func(int) cell.Observable[int] { return nil })
	assert.ErrorIs(t, err, binding.ErrInvalidArgument)

	assert.Panics(t, func() {
		binding.MustThen[int, int](root, nil)
	})
}

// should process re-entrant changes in arrival order
func TestChainReentrantChanges(t *testing.T) {
	x1, x2 := cell.Of(1), cell.Of(2)
	a := cell.New[*cell.Cell[int]]()
	root := binding.Observe[*cell.Cell[int]](a)
	n1 := binding.MustThen(root, ident[int])

	var seen []int
	n1.Subscribe(func(_, v int) error {
		seen = append(seen, v)
		if v == 1 {
			return a.SetValue(x2)
		}
		return nil
	})

	require.NoError(t, a.SetValue(x1))
	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, 2, value(n1))

	runtime.KeepAlive(a)
	runtime.KeepAlive(x1)
}

// should wire a child built from inside a listener before returning it
func TestChainThenInsideListener(t *testing.T) {
	t.Run("relay", func(t *testing.T) {
		x := cell.Of(7)
		a := cell.New[*cell.Cell[int]]()
		root := binding.Observe[*cell.Cell[int]](a)

		var inside any
		root.Subscribe(func(_, _ *cell.Cell[int]) error {
			next, err := binding.Then(root, ident[int])
			inside = value(next)
			return err
		})

		require.NoError(t, a.SetValue(x))
		assert.Equal(t, 7, inside)

		runtime.KeepAlive(a)
	})

	t.Run("terminal", func(t *testing.T) {
		x := cell.Of(7)
		a := cell.New[*cell.Cell[int]]()
		root := binding.Observe[*cell.Cell[int]](a)
		n1 := binding.MustThen(root, ident[int])
		target := cell.New[int]()

		mirrored := -1
		n1.Subscribe(func(_, _ int) error {
			_, err := n1.MirrorTo(target)
			mirrored = target.Get()
			return err
		})

		require.NoError(t, a.SetValue(x))
		assert.Equal(t, 7, mirrored)

		require.NoError(t, x.SetValue(8))
		assert.Equal(t, 8, mirrored)

		runtime.KeepAlive(a)
	})
}

// should build the same chain as successive Then calls
func TestPaths(t *testing.T) {
	a := cell.New[*A]()
	root := binding.Observe[*A](a)
	leaf, err := binding.Path4(root, aToB, bToC, cToD, dToValue, binding.Named("leaf"))
	require.NoError(t, err)
	assert.Equal(t, "root.1.2.3.leaf", leaf.Path())
	assert.Equal(t, 4, leaf.Depth())

	d1 := &D{value: cell.Of(7)}
	a1 := &A{b: cell.Of(&B{c: cell.Of(&C{d: cell.Of(d1)})})}
	require.NoError(t, a.SetValue(a1))
	assert.Equal(t, 7, value(leaf))

	short, err := binding.Path2(root, aToB, bToC)
	require.NoError(t, err)
	assert.Equal(t, "root.1.2", short.Path())
	assert.True(t, leaf.Disposed())
	assert.NotNil(t, value(short))

	runtime.KeepAlive(a)
	runtime.KeepAlive(d1)
}

// should dispose the hops built so far when the depth limit is hit
func TestPathsDepthLimit(t *testing.T) {
	rt := binding.NewRuntime(binding.Config{MaxDepth: 2})
	root := binding.Observe[*A](cell.New[*A](), binding.WithRuntime(rt))

	leaf, err := binding.Path3(root, aToB, bToC, cToD)
	assert.ErrorIs(t, err, binding.ErrInvalidArgument)
	assert.Nil(t, leaf)
	assert.Equal(t, uint64(2), rt.Stats().Disposals)

	_, err = binding.Path2(root, aToB, bToC)
	assert.NoError(t, err)
}
