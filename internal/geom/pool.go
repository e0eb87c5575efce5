package geom

import (
	"errors"
	"sync"
)

// ErrDisposed indicates use of a Vec already returned to the pool.
var ErrDisposed = errors.New("geom: vec used after release to pool")

// Vec is a pooled vector handle passed across API boundaries. A weak
// Vec is returned to the pool automatically by the first operation
// that consumes it; a strong Vec lives until Dispose is called.
//
// Operations that apply one Vec to many targets must suspend the weak
// flag for the duration (see SetWeak) so the argument is not recycled
// mid-iteration, then restore it and call Release once at the end.
type Vec struct {
	Vec2
	weak     bool
	disposed bool
}

var vecPool = sync.Pool{
	New: func() interface{} { return new(Vec) },
}

func alloc(x, y float64, weak bool) *Vec {
	v := vecPool.Get().(*Vec)
	v.X, v.Y = x, y
	v.weak = weak
	v.disposed = false
	return v
}

// NewVec allocates a strong Vec from the pool.
func NewVec(x, y float64) *Vec { return alloc(x, y, false) }

// WeakVec allocates a Vec that auto-releases on first consumption.
func WeakVec(x, y float64) *Vec { return alloc(x, y, true) }

func (v *Vec) Weak() bool     { return v.weak }
func (v *Vec) SetWeak(w bool) { v.weak = w }

func (v *Vec) Disposed() bool { return v.disposed }

// Dispose returns v to the pool. Disposing twice is a no-op.
func (v *Vec) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	v.weak = false
	vecPool.Put(v)
}

// Release applies weak-argument semantics: a weak Vec is disposed, a
// strong one is left alone. Consuming operations call this exactly
// once after they are done with the argument.
func (v *Vec) Release() {
	if v.weak {
		v.Dispose()
	}
}

// Check validates v as an operation argument.
func Check(v *Vec) error {
	if v == nil {
		return errors.New("geom: nil vec argument")
	}
	if v.disposed {
		return ErrDisposed
	}
	return nil
}
