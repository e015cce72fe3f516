// Package connection multiplexes named slt.Adapter instances behind a
// single pool, creating each lazily from an injected factory on first use.
package connection

import (
	"context"
	"fmt"

	"github.com/sqltestbench/slt"
)

// Factory builds the Adapter backing a connection name the first time it's
// requested. Implementations typically close over a DSN template and swap
// in name as a database suffix.
type Factory func(name slt.ConnectionName) (slt.Adapter, error)

// Pool is a name-keyed, lazily populated set of adapters. Not safe for
// concurrent use from multiple goroutines without external synchronization
// — each harness worker owns its own Pool.
type Pool struct {
	factory Factory
	order   []slt.ConnectionName
	conns   map[slt.ConnectionName]slt.Adapter
}

// NewPool builds an empty Pool backed by factory.
func NewPool(factory Factory) *Pool {
	return &Pool{factory: factory, conns: make(map[slt.ConnectionName]slt.Adapter)}
}

// Get returns the adapter for name, creating it via the factory on first
// use and recording insertion order for Shutdown.
func (p *Pool) Get(ctx context.Context, name slt.ConnectionName) (slt.Adapter, error) {
	if a, ok := p.conns[name]; ok {
		return a, nil
	}
	a, err := p.factory(name)
	if err != nil {
		return nil, fmt.Errorf("connection %q: %w", name, err)
	}
	p.conns[name] = a
	p.order = append(p.order, name)
	return a, nil
}

// RunDefault is sugar for Get(ctx, slt.DefaultConnection).Run(ctx, sql).
func (p *Pool) RunDefault(ctx context.Context, sql string) (slt.Outcome, error) {
	a, err := p.Get(ctx, slt.DefaultConnection)
	if err != nil {
		return slt.Outcome{}, err
	}
	return a.Run(ctx, sql)
}

// Shutdown closes every adapter in insertion order, collecting (not
// short-circuiting on) per-connection errors.
func (p *Pool) Shutdown(ctx context.Context) error {
	var errs []error
	total := len(p.order)
	for _, name := range p.order {
		if err := p.conns[name].Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("connection %q: %w", name, err))
		}
	}
	p.conns = make(map[slt.ConnectionName]slt.Adapter)
	p.order = nil
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("connection: %d of %d connections failed to shut down: %w", len(errs), total, errs[0])
}
