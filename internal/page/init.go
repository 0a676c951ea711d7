// Package page is the initialization boundary: it ties fragment loading and
// active-route marking into the page lifecycle and isolates the host page
// from every failure.
package page

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/dom"
	"github.com/shahzaibarshad0008-spec/l7700monitor/internal/fragment"
)

// Readiness tells the initializer whether the document is already parsed,
// and lets it defer until a ready signal otherwise.
type Readiness interface {
	// Ready reports whether the document is fully parsed right now.
	Ready() bool
	// OnReady registers fn to run once when the document becomes ready.
	OnReady(fn func())
}

// ReadyNow is the Readiness of hosts whose document is already complete,
// such as a server injecting into a fully parsed page.
type ReadyNow struct{}

func (ReadyNow) Ready() bool    { return true }
func (ReadyNow) OnReady(func()) {}

// Initializer runs the load-inject-mark sequence at most once per page
// lifetime.
type Initializer struct {
	loader *fragment.Loader
	log    *zap.Logger
	once   sync.Once
}

// NewInitializer returns an Initializer reporting failures to log.
// A nil log disables diagnostics.
func NewInitializer(loader *fragment.Loader, log *zap.Logger) *Initializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Initializer{loader: loader, log: log}
}

// Run starts initialization: immediately when the document is already
// parsed, otherwise deferred until the ready signal fires. Exactly one of
// the two paths executes the sequence, and the sequence runs at most once
// even if the ready signal fires after an immediate start.
//
// Failures never escape: a fragment that cannot be loaded or holds no
// element is logged once and swallowed, and the page is left without the
// navigation fragment. The marking step has no failure conditions.
func (i *Initializer) Run(ctx context.Context, doc dom.Document, r Readiness) {
	if r == nil || r.Ready() {
		i.initialize(ctx, doc)
		return
	}
	r.OnReady(func() { i.initialize(ctx, doc) })
}

func (i *Initializer) initialize(ctx context.Context, doc dom.Document) {
	i.once.Do(func() {
		if err := i.loader.Load(ctx, doc); err != nil {
			i.log.Warn("navigation fragment unavailable", zap.Error(err))
		}
	})
}
