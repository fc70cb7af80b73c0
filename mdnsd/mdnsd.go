// Package mdnsd is the public facade over the discovery engine: one call to
// create a handle, then publish and find services through it.
//
// See spec.md §6, "Public API of the facade".
package mdnsd

import (
	"context"
	"net"

	"github.com/dogmatiq/dodeca/logging"

	"github.com/quietmesh/mdnsd/browser"
	"github.com/quietmesh/mdnsd/registry"
	"github.com/quietmesh/mdnsd/responder"
	"github.com/quietmesh/mdnsd/service"
)

// Options configures a Handle.
type Options struct {
	// Interface pins the responder and any browsers to a specific network
	// interface. If unset, each chooses the interface used to reach the
	// internet.
	Interface *net.Interface

	// Logger receives diagnostic output. If unset, logging.DefaultLogger is
	// used.
	Logger logging.Logger

	// DisableIPv4 and DisableIPv6 restrict the address families used.
	DisableIPv4 bool
	DisableIPv6 bool
}

// Handle is a running discovery engine: one Responder, one Registry layered
// over it, and zero or more Browsers.
//
// See spec.md §9, "Cyclic object graph": the facade owns the Responder and
// Registry; Browsers are independent and own their own transport.
type Handle struct {
	opts Options

	responder *responder.Responder
	registry  *registry.Registry

	ctx    context.Context
	cancel context.CancelFunc
	errs   chan error
}

// Create starts a Responder and returns a Handle for publishing and finding
// services through it.
//
// See spec.md §6, "create(opts)".
func Create(ctx context.Context, opts Options) (*Handle, error) {
	var responderOpts []responder.Option
	if opts.Logger != nil {
		responderOpts = append(responderOpts, responder.UseLogger(opts.Logger))
	}
	if opts.Interface != nil {
		responderOpts = append(responderOpts, responder.UseInterface(*opts.Interface))
	}
	if opts.DisableIPv4 {
		responderOpts = append(responderOpts, responder.DisableIPv4)
	}
	if opts.DisableIPv6 {
		responderOpts = append(responderOpts, responder.DisableIPv6)
	}

	r, err := responder.New(responderOpts...)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)

	h := &Handle{
		opts:      opts,
		responder: r,
		registry:  registry.New(r),
		ctx:       runCtx,
		cancel:    cancel,
		errs:      make(chan error, 1),
	}

	go func() {
		h.errs <- r.Run(runCtx)
	}()

	if err := r.WaitReady(ctx); err != nil {
		cancel()
		return nil, err
	}

	return h, nil
}

// Publish constructs a service descriptor, registers its records with the
// Responder, and announces it over multicast.
//
// See spec.md §6, "handle.publish(serviceOpts)".
func (h *Handle) Publish(ctx context.Context, opts service.Service) (*service.Service, error) {
	return h.registry.Publish(ctx, opts)
}

// UnpublishAll withdraws every published service, announcing a goodbye for
// each. done fires once every withdrawal has been sent.
//
// See spec.md §6, "handle.unpublishAll(done)".
func (h *Handle) UnpublishAll(ctx context.Context, done func()) error {
	return h.registry.UnpublishAll(ctx, done)
}

// Find starts a Browser configured per opts. If onUp is non-nil, it is
// invoked (on a dedicated goroutine) for every Up event the browser emits.
//
// See spec.md §6, "handle.find(opts, onUp?)".
func (h *Handle) Find(ctx context.Context, opts browser.Options, onUp func(*service.Service)) (*browser.Browser, error) {
	var browserOpts []browser.Option
	if h.opts.Logger != nil {
		browserOpts = append(browserOpts, browser.UseLogger(h.opts.Logger))
	}
	if h.opts.Interface != nil {
		browserOpts = append(browserOpts, browser.UseInterface(*h.opts.Interface))
	}
	if h.opts.DisableIPv4 {
		browserOpts = append(browserOpts, browser.DisableIPv4)
	}
	if h.opts.DisableIPv6 {
		browserOpts = append(browserOpts, browser.DisableIPv6)
	}

	b, err := browser.New(opts, browserOpts...)
	if err != nil {
		return nil, err
	}

	if err := b.Start(ctx); err != nil {
		return nil, err
	}

	if onUp != nil {
		go func() {
			for ev := range b.Events() {
				if ev.Kind == browser.Up {
					onUp(ev.Service)
				}
			}
		}()
	}

	return b, nil
}

// FindOne starts a Browser and invokes cb with the first service it
// discovers, then stops it.
//
// See spec.md §6, "handle.findOne(opts, cb)".
func (h *Handle) FindOne(ctx context.Context, opts browser.Options, cb func(*service.Service)) error {
	b, err := h.Find(ctx, opts, nil)
	if err != nil {
		return err
	}
	defer b.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-b.Events():
			if ev.Kind == browser.Up {
				cb(ev.Service)
				return nil
			}
		}
	}
}

// Destroy fire-and-forget unpublishes every service and tears down the
// Responder's transport listeners.
//
// See spec.md §6, "handle.destroy()".
func (h *Handle) Destroy() {
	h.registry.Destroy(h.ctx)
	h.cancel()
}
