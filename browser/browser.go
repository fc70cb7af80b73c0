// Package browser implements the discovery side of mDNS: issuing PTR
// queries and reconstructing remote service descriptors from the responses
// that arrive over multicast.
//
// See spec.md §4.D.
package browser

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/miekg/dns"
	"golang.org/x/sync/errgroup"

	"github.com/quietmesh/mdnsd/service"
	"github.com/quietmesh/mdnsd/transport"
)

// command is a unit of work performed within the Browser's main loop.
type command interface {
	Execute(ctx context.Context, b *Browser) error
}

// Browser subscribes to mDNS responses and maintains a live map of
// discovered remote services.
type Browser struct {
	iface       *net.Interface
	disableIPv4 bool
	disableIPv6 bool
	logger      logging.Logger

	names    []string
	wildcard bool
	nameMap  map[string]bool

	services   []*service.Service
	serviceMap map[string]int // DNS-normalized fqdn -> index into services

	events chan Event

	transports []transport.Transport

	commands chan command
	done     chan struct{}
	cancel   context.CancelFunc
	stopped  chan struct{}
}

// New constructs a Browser configured per opts.
//
// See spec.md §4.D, "Configuration".
func New(opts Options, options ...Option) (*Browser, error) {
	names, wildcard := deriveNames(opts)

	b := &Browser{
		names:      names,
		wildcard:   wildcard,
		nameMap:    map[string]bool{},
		serviceMap: map[string]int{},
		events:     make(chan Event, 16),
		commands:   make(chan command),
		done:       make(chan struct{}),
	}

	if !wildcard {
		for _, n := range names {
			b.nameMap[dns.Fqdn(n)] = true
		}
	}

	for _, opt := range options {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	if b.iface == nil {
		iface, err := internetInterface()
		if err != nil {
			return nil, err
		}
		b.iface = &iface
	}

	return b, nil
}

// Events returns the channel on which up/down transitions are emitted.
func (b *Browser) Events() <-chan Event {
	return b.events
}

// execute runs a command on the main loop and blocks until it completes.
func (b *Browser) execute(ctx context.Context, c command) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return errors.New("browser is no longer running")
	case b.commands <- c:
		return nil
	}
}

// Start subscribes to the transport's response stream and issues the initial
// PTR query for every configured name. It is a no-op if already started.
//
// See spec.md §4.D, "Lifecycle operations".
func (b *Browser) Start(ctx context.Context) error {
	if b.cancel != nil {
		return nil
	}

	if b.disableIPv4 && b.disableIPv6 {
		return errors.New("both IPv4 and IPv6 are disabled")
	}

	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.stopped = make(chan struct{})

	g, gctx := errgroup.WithContext(runCtx)

	var ready sync.WaitGroup

	if !b.disableIPv4 {
		ready.Add(1)
		t := &transport.IPv4Transport{Logger: b.logger}
		g.Go(func() error { return b.receive(gctx, t, &ready) })
	}

	if !b.disableIPv6 {
		ready.Add(1)
		t := &transport.IPv6Transport{Logger: b.logger}
		g.Go(func() error { return b.receive(gctx, t, &ready) })
	}

	g.Go(func() error { return b.run(gctx) })

	go func() {
		_ = g.Wait()
		close(b.stopped)
	}()

	readyCh := make(chan struct{})
	go func() {
		ready.Wait()
		close(readyCh)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stopped:
		// a transport or the main loop failed, which stops the whole
		// errgroup; its error is discarded, and Update() below reports that
		// the browser is no longer running.
	case <-readyCh:
	}

	return b.Update(ctx)
}

// Update re-issues the PTR query for every name currently tracked.
//
// See spec.md §4.D, "Lifecycle operations".
func (b *Browser) Update(ctx context.Context) error {
	return b.execute(ctx, &queryAllCommand{})
}

// Stop unsubscribes from the transport. services() is left intact.
//
// See spec.md §4.D, "Lifecycle operations".
func (b *Browser) Stop() {
	if b.cancel == nil {
		return
	}

	b.cancel()
	<-b.stopped
	b.cancel = nil
}

// run is the browser's single-owner main loop; every mutation of names,
// services, and serviceMap happens here.
func (b *Browser) run(ctx context.Context) error {
	defer close(b.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-b.commands:
			if err := c.Execute(ctx, b); err != nil {
				return err
			}
		}
	}
}

// receive pipes packets from t into the command loop. ready is signaled once
// the transport's registration has been handed off to the main loop, so that
// Start() can wait for every transport before issuing the initial query.
func (b *Browser) receive(ctx context.Context, t transport.Transport, ready *sync.WaitGroup) error {
	if err := t.Listen(b.iface); err != nil {
		ready.Done()
		return err
	}
	defer t.Close()

	go func() {
		<-ctx.Done()
		_ = t.Close()
	}()

	select {
	case <-ctx.Done():
		ready.Done()
		return ctx.Err()
	case b.commands <- &registerTransportCommand{t}:
		ready.Done()
	}

	for {
		in, err := t.Read()
		if err != nil {
			if isClosedError(err) {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
			}
			return err
		}

		m, err := in.Message()
		if err != nil {
			logging.Log(b.logger, "error parsing mDNS message: %s", err)
			in.Close()
			continue
		}

		in.Close()

		if !m.Response {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case b.commands <- &handleResponseCommand{Message: m, Source: in.Source}:
		}
	}
}

func isClosedError(err error) bool {
	for {
		e, ok := err.(*net.OpError)
		if !ok {
			return false
		}
		if e.Err.Error() == "use of closed network connection" {
			return true
		}
		err = e.Err
	}
}
