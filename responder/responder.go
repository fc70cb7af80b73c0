// Package responder implements the authoritative side of mDNS: a record
// table for locally-advertised services and the query-answering logic that
// serves it over multicast.
//
// See spec.md §4.B.
package responder

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/miekg/dns"
	"golang.org/x/sync/errgroup"

	"github.com/quietmesh/mdnsd/transport"
)

// command is a unit of work performed within the Responder's main loop.
type command interface {
	Execute(ctx context.Context, r *Responder) error
}

// Responder holds the authoritative set of locally-advertised DNS-SD
// records and answers incoming mDNS queries against it.
type Responder struct {
	iface       *net.Interface
	disableIPv4 bool
	disableIPv6 bool
	logger      logging.Logger

	table      table
	transports []transport.Transport

	done     chan struct{}
	commands chan command
	ready    chan struct{}
}

// New constructs a Responder.
func New(options ...Option) (*Responder, error) {
	r := &Responder{
		table:    table{},
		done:     make(chan struct{}),
		commands: make(chan command),
		ready:    make(chan struct{}),
	}

	for _, opt := range options {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.iface == nil {
		iface, err := internetInterface()
		if err != nil {
			return nil, err
		}
		r.iface = &iface
	}

	return r, nil
}

// execute runs a command on the main loop and blocks until it completes.
func (r *Responder) execute(ctx context.Context, c command) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return errors.New("responder is no longer running")
	case r.commands <- c:
		return nil
	}
}

// Register adds records to the authoritative table. Duplicates under
// (type, name, data) are dropped silently.
//
// See spec.md §4.B, "register".
func (r *Responder) Register(ctx context.Context, records ...dns.RR) error {
	return r.execute(ctx, &registerCommand{records})
}

// Unregister removes records from the authoritative table by (type, name).
// Absent records are a no-op.
//
// See spec.md §4.B, "unregister".
func (r *Responder) Unregister(ctx context.Context, records ...dns.RR) error {
	return r.execute(ctx, &unregisterCommand{records})
}

// Announce multicasts records as an unsolicited response over every active
// transport, i.e. an announcement or a goodbye.
//
// See spec.md §4.C, "publish" and "unpublishAll".
func (r *Responder) Announce(ctx context.Context, records []dns.RR) error {
	return r.execute(ctx, &announceCommand{records})
}

// WaitReady blocks until every enabled transport has joined its multicast
// group, or ctx is canceled. Callers that publish immediately after
// starting Run in the background should wait on this first, otherwise an
// announcement sent before any transport is registered is silently lost.
func (r *Responder) WaitReady(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return errors.New("responder is no longer running")
	case <-r.ready:
		return nil
	}
}

// Run serves mDNS queries until ctx is canceled or an unrecoverable error
// occurs.
func (r *Responder) Run(ctx context.Context) error {
	if r.disableIPv4 && r.disableIPv6 {
		return errors.New("both IPv4 and IPv6 are disabled")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	var pending sync.WaitGroup

	if !r.disableIPv4 {
		pending.Add(1)
		t := &transport.IPv4Transport{Logger: r.logger}
		g.Go(func() error { return r.receive(ctx, t, &pending) })
	}

	if !r.disableIPv6 {
		pending.Add(1)
		t := &transport.IPv6Transport{Logger: r.logger}
		g.Go(func() error { return r.receive(ctx, t, &pending) })
	}

	go func() {
		pending.Wait()
		close(r.ready)
	}()

	g.Go(func() error { return r.run(ctx) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// run is the responder's single-owner main loop. Every mutation of the
// record table happens here, satisfying the single-consumer invariant from
// spec.md §5 without locks.
func (r *Responder) run(ctx context.Context) error {
	defer close(r.done)

	// https://tools.ietf.org/html/rfc6762#section-8.1
	//
	// guard against a burst of hosts powering on together by staggering
	// the first multicast traffic we might emit.
	if err := sleep(ctx, randT(250*time.Millisecond)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-r.commands:
			if err := c.Execute(ctx, r); err != nil {
				return err
			}
		}
	}
}

// receive pipes packets from t into the command loop. pending is signaled
// once the transport's registration has been handed off to the main loop.
func (r *Responder) receive(ctx context.Context, t transport.Transport, pending *sync.WaitGroup) error {
	if err := t.Listen(r.iface); err != nil {
		pending.Done()
		return err
	}
	defer t.Close()

	go func() {
		<-ctx.Done()
		_ = t.Close()
	}()

	select {
	case <-ctx.Done():
		pending.Done()
		return ctx.Err()
	case r.commands <- &registerTransportCommand{t}:
		pending.Done()
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
			logging.Log(r.logger, "error parsing mDNS message: %s", err)
			in.Close()
			continue
		}

		var c command
		if m.Response {
			c = &handleResponse{in, m}
		} else {
			c = &handleQuery{in, m}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case r.commands <- c:
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
