// Command mdns-publish advertises a single DNS-SD service until interrupted,
// then sends a goodbye and exits.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/dogmatiq/dodeca/logging"

	"github.com/quietmesh/mdnsd/mdnsd"
	"github.com/quietmesh/mdnsd/service"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <type> <port>", os.Args[0])
	}

	typ := os.Args[1]
	port, err := strconv.ParseUint(os.Args[2], 10, 16)
	if err != nil {
		log.Fatalf("invalid port %q: %s", os.Args[2], err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	h, err := mdnsd.Create(ctx, mdnsd.Options{Logger: logging.DebugLogger})
	if err != nil {
		log.Fatal(err)
	}

	svc, err := h.Publish(ctx, service.Service{
		Name: typ + " example",
		Type: typ,
		Port: uint16(port),
	})
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("published %s", svc.FQDN())

	<-ctx.Done()

	done := make(chan struct{})
	_ = h.UnpublishAll(context.Background(), func() { close(done) })
	<-done

	h.Destroy()
}
