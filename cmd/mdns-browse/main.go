// Command mdns-browse browses for instances of a DNS-SD service type and
// prints each discovered fqdn as it appears and disappears.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/dogmatiq/dodeca/logging"

	"github.com/quietmesh/mdnsd/browser"
	"github.com/quietmesh/mdnsd/mdnsd"
	"github.com/quietmesh/mdnsd/service"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <type>", os.Args[0])
	}
	typ := os.Args[1]

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	h, err := mdnsd.Create(ctx, mdnsd.Options{Logger: logging.DebugLogger})
	if err != nil {
		log.Fatal(err)
	}
	defer h.Destroy()

	b, err := h.Find(ctx, browser.Options{Type: typ}, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer b.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-b.Events():
			printEvent(ev)
		}
	}
}

func printEvent(ev browser.Event) {
	switch ev.Kind {
	case browser.Up:
		fmt.Printf("+ %s\n", fqdnOf(ev.Service))
	case browser.Down:
		fmt.Printf("- %s\n", fqdnOf(ev.Service))
	}
}

func fqdnOf(s *service.Service) string {
	return s.FQDN()
}
