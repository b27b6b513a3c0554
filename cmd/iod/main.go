// Command iod runs a standalone I/O node: it serves ListFiles and
// InitIOSession on a well-known port, then one dynamically bound port per
// opened session.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trinity-vr/trinity/ionode"
	"github.com/trinity-vr/trinity/telemetry"
	"github.com/trinity-vr/trinity/transport"
)

func main() {
	protocol := flag.String("protocol", "tcp", "Transport protocol")
	host := flag.String("host", "0.0.0.0", "Listen address")
	port := flag.Int("port", 9000, "Listen port")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: iod [options]\n\nServes ListFiles and InitIOSession for the datasets this node knows about.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := telemetry.NewDefaultLogger("iod", *debug)

	acceptor, err := transport.Bind(*protocol, *host, *port, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "iod: cannot bind %s:%d: %v\n", *host, *port, err)
		os.Exit(1)
	}
	log.Infof("listening on %s", acceptor.Endpoint())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Infof("shutting down")
		cancel()
		acceptor.Close()
	}()

	n := ionode.NewNode(*host, log)
	n.Serve(ctx, acceptor)
}
