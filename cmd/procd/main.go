// Command procd runs a standalone processing node: it answers
// InitProcessingSession on a well-known port, opening an I/O session
// against whichever I/O node the request names and handing back a
// per-session control port plus vis-stream port.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trinity-vr/trinity/procnode"
	"github.com/trinity-vr/trinity/telemetry"
	"github.com/trinity-vr/trinity/transport"
)

func main() {
	protocol := flag.String("protocol", "tcp", "Transport protocol")
	host := flag.String("host", "0.0.0.0", "Listen address")
	port := flag.Int("port", 9100, "Listen port")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: procd [options]\n\nServes InitProcessingSession, handing each caller a renderer session and vis stream.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := telemetry.NewDefaultLogger("procd", *debug)

	acceptor, err := transport.Bind(*protocol, *host, *port, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "procd: cannot bind %s:%d: %v\n", *host, *port, err)
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

	n := procnode.NewNode(*host, log)
	n.Serve(ctx, acceptor)
}
