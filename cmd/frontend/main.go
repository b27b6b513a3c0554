// Command frontend is a headless viewer: it lists the datasets an I/O node
// serves, opens a rendering session against a processing node, drives it
// for a fixed number of frames, and writes the last frame to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/trinity-vr/trinity/frontend"
)

func main() {
	ioHost := flag.String("io-host", "127.0.0.1", "I/O node host")
	ioPort := flag.String("io-port", "9000", "I/O node port")
	procHost := flag.String("proc-host", "127.0.0.1", "Processing node host")
	procPort := flag.String("proc-port", "9100", "Processing node port")
	protocol := flag.String("protocol", "tcp", "Transport protocol")
	renderer := flag.String("renderer", "gridleaper", "Renderer type: gridleaper, simple, or dummy")
	fileId := flag.String("file", "", "Dataset file id to open (see -list)")
	list := flag.Bool("list", false, "List datasets the I/O node serves, then exit")
	width := flag.Uint("width", 512, "Frame width")
	height := flag.Uint("height", 512, "Frame height")
	frames := flag.Uint("frames", 30, "Number of frames to render")
	out := flag.String("out", "frame.png", "Where to write the final frame")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: frontend [options]\n\nDrives a rendering session headlessly and saves the last frame as a PNG.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		entries, err := frontend.ListFiles(*protocol, *ioHost, *ioPort, "", 5*time.Second, 10*time.Second)
		if err != nil {
			fmt.Fprintf(os.Stderr, "frontend: list files: %v\n", err)
			os.Exit(1)
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s\t%s\n", e.FileId, e.Name, e.Kind)
		}
		return
	}

	if *fileId == "" {
		fmt.Fprintln(os.Stderr, "frontend: -file is required (see -list)")
		os.Exit(1)
	}

	sess, err := frontend.OpenSession(frontend.OpenSessionParams{
		Protocol:     *protocol,
		Host:         *procHost,
		Port:         *procPort,
		RendererType: *renderer,
		FileId:       *fileId,
		IOProtocol:   *protocol,
		IOHost:       *ioHost,
		IOPort:       *ioPort,
		ResX:         uint32(*width),
		ResY:         uint32(*height),
		DialTimeout:  5 * time.Second,
		CallTimeout:  10 * time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "frontend: open session: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	if err := sess.Proxy.StartRendering(); err != nil {
		fmt.Fprintf(os.Stderr, "frontend: start rendering: %v\n", err)
		os.Exit(1)
	}

	var lastFrame image.Image
	for i := uint(0); i < *frames; i++ {
		if err := sess.Proxy.ProceedRendering(); err != nil {
			fmt.Fprintf(os.Stderr, "frontend: proceed rendering: %v\n", err)
			os.Exit(1)
		}
		frame, err := sess.ReadFrame()
		if err != nil {
			fmt.Fprintf(os.Stderr, "frontend: read frame: %v\n", err)
			os.Exit(1)
		}
		if frame.Empty() {
			continue
		}
		lastFrame = toImage(frame.Width, frame.Height, frame.Pixels)
	}

	if lastFrame == nil {
		fmt.Fprintln(os.Stderr, "frontend: no non-empty frame arrived")
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "frontend: create %s: %v\n", *out, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, lastFrame); err != nil {
		fmt.Fprintf(os.Stderr, "frontend: encode %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *out)
}

func toImage(width, height uint32, pixels []byte) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {
			i := (y*int(width) + x) * 4
			if i+4 > len(pixels) {
				continue
			}
			img.Set(x, y, color.RGBA{pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]})
		}
	}
	return img
}
