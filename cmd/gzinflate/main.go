// Command gzinflate decodes a single gzip (RFC 1952) file and writes its
// DEFLATE-decompressed contents to the name carried in the gzip header.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"time"

	"github.com/coreos/gzinflate/capnslog"
	"github.com/coreos/gzinflate/flagutil"
	"github.com/coreos/gzinflate/gzip"
	"github.com/coreos/gzinflate/progressutil"
	"github.com/coreos/gzinflate/stop"
	"github.com/coreos/gzinflate/yamlutil"
)

var plog = capnslog.NewPackageLogger("github.com/coreos/gzinflate", "main")

const (
	exitOK               = 0
	exitArgOrIOErr       = 1
	exitBadMagicOrMethod = 4
	exitChecksumMismatch = 6
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("gzinflate", flag.ContinueOnError)
	dump := fs.Bool("dump", false, "print gzip header/footer metadata to stdout before decoding")
	progress := fs.Bool("progress", false, "print a progress bar to stderr while decoding")
	configPath := fs.String("config", "", "path to a YAML file pre-populating flags")
	var logLevel flagutil.LogLevelFlag
	fs.Var(&logLevel, "log-level", "log level: CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG, TRACE")

	if err := fs.Parse(args); err != nil {
		return exitArgOrIOErr
	}
	if *configPath != "" {
		raw, err := ioutil.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitArgOrIOErr
		}
		if err := yamlutil.SetFlagsFromYaml(fs, raw); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitArgOrIOErr
		}
	}

	capnslog.SetFormatter(capnslog.NewStringFormatter(os.Stderr))
	capnslog.MustRepoLogger("github.com/coreos/gzinflate").SetGlobalLogLevel(logLevel.Level())

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gzinflate [flags] <path.gz>")
		return exitArgOrIOErr
	}

	return decodeFile(fs.Arg(0), *dump, *progress)
}

func decodeFile(path string, dump bool, showProgress bool) int {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		plog.Errorf("reading %s: %v", path, err)
		return exitArgOrIOErr
	}

	h, blockOffset, footerOffset, err := gzip.Parse(data)
	if err != nil {
		return exitFor(err)
	}

	if dump {
		printMetadata(h)
	}

	if !showProgress {
		out, _, err := gzip.Decode(data)
		if err != nil {
			return exitFor(err)
		}
		return writeOutput(h, out)
	}

	return decodeWithProgress(data, h, blockOffset, footerOffset)
}

// decodeWithProgress drives the same decode as decodeFile but reports
// progress to stderr via progressutil while the single DEFLATE payload is
// being copied into memory prior to inflation, stopped cleanly through a
// stop.Group if the process is interrupted.
func decodeWithProgress(data []byte, h *gzip.Header, blockOffset, footerOffset int) int {
	cpp := progressutil.NewCopyProgressPrinter()
	cpp.SetPrintToTTYAlways()
	stopGroup := stop.NewGroup()

	payload := data[blockOffset:footerOffset]
	buf := make([]byte, 0, len(payload))
	sink := &sliceWriter{buf: &buf}
	if err := cpp.AddCopy(newByteReader(payload), h.Name, int64(len(payload)), sink); err != nil {
		plog.Errorf("progress setup: %v", err)
		return exitArgOrIOErr
	}

	cancel := make(chan struct{})
	stopGroup.AddFunc(func() <-chan struct{} {
		close(cancel)
		return stop.AlreadyDone
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		if _, ok := <-sigCh; ok {
			plog.Noticef("interrupted, stopping progress reporting")
			<-stopGroup.Stop()
		}
	}()
	defer close(sigCh)
	defer signal.Stop(sigCh)

	if err := cpp.PrintAndWait(os.Stderr, 200*time.Millisecond, cancel); err != nil {
		plog.Errorf("copy: %v", err)
		return exitArgOrIOErr
	}

	out := make([]byte, h.ISIZE)
	n, err := decodePayload(buf, out)
	if err != nil {
		return exitFor(err)
	}
	if uint32(n) != h.ISIZE {
		return exitChecksumMismatch
	}
	if err := verifyChecksum(h, out[:n]); err != nil {
		return exitFor(err)
	}
	return writeOutput(h, out[:n])
}

func exitFor(err error) int {
	switch err {
	case gzip.ErrBadMagic, gzip.ErrUnsupportedMethod:
		plog.Errorf("%v", err)
		return exitBadMagicOrMethod
	case gzip.ErrChecksumMismatch:
		plog.Errorf("%v", err)
		return exitChecksumMismatch
	default:
		plog.Errorf("%v", err)
		return exitArgOrIOErr
	}
}

func writeOutput(h *gzip.Header, data []byte) int {
	if h.Name == "" {
		plog.Warningf("gzip header carries no FNAME; refusing to write output")
		return exitOK
	}
	if err := ioutil.WriteFile(h.Name, data, 0640); err != nil {
		plog.Errorf("writing %s: %v", h.Name, err)
		return exitArgOrIOErr
	}
	return exitOK
}

func printMetadata(h *gzip.Header) {
	fmt.Printf("name: %s\n", h.Name)
	fmt.Printf("comment: %s\n", h.Comment)
	fmt.Printf("os: %s\n", gzip.OSName(h.OS))
	fmt.Printf("mtime: %s\n", h.ModTime.Format(time.RFC3339))
	fmt.Printf("block offset: %d\n", h.BlockOffset)
	fmt.Printf("crc32: %08x\n", h.CRC32)
	fmt.Printf("isize: %d\n", h.ISIZE)
}
