// Copyright 2016 CoreOS Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package progressutil prints live progress bars for one or more concurrent
// io.Copy operations, such as the single gzip member a gzinflate run
// decodes.
package progressutil

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAlreadyStarted is returned by AddCopy and PrintAndWait once
// PrintAndWait has already begun running on a CopyProgressPrinter.
var ErrAlreadyStarted = errors.New("progressutil: already started")

type copyJob struct {
	r      io.Reader
	label  string
	size   int64
	w      io.Writer
	copied int64 // atomic
}

// countingReader wraps an io.Reader, tracking bytes read into an atomic
// counter so the print loop can read progress concurrently with the copy.
type countingReader struct {
	r       io.Reader
	counter *int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	atomic.AddInt64(cr.counter, int64(n))
	return n, err
}

type printBarParams struct {
	printToTTYAlways bool
}

// CopyProgressPrinter drives one or more io.Copy operations and renders a
// progress bar per copy while they run.
type CopyProgressPrinter struct {
	mu      sync.Mutex
	jobs    []*copyJob
	started bool
	pbp     printBarParams
}

// NewCopyProgressPrinter allocates a CopyProgressPrinter with no copies
// registered yet.
func NewCopyProgressPrinter() *CopyProgressPrinter {
	return &CopyProgressPrinter{}
}

// SetPrintToTTYAlways forces PrintAndWait to render its progress bars
// unconditionally, bypassing the (unimplemented, see DESIGN.md) TTY
// auto-detection. Callers that only want a progress bar when explicitly
// asked for one, such as a CLI's -progress flag, call this before
// PrintAndWait.
func (cpp *CopyProgressPrinter) SetPrintToTTYAlways() {
	cpp.mu.Lock()
	defer cpp.mu.Unlock()
	cpp.pbp.printToTTYAlways = true
}

// AddCopy registers a copy from r to w, labeled for display, with size the
// expected total number of bytes r will yield. It must be called before
// PrintAndWait starts running.
func (cpp *CopyProgressPrinter) AddCopy(r io.Reader, label string, size int64, w io.Writer) error {
	cpp.mu.Lock()
	defer cpp.mu.Unlock()
	if cpp.started {
		return ErrAlreadyStarted
	}
	job := &copyJob{r: r, label: label, size: size, w: w}
	job.r = &countingReader{r: r, counter: &job.copied}
	cpp.jobs = append(cpp.jobs, job)
	return nil
}

// PrintAndWait runs every registered copy concurrently, printing a redrawn
// block of progress bars to w every interval, until all copies complete, one
// fails, or cancel fires. It may only be called once per CopyProgressPrinter.
func (cpp *CopyProgressPrinter) PrintAndWait(w io.Writer, interval time.Duration, cancel <-chan struct{}) error {
	cpp.mu.Lock()
	if cpp.started {
		cpp.mu.Unlock()
		return ErrAlreadyStarted
	}
	cpp.started = true
	jobs := cpp.jobs
	cpp.mu.Unlock()

	isTTY := cpp.pbp.printToTTYAlways

	errCh := make(chan error, len(jobs))
	for _, j := range jobs {
		go func(j *copyJob) {
			_, err := io.Copy(j.w, j.r)
			errCh <- err
		}(j)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	printed := false
	render := func() {
		if !isTTY {
			return
		}
		lines := make([]string, len(jobs))
		for i, j := range jobs {
			copied := atomic.LoadInt64(&j.copied)
			frac := 0.0
			if j.size > 0 {
				frac = float64(copied) / float64(j.size)
			}
			sizeStr := ByteUnitStr(copied) + " / " + ByteUnitStr(j.size)
			lines[i] = renderBar(barWidth, j.label, frac, sizeStr)
		}
		if printed {
			fmt.Fprintf(w, "\033[%dA", len(lines))
		}
		for _, l := range lines {
			fmt.Fprintf(w, "%s\n", l)
		}
		printed = true
	}

	remaining := len(jobs)
	for {
		select {
		case err := <-errCh:
			remaining--
			if err != nil {
				return err
			}
			if remaining == 0 {
				render()
				return nil
			}
		case <-ticker.C:
			render()
		case <-cancel:
			return nil
		}
	}
}

const barWidth = 80

// renderBar formats a single progress line: a label, a filled/empty bracketed
// bar, a percentage, and a trailing size string.
func renderBar(width int, label string, frac float64, sizeString string) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	prefix := label + " ["
	suffix := fmt.Sprintf("] %5.1f%% %s", frac*100, sizeString)
	fillWidth := width - len(prefix) - len(suffix)
	if fillWidth < 1 {
		fillWidth = 1
	}
	filled := int(frac * float64(fillWidth))
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", fillWidth-filled)
	return prefix + bar + suffix
}

var byteUnits = [...]string{"B", "KB", "MB", "GB", "TB", "PB"}

// ByteUnitStr renders a byte count using the largest unit that keeps the
// mantissa >= 1, e.g. 1536 -> "1.5 KB".
func ByteUnitStr(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d %s", n, byteUnits[0])
	}
	f := float64(n)
	i := 0
	for f >= 1024 && i < len(byteUnits)-1 {
		f /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", f, byteUnits[i])
}
