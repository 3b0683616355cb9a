// Copyright (c) 2025 Tablecheck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

var spinnerFrames = []string{"-", "\\", "|", "/"}

// startInlineSpinner animates text on the current line until the returned
// function is called, which clears the line again.
func startInlineSpinner(w io.Writer, text string) func() {
	cursor.Hide()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text)
			select {
			case <-stop:
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}

// statusReporter prints validation progress. On a terminal each step spins
// until it completes; otherwise steps are printed as plain lines.
type statusReporter struct {
	w    io.Writer
	tty  bool
	stop func()
}

func newStatusReporter(w io.Writer, tty bool) *statusReporter {
	return &statusReporter{w: w, tty: tty}
}

func (r *statusReporter) Progress(msg string) {
	r.finish()
	if r.tty {
		r.stop = startInlineSpinner(r.w, msg)
		return
	}
	pterm.Info.Println(msg)
}

func (r *statusReporter) Success(msg string) {
	r.finish()
	pterm.Success.Println(msg)
}

// finish stops a running spinner; safe to call repeatedly.
func (r *statusReporter) finish() {
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
}

// quietReporter discards progress, used for --json output.
type quietReporter struct{}

func (quietReporter) Progress(string) {}
func (quietReporter) Success(string)  {}
