package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	textio "github.com/libcmp/ccl-sub001"
	"github.com/libcmp/ccl-sub001/console"
)

// run opens the endpoints named by in and out and transcodes between them.
// "-" selects the console.
func run(cfg *config, in, out string) (n int64, err error) {
	from, err := textio.LookupEncoding(cfg.From)
	if err != nil {
		return 0, err
	}
	to, err := textio.LookupEncoding(cfg.To)
	if err != nil {
		return 0, err
	}

	var ctx *console.Context
	if in == "-" || out == "-" {
		ccfg := consoleConfig(cfg)
		ccfg.InputEncoding, ccfg.OutputEncoding = from.String(), to.String()
		ccfg.DetectBOM, ccfg.WriteBOM = cfg.DetectBOM, cfg.BOM
		if ctx, err = console.Open(ccfg); err != nil {
			return 0, err
		}
		defer func() {
			if cerr := ctx.Close(); err == nil {
				err = cerr
			}
		}()
	}

	var ropts, wopts []textio.Option
	if cfg.DetectBOM {
		ropts = append(ropts, textio.WithBOMDetection())
	}
	if cfg.BOM {
		wopts = append(wopts, textio.WithBOM())
	}

	var r *textio.Reader
	if in == "-" {
		r = ctx.In
	} else {
		f, err := os.Open(in)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		input, err := textio.NewInput(f, cfg.Buffer)
		if err != nil {
			return 0, err
		}
		if r, err = textio.NewReader(input, from, ropts...); err != nil {
			return 0, err
		}
	}

	var w *textio.Writer
	if out == "-" {
		w = ctx.Out
	} else {
		f, err := os.Create(out)
		if err != nil {
			return 0, err
		}
		output, err := textio.NewOutput(f, cfg.Buffer)
		if err != nil {
			f.Close()
			return 0, err
		}
		defer func() {
			if cerr := output.Close(); err == nil {
				err = cerr
			}
		}()
		if w, err = textio.NewWriter(output, to, wopts...); err != nil {
			return 0, err
		}
	}

	return transcode(r, w)
}

// consoleConfig returns a copy of the console section with the -buf size
// filling any stream buffer it leaves unset.
func consoleConfig(cfg *config) *console.Config {
	ccfg := console.DefaultConfig()
	if cfg.Console != nil {
		c := *cfg.Console
		ccfg = &c
	}
	size := cfg.Buffer
	if size == 0 {
		size = console.Unbuffered
	}
	if cfg.Console == nil || ccfg.InputBuffer == 0 {
		ccfg.InputBuffer = size
	}
	if cfg.Console == nil || ccfg.OutputBuffer == 0 {
		ccfg.OutputBuffer = size
	}
	return ccfg
}

// transcode copies every code point from r to w and flushes w. It returns
// the number of code points written.
func transcode(r *textio.Reader, w *textio.Writer) (int64, error) {
	var runes [512]rune
	var n int64
	for {
		k, err := r.ReadRunes(runes[:])
		if k > 0 {
			if _, werr := w.WriteRunes(runes[:k]); werr != nil {
				return n, werr
			}
			n += int64(k)
		}
		if errors.Is(err, io.EOF) {
			return n, w.Flush()
		}
		if err != nil {
			return n, fmt.Errorf("input offset %d: %w", r.Tell(), err)
		}
	}
}
