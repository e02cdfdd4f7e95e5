// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkdiff/pkdiff/internal/log"
	"github.com/pkdiff/pkdiff/internal/source"
)

// Separator splits a score line into its score and branch tokens.
const Separator = "\t"

// maxLineSize bounds a single dump line. Headers are k-mers and score lines
// are two numbers, so anything near this is corrupt input.
const maxLineSize = 1 << 20

// ctxCheckEvery is how many lines are parsed between context checks.
const ctxCheckEvery = 4096

// Load opens the dump named by spec (a local path, "-" or an s3:// URL) and
// parses it.
func Load(ctx context.Context, spec string, opts ...source.Option) (*Dataset, error) {
	src, err := source.New(spec, opts...)
	if err != nil {
		return nil, err
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer rc.Close()

	return ParseContext(ctx, rc, src.String())
}

// Parse reads a dump from r. name identifies the input in errors.
func Parse(r io.Reader, name string) (*Dataset, error) {
	return ParseContext(context.Background(), r, name)
}

// ParseContext is Parse with cancellation between lines.
func ParseContext(ctx context.Context, r io.Reader, name string) (*Dataset, error) {
	cr := &countingReader{r: r}
	p := newParser(name)

	scanner := bufio.NewScanner(cr)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if p.line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := p.feed(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			p.line++
			return nil, p.errorf("", ReasonTooLong, err)
		}
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}

	ds, err := p.finish()
	if err != nil {
		return nil, err
	}
	ds.size = cr.n

	log.Debugf("loaded %s: sequences=%d entries=%d bytes=%d", name, ds.Len(), ds.Entries(), ds.size)
	return ds, nil
}

// parser is the loader state machine. current is nil until the first header
// has been seen and afterwards points at the block of the most recent one.
type parser struct {
	ds      *Dataset
	current *Scores
	line    int
}

func newParser(name string) *parser {
	return &parser{ds: newDataset(name)}
}

// feed consumes one raw line. Lines are classified before the tokens are
// trimmed so a trailing separator still marks a score line.
func (p *parser) feed(raw string) error {
	p.line++

	text := strings.TrimRight(strings.TrimLeftFunc(raw, unicode.IsSpace), " \r\n")
	if text == "" {
		return nil
	}

	switch strings.Count(text, Separator) {
	case 0:
		text = strings.TrimSpace(text)
		p.current = p.ds.open(text)
		log.Tracef("%s:%d: header %s", p.ds.Name, p.line, text)
		return nil
	case 1:
		return p.score(text)
	default:
		return p.errorf(text, ReasonAmbiguous, nil)
	}
}

func (p *parser) score(text string) error {
	if p.current == nil {
		return p.errorf(text, ReasonNoHeader, nil)
	}

	scoreTok, branchTok, _ := strings.Cut(text, Separator)

	score, err := strconv.ParseFloat(strings.TrimSpace(scoreTok), 64)
	if err != nil {
		return p.errorf(text, ReasonScore, err)
	}

	branch, err := strconv.ParseUint(strings.TrimSpace(branchTok), 10, 32)
	if err != nil {
		return p.errorf(text, ReasonBranch, err)
	}

	p.current.set(Branch(branch), score)
	return nil
}

func (p *parser) finish() (*Dataset, error) {
	if p.ds.Len() == 0 {
		return nil, &EmptyInputError{File: p.ds.Name}
	}
	return p.ds, nil
}

func (p *parser) errorf(text, reason string, err error) error {
	return &ParseError{
		File:   p.ds.Name,
		Line:   p.line,
		Text:   text,
		Reason: reason,
		Err:    err,
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.n += int64(n)
	return n, err
}
