// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	awsx "github.com/pkdiff/pkdiff/internal/aws"
)

// Stdin is the argument that selects standard input.
const Stdin = "-"

// StdinPath also selects standard input. The command line maps a lone "-" to
// it before flag parsing.
const StdinPath = "/dev/stdin"

// Source is a readable dump location.
type Source interface {
	// Open returns the dump body. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
	// String names the source in messages and reports.
	String() string
}

type options struct {
	stdin   io.Reader
	client  GetObjectAPI
	awsOpts []awsx.Option
}

// Option customizes how a Source is built.
type Option func(*options)

// WithStdin replaces os.Stdin as the reader behind "-".
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// WithS3Client supplies the client used for s3:// sources instead of one
// built from the AWS default chain.
func WithS3Client(c GetObjectAPI) Option {
	return func(o *options) { o.client = c }
}

// WithAWS passes options through to the AWS config loader.
func WithAWS(opts ...awsx.Option) Option {
	return func(o *options) { o.awsOpts = append(o.awsOpts, opts...) }
}

// New resolves spec into a Source.
func New(spec string, opts ...Option) (Source, error) {
	o := options{stdin: os.Stdin}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case spec == "":
		return nil, errors.New("empty dump path")
	case IsStdin(spec):
		return &stdinSource{r: o.stdin}, nil
	case strings.HasPrefix(spec, s3Scheme):
		return newS3Source(spec, o)
	default:
		return fileSource(spec), nil
	}
}

// IsStdin reports whether spec selects standard input.
func IsStdin(spec string) bool {
	return spec == Stdin || spec == StdinPath
}

type fileSource string

func (f fileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f fileSource) String() string {
	return string(f)
}

type stdinSource struct {
	r io.Reader
}

func (s *stdinSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(s.r), nil
}

func (s *stdinSource) String() string {
	return "<stdin>"
}
