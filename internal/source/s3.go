// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/pkdiff/pkdiff/internal/aws"
	"github.com/pkdiff/pkdiff/internal/cacheutil"
	"github.com/pkdiff/pkdiff/internal/config"
	"github.com/pkdiff/pkdiff/internal/log"
)

const s3Scheme = "s3://"

// GetObjectAPI is the slice of the S3 client a source needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

type s3Source struct {
	raw     string
	bucket  string
	key     string
	version string
	client  GetObjectAPI
	awsOpts []awsx.Option
}

func newS3Source(spec string, o options) (*s3Source, error) {
	u, err := url.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid s3 url %q: %w", spec, err)
	}

	src := &s3Source{
		raw:     spec,
		bucket:  u.Host,
		key:     strings.TrimPrefix(u.Path, "/"),
		version: u.Query().Get("versionId"),
		client:  o.client,
		awsOpts: o.awsOpts,
	}
	if src.bucket == "" || src.key == "" {
		return nil, fmt.Errorf("invalid s3 url %q: want s3://bucket/key", spec)
	}
	return src, nil
}

func (s *s3Source) String() string {
	return s.raw
}

func (s *s3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := PurgeCache(); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	if s.version != "" {
		if entry, ok := s.cacheRead(); ok {
			return io.NopCloser(bytes.NewReader(entry.Data)), nil
		}
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(s.key),
	}
	if s.version != "" {
		input.VersionId = awsv2.String(s.version)
	}

	result, err := client.GetObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	log.Debugf("fetched %s", s.raw)

	// Unpinned objects can change under us, so they are streamed and never
	// cached.
	if s.version == "" {
		return result.Body, nil
	}

	defer result.Body.Close()
	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	if err := s.cacheWrite(body); err != nil {
		log.WithError(err).Error("error writing to cache")
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (s *s3Source) s3Client(ctx context.Context) (GetObjectAPI, error) {
	if s.client != nil {
		return s.client, nil
	}
	client, err := awsx.NewS3(ctx, s.awsOpts...)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

// The cache is organized by bucket; the file name is the hashed key@version.
func (s *s3Source) cacheSubdirs() []string {
	return []string{"s3", s.bucket}
}

func (s *s3Source) cacheKey() string {
	return s.key + "@" + s.version
}

func (s *s3Source) cacheRead() (*cacheutil.Entry, bool) {
	return cacheutil.Read(s.cacheSubdirs(), s.cacheKey())
}

func (s *s3Source) cacheWrite(data []byte) error {
	return cacheutil.Write(s.cacheSubdirs(), s.cacheKey(), data)
}

// PurgeCache drops cached objects older than the configured cache.clean hours.
func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean")
	return cacheutil.Purge(cleanHours)
}
