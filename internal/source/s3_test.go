// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkdiff/pkdiff/internal/config"
)

type fakeS3 struct {
	body   string
	err    error
	inputs []*s3v2.GetObjectInput
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

// useCache points the cache at a temp dir and runs without a config file.
func useCache(t *testing.T) {
	t.Helper()
	t.Setenv("PKDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("PKDIFF_CACHE", "1")
	t.Setenv("PKDIFF_CFG_FILE", "")
	saved := config.Config
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = saved })
}

func TestS3Source_ParsesURL(t *testing.T) {
	src, err := New("s3://lab-dumps/runs/42/db.txt?versionId=abc")
	require.NoError(t, err)

	s3src, ok := src.(*s3Source)
	require.True(t, ok)
	assert.Equal(t, "lab-dumps", s3src.bucket)
	assert.Equal(t, "runs/42/db.txt", s3src.key)
	assert.Equal(t, "abc", s3src.version)
}

func TestS3Source_Unversioned(t *testing.T) {
	useCache(t)
	fake := &fakeS3{body: "A\n"}

	src, err := New("s3://b/db.txt", WithS3Client(fake))
	require.NoError(t, err)

	assert.Equal(t, "A\n", readAll(t, src))
	assert.Equal(t, "A\n", readAll(t, src))

	// Unpinned objects are fetched every time.
	require.Len(t, fake.inputs, 2)
	assert.Equal(t, "b", awsv2.ToString(fake.inputs[0].Bucket))
	assert.Equal(t, "db.txt", awsv2.ToString(fake.inputs[0].Key))
	assert.Nil(t, fake.inputs[0].VersionId)
}

func TestS3Source_VersionedIsCached(t *testing.T) {
	useCache(t)
	fake := &fakeS3{body: "A\n\t0.1\t1\n"}

	src, err := New("s3://b/db.txt?versionId=v7", WithS3Client(fake))
	require.NoError(t, err)

	assert.Equal(t, "A\n\t0.1\t1\n", readAll(t, src))
	require.Len(t, fake.inputs, 1)
	assert.Equal(t, "v7", awsv2.ToString(fake.inputs[0].VersionId))

	// A second source for the same version is served from disk.
	again, err := New("s3://b/db.txt?versionId=v7", WithS3Client(fake))
	require.NoError(t, err)
	assert.Equal(t, "A\n\t0.1\t1\n", readAll(t, again))
	assert.Len(t, fake.inputs, 1)
}

func TestS3Source_CacheDisabled(t *testing.T) {
	useCache(t)
	t.Setenv("PKDIFF_CACHE", "0")
	fake := &fakeS3{body: "A\n"}

	for range 2 {
		src, err := New("s3://b/db.txt?versionId=v1", WithS3Client(fake))
		require.NoError(t, err)
		readAll(t, src)
	}

	assert.Len(t, fake.inputs, 2)
}

func TestS3Source_GetError(t *testing.T) {
	useCache(t)
	fake := &fakeS3{err: errors.New("access denied")}

	src, err := New("s3://b/db.txt", WithS3Client(fake))
	require.NoError(t, err)

	_, err = src.Open(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get S3 object")
	assert.Contains(t, err.Error(), "access denied")
}
