package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
	"github.com/pierrec/lz4/v4"
)

// Stdin is the location naming standard input.
const Stdin = "-"

// S3Scheme prefixes object store locations.
const S3Scheme = "s3://"

var (
	// ErrNotFound is returned when the location does not exist.
	// It maps to os.ErrNotExist so local and remote misses compare equal.
	ErrNotFound = os.ErrNotExist

	// ErrInvalidLocation is returned for malformed s3:// locations.
	ErrInvalidLocation = errors.New("invalid location")
)

// Open returns a reader for the MCS data at location.
// The caller must Close the returned handle.
//
// Example:
//
//	rc, err := source.Open(ctx, "firmware.mcs")
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
func Open(ctx context.Context, location string, opts ...Option) (io.ReadCloser, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		raw  io.ReadCloser
		name = location
		err  error
	)
	switch {
	case location == Stdin:
		raw = io.NopCloser(cfg.Stdin)
	case strings.HasPrefix(location, S3Scheme):
		var bucket string
		bucket, name, err = ParseS3Location(location)
		if err != nil {
			return nil, err
		}
		raw, err = openObject(ctx, cfg, bucket, name)
	default:
		raw, err = os.Open(location)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", location, err)
	}

	rc, err := decompress(raw, name)
	if err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("open %s: %w", location, err)
	}
	return rc, nil
}

// ParseS3Location splits s3://bucket/key into its bucket and key.
func ParseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("%w: scheme %q, expected s3", ErrInvalidLocation, u.Scheme)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs both bucket and key", ErrInvalidLocation, location)
	}
	return bucket, key, nil
}

func openObject(ctx context.Context, cfg Config, bucket, key string) (io.ReadCloser, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  cfg.Credentials,
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; Stat surfaces a missing key before the first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" || errResp.Code == "NotFound" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return obj, nil
}

// decompress wraps raw according to the extension of name.
func decompress(raw io.ReadCloser, name string) (io.ReadCloser, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(raw)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &stack{Reader: zr, closers: []func() error{raw.Close, zr.Close}}, nil

	case ".zst", ".zstd":
		zr, err := zstd.NewReader(raw)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &stack{Reader: zr, closers: []func() error{raw.Close, func() error {
			zr.Close()
			return nil
		}}}, nil

	case ".lz4":
		return &stack{Reader: lz4.NewReader(raw), closers: []func() error{raw.Close}}, nil

	default:
		return raw, nil
	}
}

// stack is a reader layered over other resources. Close releases them in
// reverse order of acquisition and reports every failure.
type stack struct {
	io.Reader
	closers []func() error
}

func (s *stack) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
