package block

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	// Packages
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	blob "gocloud.dev/blob"
	gcerrors "gocloud.dev/gcerrors"

	// Drivers
	_ "gocloud.dev/blob/fileblob" // file:// URLs
	_ "gocloud.dev/blob/memblob"  // mem:// URLs
	_ "gocloud.dev/blob/s3blob"   // s3:// URLs
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Store is the content-addressed block store (C1): persist and retrieve
// blocks and their cmptype/uncmplen sidecar metadata under a fan-out
// directory layout.
type Store struct {
	bucket  *blob.Bucket
	level   int
	fileDir string // non-empty only for file:// backends, used by Init to pre-create directories
}

var _ io.Closer = (*Store)(nil)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New opens a block store against a gocloud.dev/blob URL. Supported
// schemes: file://, mem://, s3://. level is the fan-out tree depth and must
// be in [MinFanoutLevel, MaxFanoutLevel].
func New(ctx context.Context, rawURL string, level int, opts ...Opt) (*Store, error) {
	if level < schema.MinFanoutLevel || level > schema.MaxFanoutLevel {
		return nil, httpresponse.ErrBadRequest.Withf("fanout level %d outside allowed range [%d,%d]", level, schema.MinFanoutLevel, schema.MaxFanoutLevel)
	}

	o, err := applyOpts(opts)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid block store url %q: %w", rawURL, err)
	}

	self := &Store{level: level}
	if u.Scheme == "s3" && o.bucketOpener != nil {
		bucket, err := o.bucketOpener(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("failed to open bucket: %w", err)
		}
		self.bucket = bucket
	} else {
		bucket, err := blob.OpenBucket(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open bucket: %w", err)
		}
		self.bucket = bucket
	}
	if u.Scheme == "file" {
		self.fileDir = u.Path
	}

	return self, nil
}

// Close releases the underlying bucket.
func (s *Store) Close() error {
	if s.bucket == nil {
		return nil
	}
	err := s.bucket.Close()
	s.bucket = nil
	return err
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Init idempotently pre-creates the fan-out directory tree. For file://
// backends this eagerly creates every directory at the configured level
// (matching the original implementation's behavior, level 2 = 65,536
// directories, level 3 and 4 grow by a further factor of 256 each —
// operators should prefer level 2 unless the corpus is very large). For
// other backends the tree is implicit in blob keys and Init only writes the
// completion sentinel.
func (s *Store) Init(ctx context.Context) error {
	done, err := s.bucket.Exists(ctx, doneKey)
	if err != nil {
		return blockErr(err, doneKey)
	}
	if done {
		return nil
	}

	if s.fileDir != "" {
		for _, dir := range fanoutDirs(s.level) {
			if err := os.MkdirAll(filepath.Join(s.fileDir, dataPrefix, dir), 0o755); err != nil {
				return fmt.Errorf("failed to create fan-out directory %q: %w", dir, err)
			}
		}
	}

	if err := s.bucket.WriteAll(ctx, doneKey, []byte("1"), nil); err != nil {
		return blockErr(err, doneKey)
	}
	return nil
}

// Put stores a block, writing the sidecar meta before the data so a reader
// racing the write never observes data without matching metadata.
func (s *Store) Put(ctx context.Context, b schema.Block) error {
	mk := metaKey(b.Hash, s.level)
	dk := dataKey(b.Hash, s.level)

	if err := s.bucket.WriteAll(ctx, mk, encodeMeta(b.Cmptype, b.Uncmplen), nil); err != nil {
		return blockErr(err, mk)
	}
	if err := s.bucket.WriteAll(ctx, dk, b.Data, nil); err != nil {
		return blockErr(err, dk)
	}
	return nil
}

// Get retrieves a block. Returns an ErrNotFound-kind error when the hash is
// unknown.
func (s *Store) Get(ctx context.Context, h schema.Hash) (schema.Block, error) {
	dk := dataKey(h, s.level)
	data, err := s.bucket.ReadAll(ctx, dk)
	if err != nil {
		return schema.Block{}, blockErr(err, dk)
	}

	cmptype, uncmplen := schema.CompressNone, int64(0)
	if meta, err := s.bucket.ReadAll(ctx, metaKey(h, s.level)); err == nil {
		cmptype, uncmplen = decodeMeta(meta)
	}

	return schema.Block{
		Hash:     h,
		Data:     data,
		Size:     uint64(len(data)),
		Cmptype:  cmptype,
		Uncmplen: uncmplen,
	}, nil
}

// Exists reports whether a block is already stored.
func (s *Store) Exists(ctx context.Context, h schema.Hash) (bool, error) {
	ok, err := s.bucket.Exists(ctx, dataKey(h, s.level))
	if err != nil {
		return false, blockErr(err, dataKey(h, s.level))
	}
	return ok, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func blockErr(err error, ref string) error {
	if err == nil {
		return nil
	}
	switch gcerrors.Code(err) {
	case gcerrors.NotFound:
		return httpresponse.ErrNotFound.Withf("block %q not found", ref)
	case gcerrors.PermissionDenied:
		return httpresponse.ErrForbidden.Withf("permission denied for %q", ref)
	case gcerrors.InvalidArgument:
		return httpresponse.ErrBadRequest.Withf("invalid argument for %q: %v", ref, err)
	case gcerrors.FailedPrecondition:
		return httpresponse.ErrConflict.Withf("precondition failed for %q: %v", ref, err)
	default:
		if errors.Is(err, io.EOF) {
			return httpresponse.ErrNotFound.Withf("block %q not found", ref)
		}
		return httpresponse.ErrInternalError.Withf("block store operation failed: %v", err)
	}
}
