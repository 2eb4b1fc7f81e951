// Package etlcloud stores and reads encoded output in gocloud.dev buckets.
package etlcloud

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gocloud.dev/blob"

	"github.com/stdiopt/criteria/etl"
	"github.com/stdiopt/criteria/etl/etlio"
)

type putOptions struct {
	ContentType string
}

// PutOptFunc configures a put.
type PutOptFunc func(*putOptions)

// WithContentType sets the content type of the stored object.
func WithContentType(ct string) PutOptFunc {
	return func(o *putOptions) {
		o.ContentType = ct
	}
}

func makePutOptions(opts ...PutOptFunc) putOptions {
	o := putOptions{}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// BlobPutObject opens the bucket at bucketURL and writes every []byte of it
// to the object key. The bucket driver must be registered by the caller, i.e
// importing gocloud.dev/blob/fileblob.
func BlobPutObject(ctx context.Context, bucketURL, key string, it etl.Iter, opts ...PutOptFunc) error {
	b, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		it.Close()
		return fmt.Errorf("etlcloud.BlobPutObject: %w", err)
	}
	defer b.Close()
	return BlobWrite(ctx, b, key, it, opts...)
}

// BlobWrite writes every []byte of it to the object key of b and closes it.
// The object is only committed if the whole iterator was written.
func BlobWrite(ctx context.Context, b *blob.Bucket, key string, it etl.Iter, opts ...PutOptFunc) error {
	o := makePutOptions(opts...)

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := b.NewWriter(wctx, key, &blob.WriterOptions{ContentType: o.ContentType})
	if err != nil {
		it.Close()
		return fmt.Errorf("etlcloud.BlobWrite: %w", err)
	}
	if err := etlio.WriteTo(ctx, it, w); err != nil {
		// cancelling the writer context aborts the upload.
		cancel()
		w.Close()
		return fmt.Errorf("etlcloud.BlobWrite %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("etlcloud.BlobWrite %q: %w", key, err)
	}
	return nil
}

// BlobGetObject returns an iterator of []byte chunks of the object key in
// the bucket at bucketURL.
func BlobGetObject(bucketURL, key string) etl.Iter {
	var (
		b  *blob.Bucket
		rd *blob.Reader
	)
	closeAll := func() error {
		var errs []error
		if rd != nil {
			errs = append(errs, rd.Close())
		}
		if b != nil {
			errs = append(errs, b.Close())
		}
		return errors.Join(errs...)
	}
	eof := false
	return etl.MakeIter(etl.Custom[[]byte]{
		Next: func(ctx context.Context) ([]byte, error) {
			if eof {
				return nil, etl.EOI
			}
			if b == nil {
				var err error
				if b, err = blob.OpenBucket(ctx, bucketURL); err != nil {
					return nil, fmt.Errorf("etlcloud.BlobGetObject: %w", err)
				}
			}
			if rd == nil {
				var err error
				if rd, err = b.NewReader(ctx, key, nil); err != nil {
					return nil, fmt.Errorf("etlcloud.BlobGetObject %q: %w", key, err)
				}
			}
			buf := make([]byte, 32*1024)
			n, err := rd.Read(buf)
			switch {
			case errors.Is(err, io.EOF):
				eof = true
				if n == 0 {
					return nil, etl.EOI
				}
			case err != nil:
				return nil, err
			}
			return buf[:n], nil
		},
		Close: closeAll,
	})
}
