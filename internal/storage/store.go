package storage

import (
	"context"
	"errors"
	"io"

	"maitri-medico/internal/metrics"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
)

// ErrNotImage is returned by SniffImage for content that is not a known image format.
var ErrNotImage = errors.New("uploaded file is not a supported image")

// Asset is an uploaded object: a public URL plus the opaque handle used to delete it.
type Asset struct {
	URL    string
	Handle string
}

// ObjectStore hosts product images.
type ObjectStore interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (*Asset, error)
	Retire(ctx context.Context, handle string) error
}

// SniffImage detects the image type from the leading bytes of data and
// returns its MIME type and extension.
func SniffImage(data []byte) (mime string, ext string, err error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return "", "", ErrNotImage
	}
	return kind.MIME.Value, kind.Extension, nil
}

// RetireBestEffort deletes handle from store and only logs on failure.
// Losing track of an orphaned asset is acceptable; blocking a committed
// state change on it is not.
func RetireBestEffort(ctx context.Context, store ObjectStore, handle, op, requestID string) {
	if handle == "" {
		return
	}
	if err := store.Retire(ctx, handle); err != nil {
		metrics.RetireFailures.WithLabelValues(op).Inc()
		zap.L().Warn("failed to retire asset",
			zap.String("handle", handle),
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}
