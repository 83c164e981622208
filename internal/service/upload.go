package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"maitri-medico/internal/metrics"
	"maitri-medico/internal/storage"

	"github.com/shopspring/decimal"
)

// Upload is an image file received with a request.
type Upload struct {
	Filename string
	Data     []byte
}

// ProductFields carries optionally specified product fields. Nil means unspecified.
type ProductFields struct {
	Name     *string
	Price    *decimal.Decimal
	Category *string
	Image    *string
}

func (f ProductFields) complete() bool {
	return f.Name != nil && f.Price != nil && f.Category != nil
}

// nonEmpty maps "" to nil.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// putUpload checks the file is an image and stores it. Non-images are a
// validation error; store failures are a dependency failure.
func putUpload(ctx context.Context, store storage.ObjectStore, up *Upload) (*storage.Asset, error) {
	if len(up.Data) == 0 {
		return nil, invalid("image file is empty")
	}
	mime, ext, err := storage.SniffImage(up.Data)
	if err != nil {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		if errors.Is(err, storage.ErrNotImage) {
			return nil, invalid("file is not a supported image type")
		}
		return nil, invalid("unreadable image: %v", err)
	}

	base := strings.TrimSuffix(filepath.Base(up.Filename), filepath.Ext(up.Filename))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}

	asset, err := store.Upload(ctx, bytes.NewReader(up.Data), base+"."+ext, mime)
	if err != nil {
		metrics.Uploads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: upload image: %v", ErrDependencyFailure, err)
	}
	metrics.Uploads.WithLabelValues("ok").Inc()
	return asset, nil
}
