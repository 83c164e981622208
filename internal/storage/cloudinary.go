package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore keeps images in a Cloudinary folder. The handle is the public id.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (*Asset, error) {
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload %s: %s", filename, resp.Error.Message)
	}
	if resp.PublicID == "" {
		return nil, errors.New("cloudinary upload: empty public id")
	}
	return &Asset{URL: resp.SecureURL, Handle: resp.PublicID}, nil
}

// Retire destroys the asset. A missing asset counts as retired.
func (s *CloudinaryStore) Retire(ctx context.Context, handle string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     handle,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", handle, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", handle, resp.Error.Message)
	}
	switch resp.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("cloudinary destroy %s: result %q", handle, resp.Result)
	}
}
