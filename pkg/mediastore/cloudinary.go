package mediastore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ujjwal3492/Fitness/pkg/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// cloudinaryAPI is the part of the cloudinary upload API the backend uses
type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryBackend stores media on Cloudinary. Cloudinary needs the
// resource type to destroy an asset, so media ids have the form
// "<resource type>:<public id>".
type CloudinaryBackend struct {
	api    cloudinaryAPI
	folder string
}

var _ Backend = (*CloudinaryBackend)(nil)

// NewCloudinaryBackend creates a Cloudinary client from account credentials
func NewCloudinaryBackend(cfg config.CloudinaryConfig) (*CloudinaryBackend, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("new cloudinary client: %w", err)
	}
	return &CloudinaryBackend{api: &cld.Upload, folder: cfg.Folder}, nil
}

func (b *CloudinaryBackend) Name() string { return "cloudinary" }

func (b *CloudinaryBackend) Put(ctx context.Context, localPath string) (*Asset, error) {
	res, err := b.api.Upload(ctx, localPath, uploader.UploadParams{
		ResourceType: "auto",
		Folder:       b.folder,
	})
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("upload: %s", res.Error.Message)
	}
	if res.PublicID == "" {
		return nil, errors.New("upload: response is missing public id")
	}

	resourceType := res.ResourceType
	if resourceType == "" {
		resourceType = "image"
	}

	return &Asset{
		MediaID: resourceType + ":" + res.PublicID,
		URL:     res.SecureURL,
	}, nil
}

func (b *CloudinaryBackend) Remove(ctx context.Context, mediaID string) error {
	resourceType, publicID, ok := strings.Cut(mediaID, ":")
	if !ok || resourceType == "" || publicID == "" {
		return fmt.Errorf("%w: %q", ErrInvalidMediaID, mediaID)
	}

	res, err := b.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("destroy: %s", res.Error.Message)
	}
	if res.Result != "ok" {
		return fmt.Errorf("destroy: unexpected result %q", res.Result)
	}
	return nil
}
