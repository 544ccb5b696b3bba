package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadAvatar pushes an avatar image (a URL or base64 data URI) to the
// asset host, scaled to 150x150. Returns the hosted public id and URL.
func UploadAvatar(ctx context.Context, cloudinaryURL, image string) (publicID, url string, err error) {
	if cloudinaryURL == "" {
		return "", "", errors.New("cloudinary not configured")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return "", "", fmt.Errorf("cloudinary init: %w", err)
	}

	resp, err := cld.Upload.Upload(ctx, image, uploader.UploadParams{
		Folder:         "avatars",
		Transformation: "c_scale,w_150,h_150",
	})
	if err != nil {
		return "", "", fmt.Errorf("cloudinary upload: %w", err)
	}

	return resp.PublicID, resp.SecureURL, nil
}
