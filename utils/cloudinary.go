package utils

import (
	"context"
	"errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrUploadsDisabled = errors.New("photo uploads are not configured")

// Uploader stores professional photos on Cloudinary.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	preset string
}

// NewUploader returns a disabled uploader when credentials are missing.
func NewUploader(cloudName, apiKey, apiSecret, preset string) (*Uploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return &Uploader{}, nil
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Uploader{cld: cld, preset: preset}, nil
}

// UploadPhoto uploads file (a path, URL or io.Reader) and returns the secure URL.
func (u *Uploader) UploadPhoto(ctx context.Context, file interface{}, publicID string) (string, error) {
	if u == nil || u.cld == nil {
		return "", ErrUploadsDisabled
	}
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "professionals",
		UploadPreset:   u.preset,
		Transformation: "c_thumb,w_200,h_200",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}
