package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// MaxUploadBytes caps accepted image payloads at 5MB.
	MaxUploadBytes = 5 << 20

	uploadFolder = "tutorials"
	maxDimension = 1600
	jpegQuality  = 85
)

var (
	ErrTooLarge        = errors.New("image exceeds maximum size")
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrNotConfigured   = errors.New("object storage not configured")
)

// UploadResult is the normalized provider response.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
}

// Uploader validates, bounds and forwards images to an object store under a
// fixed folder.
type Uploader struct {
	store ObjectStore
}

func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{store: store}
}

// UploadImage sniffs the mimetype, decodes, scales the image down to fit
// maxDimension when needed, re-encodes and stores it.
func (u *Uploader) UploadImage(ctx context.Context, data []byte) (UploadResult, error) {
	if u.store == nil {
		return UploadResult{}, ErrNotConfigured
	}
	if len(data) > MaxUploadBytes {
		return UploadResult{}, ErrTooLarge
	}
	mimetype := http.DetectContentType(data)
	if !strings.HasPrefix(mimetype, "image/") {
		return UploadResult{}, ErrUnsupportedType
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return UploadResult{}, ErrUnsupportedType
	}
	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
		bounds = img.Bounds()
	}

	format, ext, contentType := encodingFor(mimetype)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return UploadResult{}, fmt.Errorf("encode image: %w", err)
	}

	key := uploadFolder + "/" + uuid.NewString() + ext
	if err := u.store.Put(ctx, key, contentType, bytes.NewReader(buf.Bytes())); err != nil {
		return UploadResult{}, err
	}

	return UploadResult{
		URL:      u.store.PublicURL(key),
		PublicID: key,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Format:   ext[1:],
		Bytes:    int64(buf.Len()),
	}, nil
}

// Delete removes a previously uploaded object by its public id.
func (u *Uploader) Delete(ctx context.Context, publicID string) error {
	if u.store == nil {
		return ErrNotConfigured
	}
	if publicID == "" || strings.Contains(publicID, "..") {
		return ErrObjectNotFound
	}
	return u.store.Delete(ctx, publicID)
}

// encodingFor keeps PNG and GIF lossless; everything else becomes JPEG.
func encodingFor(mimetype string) (imaging.Format, string, string) {
	switch mimetype {
	case "image/png":
		return imaging.PNG, ".png", "image/png"
	case "image/gif":
		return imaging.GIF, ".gif", "image/gif"
	default:
		return imaging.JPEG, ".jpg", "image/jpeg"
	}
}
