// Package imaging validates logo and signature uploads before they are
// placed on an invoice.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for DecodeConfig
	_ "image/png"  // register decoder for DecodeConfig
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"invoiceforge/internal/domain"
)

// refNamespace scopes content-derived image references.
var refNamespace = uuid.MustParse("6f1c9a52-3b8e-4d0f-9a77-2c5e8b1d4f60")

// Embedder accepts PNG and JPEG images and produces handles whose Ref
// depends only on the image bytes.
type Embedder struct {
	maxBytes int64
	logger   *zap.Logger
}

// NewEmbedder creates an Embedder. maxBytes <= 0 disables the size limit.
func NewEmbedder(maxBytes int64, logger *zap.Logger) *Embedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{maxBytes: maxBytes, logger: logger.Named("imaging")}
}

// Embed checks the declared type against the sniffed content and reads the
// pixel dimensions. An empty mimeType is filled in from the content.
func (e *Embedder) Embed(ctx context.Context, data []byte, mimeType string) (domain.ImageHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.ImageHandle{}, err
	}
	if len(data) == 0 {
		return domain.ImageHandle{}, fmt.Errorf("%w: no image bytes", domain.ErrInvalidImage)
	}
	if e.maxBytes > 0 && int64(len(data)) > e.maxBytes {
		return domain.ImageHandle{}, fmt.Errorf("%w: %d bytes, limit %d", domain.ErrImageTooLarge, len(data), e.maxBytes)
	}

	format, err := resolveFormat(data, mimeType)
	if err != nil {
		return domain.ImageHandle{}, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.ImageHandle{}, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	handle := domain.ImageHandle{
		Ref:         uuid.NewSHA1(refNamespace, data).String(),
		Format:      format,
		PixelWidth:  cfg.Width,
		PixelHeight: cfg.Height,
		Data:        data,
	}
	e.logger.Debug("image embedded",
		zap.String("ref", handle.Ref),
		zap.String("format", string(format)),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return handle, nil
}

// resolveFormat decides the image format from the declared MIME type and
// the magic bytes. A declared type outside the allow-list is rejected
// without looking at the content.
func resolveFormat(data []byte, declared string) (domain.ImageFormat, error) {
	declared = normalizeMimeType(declared)
	detected := mimetype.Detect(data)
	sniffed, sniffOK := domain.AllowedImageTypes[detected.String()]

	if declared == "" {
		if !sniffOK {
			return "", fmt.Errorf("%w: detected %s", domain.ErrUnsupportedImageFormat, detected.String())
		}
		return sniffed, nil
	}

	want, ok := domain.AllowedImageTypes[declared]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedImageFormat, declared)
	}
	if !sniffOK {
		if strings.HasPrefix(detected.String(), "image/") {
			return "", fmt.Errorf("%w: declared %s but content is %s", domain.ErrUnsupportedImageFormat, declared, detected.String())
		}
		return "", fmt.Errorf("%w: content is not a %s image", domain.ErrInvalidImage, want)
	}
	if sniffed != want {
		return "", fmt.Errorf("%w: declared %s but content is %s", domain.ErrInvalidImage, declared, detected.String())
	}
	return want, nil
}

// normalizeMimeType lower-cases and strips parameters such as charset.
func normalizeMimeType(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.TrimSpace(s))
}
