// Package upload validates multipart images and hands them to a blob store,
// returning the public reference a product document embeds.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/metrics"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// MaxGalleryFiles bounds a single gallery submission.
	MaxGalleryFiles = 12

	// PublicPath is where stored files are served from.
	PublicPath = "/public/uploads"
)

var (
	ErrNoFile          = fmt.Errorf("%w: image file is required", domain.ErrValidation)
	ErrUnsupportedType = fmt.Errorf("%w: invalid image type", domain.ErrValidation)
	ErrTooManyFiles    = fmt.Errorf("%w: at most %d images per request", domain.ErrValidation, MaxGalleryFiles)
	ErrTooLarge        = fmt.Errorf("%w: image is too large", domain.ErrValidation)
)

// accepted maps declared MIME types to the stored file extension.
var accepted = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// BlobStore persists bytes under a name chosen by the Mediator.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader) error
}

type Mediator struct {
	store    BlobStore
	baseURL  string
	maxBytes int64
	now      func() time.Time
	suffix   func() string
}

func NewMediator(store BlobStore, baseURL string, maxBytes int64) *Mediator {
	return &Mediator{
		store:    store,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
		suffix:   func() string { return uuid.NewString()[:8] },
	}
}

type prepared struct {
	name string
	data []byte
}

// Save validates and stores one file, returning its public URL.
func (m *Mediator) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	refs, err := m.SaveAll(ctx, []*multipart.FileHeader{fh})
	if err != nil {
		return "", err
	}
	return refs[0], nil
}

// SaveAll validates every file before storing any of them. References are
// returned in submission order.
func (m *Mediator) SaveAll(ctx context.Context, fhs []*multipart.FileHeader) ([]string, error) {
	if len(fhs) == 0 || fhs[0] == nil {
		return nil, ErrNoFile
	}
	if len(fhs) > MaxGalleryFiles {
		metrics.UploadsTotal.WithLabelValues("rejected").Add(float64(len(fhs)))
		return nil, ErrTooManyFiles
	}

	files := make([]prepared, 0, len(fhs))
	for _, fh := range fhs {
		p, err := m.prepare(fh)
		if err != nil {
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		files = append(files, p)
	}

	refs := make([]string, 0, len(files))
	for _, f := range files {
		if err := m.store.Put(ctx, f.name, bytes.NewReader(f.data)); err != nil {
			return nil, fmt.Errorf("store %s: %w", f.name, err)
		}
		metrics.UploadsTotal.WithLabelValues("accepted").Inc()
		refs = append(refs, m.baseURL+PublicPath+"/"+url.PathEscape(f.name))
	}
	return refs, nil
}

func (m *Mediator) prepare(fh *multipart.FileHeader) (prepared, error) {
	declared, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return prepared{}, ErrUnsupportedType
	}
	ext, ok := accepted[declared]
	if !ok {
		return prepared{}, ErrUnsupportedType
	}
	if m.maxBytes > 0 && fh.Size > m.maxBytes {
		return prepared{}, ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return prepared{}, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return prepared{}, fmt.Errorf("read upload: %w", err)
	}

	// image/jpg is not a registered type; the content sniffs as image/jpeg.
	want := declared
	if want == "image/jpg" {
		want = "image/jpeg"
	}
	if !mimetype.Detect(data).Is(want) {
		return prepared{}, ErrUnsupportedType
	}

	return prepared{name: m.fileName(fh.Filename, ext), data: data}, nil
}

func (m *Mediator) fileName(original, ext string) string {
	base := filepath.Base(original)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Join(strings.Fields(base), "-")
	if base == "" || base == "." {
		base = "image"
	}
	return fmt.Sprintf("%s-%d-%s.%s", base, m.now().UnixMilli(), m.suffix(), ext)
}
