package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/monospace/pagebuilder/internal/logging"
	"github.com/monospace/pagebuilder/pkg/interfaces"
)

const (
	// DefaultMaxUploadBytes is the upload ceiling when none is configured.
	DefaultMaxUploadBytes int64 = 10 << 20
	// DefaultPageSize bounds listings when the caller does not pick a limit.
	DefaultPageSize = 10

	defaultFetchTimeout = 30 * time.Second
)

var allowedContentTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// UploadImageRequest carries one file upload.
type UploadImageRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	UserID      *uuid.UUID
}

// UploadFromURLRequest ingests a remote file by address.
type UploadFromURLRequest struct {
	URL    string
	UserID *uuid.UUID
}

// ListImagesRequest selects a page of catalog rows. Page is 1-indexed.
// Resolution picks which rendition the convenience URL points at.
type ListImagesRequest struct {
	Page       int
	Limit      int
	Resolution Resolution
	UserID     *uuid.UUID
}

// ListResult carries one page of catalog rows plus the overall count.
type ListResult struct {
	Images     []*Image
	Total      int
	Page       int
	Limit      int
	Resolution Resolution
}

// Service exposes the media ingestion workflows.
type Service interface {
	Upload(ctx context.Context, req UploadImageRequest) (*Image, error)
	UploadFromURL(ctx context.Context, req UploadFromURLRequest) (*Image, error)
	List(ctx context.Context, req ListImagesRequest) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*Image, error)
	GetByFilename(ctx context.Context, filename string) (*Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithResizer overrides rendition derivation.
func WithResizer(resizer Resizer) ServiceOption {
	return func(s *service) {
		if resizer != nil {
			s.resizer = resizer
		}
	}
}

// WithMaxUploadBytes overrides the upload ceiling.
func WithMaxUploadBytes(limit int64) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.maxBytes = limit
		}
	}
}

// WithFetchClient overrides the HTTP client used for URL ingestion.
func WithFetchClient(client *http.Client) ServiceOption {
	return func(s *service) {
		if client != nil {
			s.fetch = client
		}
	}
}

type service struct {
	images   Repository
	store    interfaces.ObjectStorage
	resizer  Resizer
	maxBytes int64
	fetch    *http.Client
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
}

// NewService constructs an image service with the required dependencies.
func NewService(images Repository, store interfaces.ObjectStorage, opts ...ServiceOption) Service {
	s := &service{
		images:   images,
		store:    store,
		resizer:  NewImagingResizer(),
		maxBytes: DefaultMaxUploadBytes,
		fetch:    &http.Client{Timeout: defaultFetchTimeout},
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Upload(ctx context.Context, req UploadImageRequest) (*Image, error) {
	if len(req.Data) == 0 {
		return nil, ErrNoFile
	}
	contentType := normalizeContentType(req.ContentType)
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, &UnsupportedTypeError{ContentType: req.ContentType}
	}
	if size := int64(len(req.Data)); size > s.maxBytes {
		return nil, &FileTooLargeError{Size: size, Limit: s.maxBytes}
	}

	filename := s.id().String() + fileExtension(req.FileName, contentType)
	variants := s.deriveVariants(req.Data, contentType, filename)

	if err := s.uploadAll(ctx, filename, req.Data, contentType, variants); err != nil {
		return nil, err
	}

	record := &Image{
		ID:           s.id(),
		Filename:     filename,
		OriginalName: req.FileName,
		ContentType:  contentType,
		Size:         int64(len(req.Data)),
		UserID:       req.UserID,
		UploadedAt:   s.now().UTC(),
		OriginalURL:  s.store.PublicURL(ObjectKey(ResolutionOriginal, filename)),
	}
	if width, height, ok := probeDimensions(req.Data, contentType); ok {
		record.Width = &width
		record.Height = &height
	}
	for res := range variants {
		url := s.store.PublicURL(ObjectKey(res, filename))
		switch res {
		case ResolutionTiny:
			record.TinyURL = url
		case ResolutionMedium:
			record.MediumURL = url
		case ResolutionLarge:
			record.LargeURL = url
		}
	}

	created, err := s.images.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("image uploaded",
		"image_id", created.ID,
		"filename", created.Filename,
		"content_type", created.ContentType,
		"size", created.Size,
		"renditions", len(variants),
	)
	return created, nil
}

// deriveVariants produces the configured renditions concurrently. A profile
// that fails is skipped; the upload still proceeds with the remainder.
func (s *service) deriveVariants(data []byte, contentType, filename string) map[Resolution]Variant {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		variants = make(map[Resolution]Variant, len(Profiles))
	)
	for _, profile := range Profiles {
		wg.Add(1)
		go func(profile Profile) {
			defer wg.Done()
			variant, err := s.resizer.Resize(data, contentType, profile)
			if err != nil {
				s.logger.Warn("rendition skipped",
					"filename", filename,
					"resolution", profile.Resolution,
					"error", err,
				)
				return
			}
			mu.Lock()
			variants[profile.Resolution] = variant
			mu.Unlock()
		}(profile)
	}
	wg.Wait()
	return variants
}

// uploadAll pushes the original and every derived rendition. Any failed
// push fails the whole upload.
func (s *service) uploadAll(ctx context.Context, filename string, original []byte, contentType string, variants map[Resolution]Variant) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return s.store.Upload(ctx, ObjectKey(ResolutionOriginal, filename), original, contentType)
	})
	for res, variant := range variants {
		group.Go(func() error {
			return s.store.Upload(ctx, ObjectKey(res, filename), variant.Data, variant.ContentType)
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("images: store upload failed: %w", err)
	}
	return nil
}

func (s *service) UploadFromURL(ctx context.Context, req UploadFromURLRequest) (*Image, error) {
	if err := validation.Validate(req.URL, validation.Required, is.URL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrURLInvalid, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrURLInvalid, err)
	}

	resp, err := s.fetch.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrFetchFailed, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, &FileTooLargeError{Size: int64(len(data)), Limit: s.maxBytes}
	}

	return s.Upload(ctx, UploadImageRequest{
		FileName:    remoteFileName(req.URL),
		ContentType: normalizeContentType(resp.Header.Get("Content-Type")),
		Data:        data,
		UserID:      req.UserID,
	})
}

func (s *service) List(ctx context.Context, req ListImagesRequest) (*ListResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	resolution := req.Resolution
	if resolution == "" {
		resolution = ResolutionOriginal
	}

	records, total, err := s.images.List(ctx, ListFilter{
		UserID: req.UserID,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Images:     records,
		Total:      total,
		Page:       page,
		Limit:      limit,
		Resolution: resolution,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Image, error) {
	return s.images.GetByID(ctx, id)
}

func (s *service) GetByFilename(ctx context.Context, filename string) (*Image, error) {
	return s.images.GetByFilename(ctx, filename)
}

// Delete removes every stored rendition first, then the catalog row. A
// storage failure leaves the row in place so the delete can be retried.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.images.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, record.StorageKeys()...); err != nil {
		return fmt.Errorf("images: remove stored objects: %w", err)
	}
	if err := s.images.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("image deleted", "image_id", id, "filename", record.Filename)
	return nil
}

func normalizeContentType(value string) string {
	base, _, _ := strings.Cut(value, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// fileExtension keeps the uploader's extension when it has one, deriving
// one from the content type otherwise.
func fileExtension(name, contentType string) string {
	if ext := strings.ToLower(path.Ext(name)); ext != "" && ext != "." {
		return ext
	}
	return allowedContentTypes[contentType]
}

func remoteFileName(rawURL string) string {
	trimmed, _, _ := strings.Cut(rawURL, "?")
	name := path.Base(trimmed)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
