package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/bulatminnakhmetov/collection-tracker/internal/compression"
	"github.com/bulatminnakhmetov/collection-tracker/internal/metrics"
	mediarepo "github.com/bulatminnakhmetov/collection-tracker/internal/repository/media"
	storageMedia "github.com/bulatminnakhmetov/collection-tracker/internal/storage/media"
)

var (
	ErrMediaNotFound = errors.New("media not found")
	ErrFileTooBig    = errors.New("file too big")
)

const (
	DefaultMaxFileSize = 10 * 1024 * 1024 // 10 MB

	genericContentType = "application/octet-stream"
)

type Media = mediarepo.Media

// MediaRepository defines the media store operations used by the service
type MediaRepository interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
	FindByName(ctx context.Context, tx *sql.Tx, name string) (*mediarepo.Media, error)
	FindByListingID(ctx context.Context, tx *sql.Tx, listingID int64) (*mediarepo.Media, error)
	LockListing(ctx context.Context, tx *sql.Tx, listingID int64) error
	FindByListingIDForUpdate(ctx context.Context, tx *sql.Tx, listingID int64) (*mediarepo.Media, error)
	Save(ctx context.Context, tx *sql.Tx, m *mediarepo.Media) error
	DeleteByListingID(ctx context.Context, tx *sql.Tx, listingID int64) ([]string, error)
}

// MediaServiceImpl compresses media on upload and restores it on download
type MediaServiceImpl struct {
	mediaRepository MediaRepository
	storageProvider storageMedia.StorageProvider
	maxFileSize     int64
	log             zerolog.Logger
}

// NewMediaService creates a new media service. A nil storageProvider keeps
// compressed blobs in the media_data table.
func NewMediaService(mediaRepo MediaRepository, storageProvider storageMedia.StorageProvider, maxFileSize int64, log zerolog.Logger) *MediaServiceImpl {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &MediaServiceImpl{
		mediaRepository: mediaRepo,
		storageProvider: storageProvider,
		maxFileSize:     maxFileSize,
		log:             log.With().Str("component", "media-service").Logger(),
	}
}

type FileHeaderWrapper struct {
	*multipart.FileHeader
}

func (w *FileHeaderWrapper) Open() (multipart.File, error) {
	return w.FileHeader.Open()
}

func (w *FileHeaderWrapper) GetFilename() string {
	return w.Filename
}

func (w *FileHeaderWrapper) GetSize() int64 {
	return w.Size
}

func (w *FileHeaderWrapper) GetHeader() textproto.MIMEHeader {
	return w.Header
}

type UploadedFile interface {
	Open() (multipart.File, error)
	GetFilename() string
	GetSize() int64
	GetHeader() textproto.MIMEHeader
}

// UploadMedia stores the file as the media of a listing, replacing any previous one
func (s *MediaServiceImpl) UploadMedia(ctx context.Context, listingID int64, fileHeader UploadedFile) (string, error) {
	if fileHeader.GetSize() > s.maxFileSize {
		metrics.RecordUpload("unknown", "too_big", 0, 0)
		return "", ErrFileTooBig
	}

	data, err := s.readFile(fileHeader)
	if err != nil {
		if errors.Is(err, ErrFileTooBig) {
			metrics.RecordUpload("unknown", "too_big", 0, 0)
		}
		return "", err
	}

	contentType := detectContentType(fileHeader.GetHeader().Get("Content-Type"), data)

	compressed, err := compression.Compress(data)
	if err != nil {
		metrics.RecordUpload(contentType, "error", 0, 0)
		return "", fmt.Errorf("failed to compress media: %w", err)
	}

	var newKey string
	if s.storageProvider != nil {
		newKey = storageMedia.ObjectKey(listingID)
		if err := s.storageProvider.Put(ctx, newKey, compressed); err != nil {
			metrics.RecordUpload(contentType, "error", 0, 0)
			return "", fmt.Errorf("failed to store media blob: %w", err)
		}
	}

	var previousKey string
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.mediaRepository.LockListing(ctx, tx, listingID); err != nil {
			return err
		}

		media, err := s.mediaRepository.FindByListingIDForUpdate(ctx, tx, listingID)
		switch {
		case errors.Is(err, mediarepo.ErrMediaNotFound):
			media = &mediarepo.Media{}
		case err != nil:
			return err
		default:
			previousKey = media.StorageKey
		}

		media.ListingID = listingID
		media.Name = fileHeader.GetFilename()
		media.Type = contentType
		if newKey != "" {
			media.Data = nil
			media.StorageKey = newKey
		} else {
			media.Data = compressed
			media.StorageKey = ""
		}

		return s.mediaRepository.Save(ctx, tx, media)
	})
	if err != nil {
		if newKey != "" {
			s.deleteObject(ctx, newKey)
		}
		metrics.RecordUpload(contentType, "error", 0, 0)
		return "", fmt.Errorf("failed to save media: %w", err)
	}

	if previousKey != "" && previousKey != newKey {
		s.deleteObject(ctx, previousKey)
	}

	metrics.RecordUpload(contentType, "success", len(data), len(compressed))
	s.log.Debug().
		Int64("listing_id", listingID).
		Str("name", fileHeader.GetFilename()).
		Int("raw_bytes", len(data)).
		Int("stored_bytes", len(compressed)).
		Msg("media uploaded")

	return "file uploaded successfully : " + fileHeader.GetFilename(), nil
}

// DownloadMedia returns the newest media stored under fileName with its blob decompressed
func (s *MediaServiceImpl) DownloadMedia(ctx context.Context, fileName string) (*Media, error) {
	var media *mediarepo.Media
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		media, err = s.mediaRepository.FindByName(ctx, tx, fileName)
		return err
	})
	if err != nil {
		if errors.Is(err, mediarepo.ErrMediaNotFound) {
			metrics.RecordDownload("name", "not_found")
			return nil, ErrMediaNotFound
		}
		metrics.RecordDownload("name", "error")
		return nil, err
	}

	result, err := s.decompressed(ctx, media)
	if err != nil {
		metrics.RecordDownload("name", "error")
		return nil, err
	}
	metrics.RecordDownload("name", "success")
	return result, nil
}

// DownloadMediaByListingID returns the media of a listing with its blob decompressed
func (s *MediaServiceImpl) DownloadMediaByListingID(ctx context.Context, listingID int64) (*Media, error) {
	var media *mediarepo.Media
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		media, err = s.mediaRepository.FindByListingID(ctx, tx, listingID)
		return err
	})
	if err != nil {
		if errors.Is(err, mediarepo.ErrMediaNotFound) {
			metrics.RecordDownload("listing", "not_found")
			return nil, ErrMediaNotFound
		}
		metrics.RecordDownload("listing", "error")
		return nil, err
	}

	result, err := s.decompressed(ctx, media)
	if err != nil {
		metrics.RecordDownload("listing", "error")
		return nil, err
	}
	metrics.RecordDownload("listing", "success")
	return result, nil
}

// DeleteMediaByListingID removes the media of a listing. Missing media is not an error.
func (s *MediaServiceImpl) DeleteMediaByListingID(ctx context.Context, listingID int64) error {
	var keys []string
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		keys, err = s.mediaRepository.DeleteByListingID(ctx, tx, listingID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	for _, key := range keys {
		s.deleteObject(ctx, key)
	}
	return nil
}

func (s *MediaServiceImpl) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.mediaRepository.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}

func (s *MediaServiceImpl) readFile(fileHeader UploadedFile) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, ErrFileTooBig
	}
	return data, nil
}

// decompressed returns a copy of media carrying the raw bytes
func (s *MediaServiceImpl) decompressed(ctx context.Context, media *mediarepo.Media) (*Media, error) {
	blob := media.Data
	if media.StorageKey != "" {
		if s.storageProvider == nil {
			return nil, fmt.Errorf("media %d is kept in object storage, which is not configured", media.ID)
		}
		var err error
		blob, err = s.storageProvider.Get(ctx, media.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load media blob: %w", err)
		}
	}

	raw, err := compression.Decompress(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress media %d: %w", media.ID, err)
	}

	return &Media{
		ID:        media.ID,
		Name:      media.Name,
		Type:      media.Type,
		ListingID: media.ListingID,
		Data:      raw,
	}, nil
}

func (s *MediaServiceImpl) deleteObject(ctx context.Context, key string) {
	if err := s.storageProvider.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to delete media blob")
	}
}

// detectContentType keeps the declared type unless it is missing or generic
func detectContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && !strings.EqualFold(declared, genericContentType) {
		return declared
	}
	return mimetype.Detect(data).String()
}
