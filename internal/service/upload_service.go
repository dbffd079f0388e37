package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"time"

	"github.com/rs/zerolog"

	"campaignhub/api/internal/config"
	"campaignhub/api/internal/ids"
	"campaignhub/api/internal/media/sniffer"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
	"campaignhub/api/internal/storage"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds upload size limit")
	ErrFileTypeBlocked = errors.New("file type is not allowed")
	ErrEmptyFile       = errors.New("empty file")
)

type UploadInput struct {
	User       models.User
	File       multipart.File
	Header     *multipart.FileHeader
	CampaignID string
}

type UploadService struct {
	media     *repository.MediaRepository
	campaigns *repository.CampaignRepository
	store     *storage.ObjectStore
	cfg       *config.AppConfig
	log       zerolog.Logger
}

func NewUploadService(media *repository.MediaRepository, campaigns *repository.CampaignRepository, store *storage.ObjectStore, cfg *config.AppConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		media:     media,
		campaigns: campaigns,
		store:     store,
		cfg:       cfg,
		log:       log,
	}
}

// Upload validates the file by its actual bytes, stores it in the media
// bucket, records a metadata row and, when a campaign is given, appends the
// public URL to that campaign's mediaUrls.
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (models.Media, error) {
	if input.File == nil || input.Header == nil {
		return models.Media{}, errors.New("invalid file payload")
	}
	if input.Header.Size > s.cfg.Upload.MaxSizeBytes {
		return models.Media{}, ErrFileTooLarge
	}

	if input.CampaignID != "" {
		if _, err := s.campaigns.GetByID(ctx, input.CampaignID); err != nil {
			return models.Media{}, err
		}
	}

	head := make([]byte, 512)
	n, err := input.File.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return models.Media{}, fmt.Errorf("read head: %w", err)
	}
	head = head[:n]

	var data []byte
	if seeker, ok := input.File.(io.ReadSeeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return models.Media{}, fmt.Errorf("rewind: %w", err)
		}
		data, err = io.ReadAll(seeker)
		if err != nil {
			return models.Media{}, fmt.Errorf("read file: %w", err)
		}
	} else {
		rest, err := io.ReadAll(input.File)
		if err != nil {
			return models.Media{}, fmt.Errorf("read file: %w", err)
		}
		data = append(head, rest...)
	}

	if len(data) == 0 {
		return models.Media{}, ErrEmptyFile
	}
	if int64(len(data)) > s.cfg.Upload.MaxSizeBytes {
		return models.Media{}, ErrFileTooLarge
	}

	result, err := sniffer.DetectHead(head)
	if err != nil {
		return models.Media{}, ErrFileTypeBlocked
	}
	if !s.mimeAllowed(result.MIME) {
		return models.Media{}, ErrFileTypeBlocked
	}

	// The declared Content-Type is advisory only, but an outright
	// contradiction with the sniffed bytes is rejected.
	declared := sniffer.MimeTypeFromHeader(input.Header.Header)
	if declared != "" && declared != result.MIME {
		return models.Media{}, ErrFileTypeBlocked
	}

	mediaID := ids.New()
	objectKey := s.buildObjectKey(mediaID, string(result.Type))

	if err := s.store.Put(ctx, objectKey, bytes.NewReader(data), int64(len(data)), result.MIME); err != nil {
		return models.Media{}, fmt.Errorf("put object: %w", err)
	}

	url := s.store.PublicURL(objectKey)
	now := time.Now().UTC()

	item := models.Media{
		ID:           mediaID,
		Filename:     objectKey,
		OriginalName: input.Header.Filename,
		MimeType:     result.MIME,
		Size:         int64(len(data)),
		URL:          url,
		UploadedBy:   input.User.ID,
		CampaignID:   input.CampaignID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.media.Create(ctx, item); err != nil {
		if removeErr := s.store.Remove(ctx, objectKey); removeErr != nil {
			s.log.Warn().Err(removeErr).Str("object_key", objectKey).Msg("orphaned object cleanup failed")
		}
		return models.Media{}, fmt.Errorf("save metadata: %w", err)
	}

	if input.CampaignID != "" {
		if err := s.campaigns.AppendMediaURL(ctx, input.CampaignID, url); err != nil {
			s.log.Warn().Err(err).Str("campaign_id", input.CampaignID).Msg("append media url failed")
		}
	}

	s.log.Info().Str("media_id", mediaID).Str("mime", result.MIME).Int("size", len(data)).Msg("media uploaded")

	return item, nil
}

// Delete removes the stored object, the metadata row and, when linked, the
// campaign's mediaUrls entry.
func (s *UploadService) Delete(ctx context.Context, item models.Media) error {
	if err := s.store.Remove(ctx, item.Filename); err != nil {
		s.log.Warn().Err(err).Str("media_id", item.ID).Msg("object removal failed")
	}
	if item.CampaignID != "" {
		if err := s.campaigns.RemoveMediaURL(ctx, item.CampaignID, item.URL); err != nil {
			s.log.Warn().Err(err).Str("campaign_id", item.CampaignID).Msg("remove media url failed")
		}
	}
	return s.media.Delete(ctx, item.ID)
}

func (s *UploadService) mimeAllowed(mime string) bool {
	for _, allowed := range s.cfg.Upload.AllowedMIMETypes {
		if allowed == mime {
			return true
		}
	}
	return false
}

func (s *UploadService) buildObjectKey(mediaID string, ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", mediaID, ext))
}
