package participants

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
	"github.com/parkops/events-backend/pkg/storage"
)

// ObjectStore uploads export files and signs download links.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, contentLength int64) (string, error)
	GeneratePresignedDownloadURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	PresignExpire() time.Duration
	ExportsBucket() string
}

// ExportResult points at an uploaded participant list.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	Rows      int       `json:"rows"`
}

var csvHeader = []string{
	"id", "full_name", "email", "phone", "attendee_count", "status", "notes", "registration_date",
}

// WriteCSV renders registrations as CSV with a header row.
func WriteCSV(w io.Writer, regs []models.Registration) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, reg := range regs {
		record := []string{
			strconv.FormatInt(reg.ID, 10),
			reg.FullName,
			reg.Email,
			reg.Phone,
			strconv.Itoa(reg.AttendeeCount),
			string(reg.Status),
			reg.Notes,
			reg.RegistrationDate.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export uploads the participant list of an event as CSV and returns a signed download link.
func (s *Service) Export(ctx context.Context, eventID int64) (*ExportResult, error) {
	if s.objects == nil {
		return nil, apperr.Unavailable("exports storage not configured")
	}
	regs, err := s.List(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, regs); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}

	now := time.Now().UTC()
	bucket := s.objects.ExportsBucket()
	key := storage.ParticipantsExportKey(eventID, now)
	size := int64(buf.Len())
	if _, err := s.objects.Upload(ctx, bucket, key, "text/csv", &buf, size); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}
	expires := s.objects.PresignExpire()
	url, err := s.objects.GeneratePresignedDownloadURL(ctx, bucket, key, expires)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}
	s.logger.Info("participants exported",
		zap.Int64("event_id", eventID),
		zap.String("key", key),
		zap.Int("rows", len(regs)),
	)
	return &ExportResult{Key: key, URL: url, ExpiresAt: now.Add(expires), Rows: len(regs)}, nil
}
