package document

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Univearth/ai-hackathon/internal/utils/storage"
)

type (
	// DocumentService stores arbitrary JSON documents in the blob store
	// under "{id}.json". Re-uploading the same id overwrites wholesale.
	DocumentService interface {
		UploadJSON(ctx context.Context, id string, data json.RawMessage) (string, error)
		GetJSON(ctx context.Context, id string) (json.RawMessage, error)
	}

	documentService struct {
		s3 storage.AwsS3
	}
)

func NewDocumentService(s3 storage.AwsS3) DocumentService {
	return &documentService{s3: s3}
}

func (s *documentService) UploadJSON(ctx context.Context, id string, data json.RawMessage) (string, error) {
	serialized, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("serialize document %s: %w", id, err)
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("temp_%s.json", uuid.New().String()))
	if err := os.WriteFile(tempPath, serialized, 0o600); err != nil {
		return "", err
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			log.Warn().Err(err).Str("path", tempPath).Msg("failed to remove temp file")
		}
	}()

	return s.s3.UploadFileAs(ctx, tempPath, id+".json")
}

func (s *documentService) GetJSON(ctx context.Context, id string) (json.RawMessage, error) {
	data, err := s.s3.DownloadFile(ctx, id+".json")
	if err != nil {
		return nil, err
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("document %s is not valid JSON", id)
	}

	return json.RawMessage(data), nil
}
