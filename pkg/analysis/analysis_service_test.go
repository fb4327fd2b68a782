package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/pkg/llm"
)

type fakeS3 struct {
	url       string
	uploads   int
	lastPath  string
	uploadErr error
}

func (f *fakeS3) UploadFile(ctx context.Context, localPath string) (string, error) {
	f.uploads++
	f.lastPath = localPath
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.url, nil
}

func (f *fakeS3) UploadFileAs(ctx context.Context, localPath string, objectKey string) (string, error) {
	return f.UploadFile(ctx, localPath)
}

func (f *fakeS3) DownloadFile(ctx context.Context, objectKey string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrObjectNotFound, objectKey)
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return f.url
}

type stubModel struct {
	calls    int
	response json.RawMessage
	err      error
}

func (s *stubModel) Infer(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

// multipartFile builds a *multipart.FileHeader with the given declared
// content type, the way Fiber would hand it to the handler.
func multipartFile(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestAnalyzeUploadOverwritesImageURL(t *testing.T) {
	s3 := &fakeS3{url: "https://pub.example.com/abc123.jpg"}
	model := &stubModel{
		response: json.RawMessage(`{
			"name": "牛乳",
			"expiration_date": "2025-04-28T00:00:00Z",
			"image_url": "",
			"amount": 1000,
			"unit": "ml",
			"category": "飲料"
		}`),
	}
	service := NewAnalysisService(s3, model)

	file := multipartFile(t, "milk.jpg", "image/jpeg", []byte("jpeg-bytes"))
	record, err := service.AnalyzeUpload(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, domain.ProductRecord{
		Name:           "牛乳",
		ExpirationDate: "2025-04-28T00:00:00Z",
		ImageURL:       "https://pub.example.com/abc123.jpg",
		Amount:         1000,
		Unit:           "ml",
		Category:       "飲料",
	}, record)
	assert.Equal(t, 1, s3.uploads)
	assert.Equal(t, 1, model.calls)
}

func TestAnalyzeUploadIgnoresModelImageURL(t *testing.T) {
	s3 := &fakeS3{url: "https://pub.example.com/def456.png"}
	model := &stubModel{
		response: json.RawMessage(`{
			"name": "たまご",
			"expiration_date": "2025-05-01T00:00:00Z",
			"image_url": "https://evil.example.com/spoofed.png",
			"amount": 10,
			"unit": "個",
			"category": "その他"
		}`),
	}
	service := NewAnalysisService(s3, model)

	file := multipartFile(t, "eggs.png", "image/png", []byte("png-bytes"))
	record, err := service.AnalyzeUpload(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "https://pub.example.com/def456.png", record.ImageURL)
}

func TestAnalyzeUploadRejectsNonImage(t *testing.T) {
	s3 := &fakeS3{url: "https://pub.example.com/x"}
	model := &stubModel{}
	service := NewAnalysisService(s3, model)

	file := multipartFile(t, "notes.txt", "text/plain", []byte("hello"))
	_, err := service.AnalyzeUpload(context.Background(), file)
	assert.ErrorIs(t, err, domain.ErrNotImage)

	// Rejected before anything downstream runs.
	assert.Zero(t, s3.uploads)
	assert.Zero(t, model.calls)
}

func TestAnalyzeBytesCleansUpTempFile(t *testing.T) {
	s3 := &fakeS3{url: "https://pub.example.com/x.jpg"}
	model := &stubModel{err: fmt.Errorf("%w: boom", domain.ErrModelFailed)}
	service := NewAnalysisService(s3, model)

	_, err := service.AnalyzeBytes(context.Background(), []byte("jpeg-bytes"), ".jpg", "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrModelFailed)

	// The scratch file is gone even though the model call failed.
	require.NotEmpty(t, s3.lastPath)
	_, statErr := os.Stat(s3.lastPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyzeBytesStorageFailure(t *testing.T) {
	s3 := &fakeS3{uploadErr: fmt.Errorf("%w: connection refused", domain.ErrStorageFailed)}
	model := &stubModel{}
	service := NewAnalysisService(s3, model)

	_, err := service.AnalyzeBytes(context.Background(), []byte("jpeg-bytes"), ".jpg", "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrStorageFailed)
	assert.Zero(t, model.calls)
}
