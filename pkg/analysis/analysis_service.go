package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/internal/utils/storage"
	"github.com/Univearth/ai-hackathon/pkg/llm"
)

// extractionPrompt tells the model exactly which keys to emit and how to
// interpret dates printed on Japanese packaging: two-digit years are in
// the 2000s, and dates without a time component become midnight.
const extractionPrompt = `この写真から以下の情報をJSON形式で出力してください：
1. 商品名 (日本語で)
2. 賞味期限または消費期限（ISO 8601形式で）
   - 日付の解釈に注意してください。例えば「25.4.28」は「2025年4月28日」と解釈してください
   - 年が2桁で表記されている場合は、2000年代として解釈してください
   - 時間が記載されている場合は、その時間も含めて出力してください（例：2025-04-28T14:30:00Z）
   - 時間が記載されていない場合は、00:00:00として出力してください
3. 期限の種類（賞味期限なら best_before、消費期限なら use_by）
4. 画像URL（空文字列で構いません）
5. 分量（数値のみ。例：300）
6. 単位（以下のいずれかから選択）：
   - g
   - kg
   - ml
   - L
   - 個
   - 枚
   - 本
7. 分類（以下のいずれかから選択）：
   - 肉
   - 野菜
   - 魚
   - 調味料
   - お菓子
   - 飲料
   - その他
JSONのキーは以下の通りです：
- name
- expiration_date
- expiration_type
- image_url
- amount
- unit
- category`

// productInfoSchema constrains the model reply to the ProductRecord shape.
// expiration_type is not required: older labels omit the distinction.
var productInfoSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"name":            {Type: "string"},
		"expiration_date": {Type: "string"},
		"expiration_type": {Type: "string", Enum: []string{domain.ExpirationBestBefore, domain.ExpirationUseBy}},
		"image_url":       {Type: "string"},
		"amount":          {Type: "number"},
		"unit":            {Type: "string", Enum: []string{"g", "kg", "ml", "L", "個", "枚", "本"}},
		"category":        {Type: "string", Enum: []string{"肉", "野菜", "魚", "調味料", "お菓子", "飲料", "その他"}},
	},
	Required: []string{"name", "expiration_date", "image_url", "amount", "unit", "category"},
}

type (
	AnalysisService interface {
		// AnalyzeUpload runs the extraction pipeline on a multipart
		// image upload. Non-image content types are rejected before
		// anything is stored or inferred.
		AnalyzeUpload(ctx context.Context, file *multipart.FileHeader) (domain.ProductRecord, error)
		// AnalyzeBytes uploads the image to the blob store, asks the
		// model for product metadata, and returns the record with
		// ImageURL replaced by the storage URL.
		AnalyzeBytes(ctx context.Context, data []byte, ext string, mimeType string) (domain.ProductRecord, error)
	}

	analysisService struct {
		s3    storage.AwsS3
		model llm.Client
	}
)

func NewAnalysisService(s3 storage.AwsS3, model llm.Client) AnalysisService {
	return &analysisService{
		s3:    s3,
		model: model,
	}
}

func (s *analysisService) AnalyzeUpload(ctx context.Context, file *multipart.FileHeader) (domain.ProductRecord, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return domain.ProductRecord{}, fmt.Errorf("%w: got %q", domain.ErrNotImage, contentType)
	}

	src, err := file.Open()
	if err != nil {
		return domain.ProductRecord{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return domain.ProductRecord{}, err
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}

	return s.AnalyzeBytes(ctx, data, ext, contentType)
}

func (s *analysisService) AnalyzeBytes(ctx context.Context, data []byte, ext string, mimeType string) (domain.ProductRecord, error) {
	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("temp_%s%s", uuid.New().String(), ext))
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return domain.ProductRecord{}, err
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			log.Warn().Err(err).Str("path", tempPath).Msg("failed to remove temp file")
		}
	}()

	imageURL, err := s.s3.UploadFile(ctx, tempPath)
	if err != nil {
		return domain.ProductRecord{}, err
	}

	raw, err := s.model.Infer(ctx, llm.Request{
		Prompt:   extractionPrompt,
		Schema:   productInfoSchema,
		Image:    data,
		MIMEType: mimeType,
	})
	if err != nil {
		return domain.ProductRecord{}, err
	}

	var record domain.ProductRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.ProductRecord{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	// The model's image_url is never trusted; the storage URL wins.
	record.ImageURL = imageURL

	return record, nil
}
