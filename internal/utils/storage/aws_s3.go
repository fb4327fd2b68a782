package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/internal/utils"
)

const DefaultBucket = "ai-hackathon"

type (
	AwsS3 interface {
		// UploadFile stores a local file under a fresh "{uuid}{ext}"
		// object key and returns its public URL.
		UploadFile(ctx context.Context, localPath string) (string, error)
		// UploadFileAs stores a local file under a caller-chosen key,
		// silently overwriting any existing object.
		UploadFileAs(ctx context.Context, localPath string, objectKey string) (string, error)
		DownloadFile(ctx context.Context, objectKey string) ([]byte, error)
		GetPublicLinkKey(objectKey string) string
	}

	// s3API is the subset of the S3 client used by this wrapper.
	s3API interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	}

	awsS3 struct {
		client        s3API
		bucket        string
		publicBaseURL string
	}
)

// NewAwsS3 builds the blob store client from configuration. The endpoint
// is any S3-compatible service; in production this is a Cloudflare R2
// account endpoint with region "auto".
func NewAwsS3() (AwsS3, error) {
	accessKey := utils.GetConfig("ACCESS_KEY")
	secretKey := utils.GetConfig("SECRET_KEY")
	endpoint := utils.GetConfig("STORAGE_ENDPOINT")

	bucket := utils.GetConfig("STORAGE_BUCKET")
	if bucket == "" {
		bucket = DefaultBucket
	}

	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return &awsS3{
		client:        client,
		bucket:        bucket,
		publicBaseURL: utils.GetConfig("STORAGE_PUBLIC_URL"),
	}, nil
}

func (a *awsS3) UploadFile(ctx context.Context, localPath string) (string, error) {
	objectKey := uuid.New().String() + filepath.Ext(localPath)
	return a.UploadFileAs(ctx, localPath, objectKey)
}

func (a *awsS3) UploadFileAs(ctx context.Context, localPath string, objectKey string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(objectKey))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %v", domain.ErrStorageFailed, objectKey, err)
	}

	return a.GetPublicLinkKey(objectKey), nil
}

func (a *awsS3) DownloadFile(ctx context.Context, objectKey string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrObjectNotFound, objectKey)
		}
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrStorageFailed, objectKey, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorageFailed, objectKey, err)
	}

	return data, nil
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return strings.TrimSuffix(a.publicBaseURL, "/") + "/" + objectKey
}

// isNotFound reports whether err is the provider's missing-key error.
// R2 and S3 both answer NoSuchKey for GetObject on an absent object.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}

	return false
}
