package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mkorotkov/clipstream/internal/common"
	"github.com/mkorotkov/clipstream/internal/filex"
	"github.com/mkorotkov/clipstream/internal/logging"
	sc "github.com/mkorotkov/clipstream/internal/server/config"
	"github.com/mkorotkov/clipstream/internal/server/models"
)

// Test seams for the AWS SDK.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const playbackURLValidity = 15 * time.Minute

// UnsupportedMediaTypeError rejects a content type outside the allowlist.
// The message enumerates the accepted formats for the caller.
type UnsupportedMediaTypeError struct {
	ContentType string
}

func (e *UnsupportedMediaTypeError) Error() string {
	return fmt.Sprintf("Invalid content type: %s. Allowed types: %s",
		e.ContentType, strings.Join(common.AllowedVideoTypes, ", "))
}

func (e *UnsupportedMediaTypeError) Is(target error) bool {
	return target == common.ErrUnsupportedMediaType
}

// UploadRequest is one request for a write authorization.
type UploadRequest struct {
	FileName    string
	ContentType string
	Category    string
}

// UploadService mints time-bounded, key-scoped write authorizations for
// direct-to-storage uploads. The presign client is constructed once at
// service creation and reused for every request.
type UploadService struct {
	config  *sc.Config
	logger  logging.Logger
	presign *s3.PresignClient
}

func NewUploadService(cfg *sc.Config, logger logging.Logger) (*UploadService, error) {

	awscfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awscfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
	})

	return &UploadService{
		config:  cfg,
		logger:  logger,
		presign: newS3PresignClient(client),
	}, nil
}

// DeriveStorageKey derives a collision-resistant, human-auditable storage key
// of the shape uploads/{identity}/{date}/{category}/{randomId}.{extension}.
// The date is the current UTC calendar day; the extension comes from the
// original filename and falls back to a default media extension.
func DeriveStorageKey(identity, category, fileName string) string {
	if category == "" {
		category = "unknown"
	}
	date := time.Now().UTC().Format("2006-01-02")
	return fmt.Sprintf("uploads/%s/%s/%s/%s.%s", identity, date, category, uuid.New(), filex.Ext(fileName))
}

// CreateUploadGrant validates the request and returns a write authorization
// bound to exactly one derived key and content type.
//
// Validation order (fails fast on first violation): caller identity,
// filename, content-type allowlist, configured bucket. The bucket check is a
// misconfiguration, not a caller error.
func (s *UploadService) CreateUploadGrant(ctx context.Context, userID string, req UploadRequest) (*models.UploadGrant, error) {

	if userID == "" {
		return nil, common.ErrorUnauthorized
	}

	if req.FileName == "" {
		return nil, common.ErrMissingFileName
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = filex.TypeByName(req.FileName)
	}
	if !common.IsAllowedVideoType(contentType) {
		return nil, &UnsupportedMediaTypeError{ContentType: contentType}
	}

	if s.config.S3Bucket == "" {
		return nil, common.ErrMisconfigured
	}

	key := DeriveStorageKey(userID, req.Category, req.FileName)
	validity := s.config.UploadURLValidityDuration

	presigned, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"uploaded-by":   userID,
			"original-name": req.FileName,
		},
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	s.logger.Info(ctx, "issued upload url", "key", key, "contentType", contentType, "user", userID)

	return &models.UploadGrant{
		UploadURL:  presigned.URL,
		StorageKey: key,
		ExpiresIn:  int(validity.Seconds()),
	}, nil
}

// PlaybackURL returns a short-lived presigned GET for an already stored key.
func (s *UploadService) PlaybackURL(ctx context.Context, userID, key string) (string, error) {

	if userID == "" {
		return "", common.ErrorUnauthorized
	}

	if s.config.S3Bucket == "" {
		return "", common.ErrMisconfigured
	}

	presigned, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(playbackURLValidity))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}

	return presigned.URL, nil
}
