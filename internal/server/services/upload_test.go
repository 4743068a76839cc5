package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkorotkov/clipstream/internal/common"
	"github.com/mkorotkov/clipstream/internal/logging"
	sc "github.com/mkorotkov/clipstream/internal/server/config"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.S3Bucket = "videos"
	return cfg
}

// patchSeams replaces the AWS seams with stubs and restores them at cleanup.
func patchSeams(t *testing.T, put func(ctx context.Context, in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error)) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if put == nil {
			return &v4.PresignedHTTPRequest{URL: "http://storage.local/" + *in.Key}, nil
		}
		return put(ctx, in)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://storage.local/get/" + *in.Key}, nil
	}
}

func newTestService(t *testing.T, cfg *sc.Config) *UploadService {
	t.Helper()
	svc, err := NewUploadService(cfg, testLogger())
	require.NoError(t, err)
	return svc
}

var keyPattern = regexp.MustCompile(`^uploads/([^/]+)/(\d{4}-\d{2}-\d{2})/([^/]+)/([0-9a-f-]{36})\.([a-z0-9]+)$`)

func TestDeriveStorageKey_Pattern(t *testing.T) {
	key := DeriveStorageKey("user-1", "meeting", "demo.mp4")

	m := keyPattern.FindStringSubmatch(key)
	require.NotNil(t, m, "key %q does not match pattern", key)
	assert.Equal(t, "user-1", m[1])
	assert.Equal(t, "meeting", m[3])
	assert.Equal(t, "mp4", m[5])
}

func TestDeriveStorageKey_Defaults(t *testing.T) {
	key := DeriveStorageKey("user-1", "", "noextension")

	m := keyPattern.FindStringSubmatch(key)
	require.NotNil(t, m, "key %q does not match pattern", key)
	assert.Equal(t, "unknown", m[3])
	assert.Equal(t, "mp4", m[5])
}

func TestDeriveStorageKey_NeverCollides(t *testing.T) {
	a := DeriveStorageKey("user-1", "meeting", "demo.mp4")
	b := DeriveStorageKey("user-1", "meeting", "demo.mp4")
	assert.NotEqual(t, a, b)
}

func TestCreateUploadGrant_Success(t *testing.T) {
	var captured *s3.PutObjectInput
	patchSeams(t, func(ctx context.Context, in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		captured = in
		return &v4.PresignedHTTPRequest{URL: "http://storage.local/put"}, nil
	})

	svc := newTestService(t, testConfig())

	grant, err := svc.CreateUploadGrant(context.Background(), "user-1", UploadRequest{
		FileName:    "interview.mov",
		ContentType: "video/quicktime",
		Category:    "interview",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://storage.local/put", grant.UploadURL)
	assert.Equal(t, 3600, grant.ExpiresIn)
	assert.Regexp(t, keyPattern, grant.StorageKey)
	assert.Contains(t, grant.StorageKey, "/interview/")

	require.NotNil(t, captured)
	assert.Equal(t, "videos", *captured.Bucket)
	assert.Equal(t, "video/quicktime", *captured.ContentType)
	assert.Equal(t, grant.StorageKey, *captured.Key)
	assert.Equal(t, "user-1", captured.Metadata["uploaded-by"])
	assert.Equal(t, "interview.mov", captured.Metadata["original-name"])
}

func TestCreateUploadGrant_ResolvesTypeFromName(t *testing.T) {
	patchSeams(t, nil)
	svc := newTestService(t, testConfig())

	grant, err := svc.CreateUploadGrant(context.Background(), "user-1", UploadRequest{FileName: "clip.webm"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(grant.StorageKey, ".webm"))
}

func TestCreateUploadGrant_ValidationOrder(t *testing.T) {
	presignCalls := 0
	patchSeams(t, func(ctx context.Context, in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		presignCalls++
		return &v4.PresignedHTTPRequest{URL: "u"}, nil
	})

	svc := newTestService(t, testConfig())
	ctx := context.Background()

	// 1. missing identity fails before anything else
	_, err := svc.CreateUploadGrant(ctx, "", UploadRequest{})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	// 2. missing filename
	_, err = svc.CreateUploadGrant(ctx, "user-1", UploadRequest{ContentType: "video/mp4"})
	assert.ErrorIs(t, err, common.ErrMissingFileName)

	// 3. content type outside the allowlist
	_, err = svc.CreateUploadGrant(ctx, "user-1", UploadRequest{FileName: "a.ogg", ContentType: "video/ogg"})
	assert.ErrorIs(t, err, common.ErrUnsupportedMediaType)
	assert.Contains(t, err.Error(), "Invalid content type: video/ogg")
	assert.Contains(t, err.Error(), "video/mp4")

	// nothing was presigned for any failure
	assert.Zero(t, presignCalls)
}

func TestCreateUploadGrant_MissingBucket(t *testing.T) {
	patchSeams(t, nil)

	cfg := testConfig()
	cfg.S3Bucket = ""
	svc := newTestService(t, cfg)

	_, err := svc.CreateUploadGrant(context.Background(), "user-1", UploadRequest{FileName: "a.mp4", ContentType: "video/mp4"})
	assert.ErrorIs(t, err, common.ErrMisconfigured)
}

func TestCreateUploadGrant_PresignFailure(t *testing.T) {
	patchSeams(t, func(ctx context.Context, in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-fail")
	})

	svc := newTestService(t, testConfig())

	_, err := svc.CreateUploadGrant(context.Background(), "user-1", UploadRequest{FileName: "a.mp4", ContentType: "video/mp4"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presign-fail")
}

func TestPlaybackURL(t *testing.T) {
	patchSeams(t, nil)
	svc := newTestService(t, testConfig())

	url, err := svc.PlaybackURL(context.Background(), "user-1", "uploads/u/2026-01-01/meeting/x.mp4")
	require.NoError(t, err)
	assert.Equal(t, "http://storage.local/get/uploads/u/2026-01-01/meeting/x.mp4", url)

	_, err = svc.PlaybackURL(context.Background(), "", "k")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
