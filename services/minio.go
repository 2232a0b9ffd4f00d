package services

import (
	context2 "context"
	"fmt"
	"io"
	"os"

	"github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MinIOService stores generated images. It is optional: when
// MINIO_ENDPOINT is unset the image proxy falls back to inline data
// URLs and the rest of the API is unaffected.
type MinIOService struct {
	context.DefaultService
	client *minio.Client

	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	publicURL  string
	useSSL     bool
	enabled    bool
}

const MINIO_SVC = "minio_svc"

func (svc MinIOService) Id() string {
	return MINIO_SVC
}

func (svc *MinIOService) Configure(ctx *context.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	svc.enabled = svc.endpoint != ""

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}

	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	if svc.secretKey == "" {
		svc.secretKey = "password123"
	}

	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucketName = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucketName == "" {
		svc.bucketName = "fauna-kids"
	}

	// Base URL clients use to fetch objects, e.g. a CDN or the MinIO
	// endpoint itself.
	svc.publicURL = os.Getenv("MINIO_PUBLIC_URL")
	if svc.publicURL == "" && svc.enabled {
		scheme := "http"
		if svc.useSSL {
			scheme = "https"
		}
		svc.publicURL = fmt.Sprintf("%s://%s", scheme, svc.endpoint)
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MinIOService) Start() error {
	if !svc.enabled {
		log.Warn("MINIO_ENDPOINT not set, generated images served as data URLs")
		return nil
	}

	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.Printf("MinIO service started successfully with endpoint: %s", svc.endpoint)
	return nil
}

func (svc *MinIOService) Enabled() bool {
	return svc.enabled && svc.client != nil
}

func (svc *MinIOService) ensureBucket() error {
	ctx := context2.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("Created MinIO bucket: %s", svc.bucketName)
	}

	return nil
}

// UploadFile stores an object and returns its public URL.
func (svc *MinIOService) UploadFile(ctx context2.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (string, error) {
	_, err := svc.client.PutObject(ctx, svc.bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to MinIO: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", svc.publicURL, svc.bucketName, objectName), nil
}

func (svc *MinIOService) DeleteFile(ctx context2.Context, objectName string) error {
	err := svc.client.RemoveObject(ctx, svc.bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file from MinIO: %v", err)
	}

	return nil
}

func (svc *MinIOService) GetBucketName() string {
	return svc.bucketName
}
