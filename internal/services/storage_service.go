package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const uploadURLTTL = 15 * time.Minute

// StorageService issues time-limited upload URLs for a bucket and
// derives the public URLs objects will be served from. One client is
// shared by the whole process.
type StorageService struct {
	client *storage.Client
	bucket string
}

// NewStorageService creates a StorageService. If credsPath is empty,
// application default credentials are used.
func NewStorageService(ctx context.Context, bucket, credsPath string) (*StorageService, error) {
	var client *storage.Client
	var err error
	if credsPath == "" {
		client, err = storage.NewClient(ctx)
	} else {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
	}
	if err != nil {
		return nil, err
	}
	return &StorageService{client: client, bucket: bucket}, nil
}

// UploadTarget is a presigned upload slot.
type UploadTarget struct {
	ObjectPath string `json:"object_path"`
	UploadURL  string `json:"upload_url"`
	PublicURL  string `json:"public_url"`
}

// SignedUpload issues a V4 signed PUT URL for a fresh object path under
// uploads/, plus the public URL the object will have once written.
func (s *StorageService) SignedUpload(filename, contentType string) (*UploadTarget, error) {
	objectPath := fmt.Sprintf("uploads/%s-%s", uuid.New().String(), filename)

	url, err := s.client.Bucket(s.bucket).SignedURL(objectPath, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     time.Now().Add(uploadURLTTL),
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}

	return &UploadTarget{
		ObjectPath: objectPath,
		UploadURL:  url,
		PublicURL:  PublicURL(s.bucket, objectPath),
	}, nil
}

// PublicURL builds the public URL for an object in a bucket.
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
