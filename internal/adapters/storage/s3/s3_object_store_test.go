package s3

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lumenchat/auth-service/internal/infra/config"
)

func TestNew_DefaultPublicURL(t *testing.T) {
	store, err := New(context.Background(), &config.Config{
		S3Bucket: "avatars",
		S3Region: "eu-west-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if store.baseURL != "https://avatars.s3.eu-west-1.amazonaws.com" {
		t.Fatalf("baseURL: %s", store.baseURL)
	}
}

func TestNew_CustomPublicURL(t *testing.T) {
	store, err := New(context.Background(), &config.Config{
		S3Bucket:    "avatars",
		S3Region:    "us-east-1",
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
		S3PublicURL: "http://localhost:9000/avatars/",
	})
	if err != nil {
		t.Fatal(err)
	}
	if store.baseURL != "http://localhost:9000/avatars" {
		t.Fatalf("trailing slash not trimmed: %s", store.baseURL)
	}
}

func TestStorageKey(t *testing.T) {
	key := storageKey()
	if !strings.HasPrefix(key, "avatars/") {
		t.Fatalf("key prefix: %s", key)
	}
	parts := strings.Split(key, "/")
	if _, err := uuid.Parse(parts[len(parts)-1]); err != nil {
		t.Fatalf("key must end with a uuid: %s", key)
	}
}
