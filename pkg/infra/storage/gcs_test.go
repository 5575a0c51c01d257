package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/imgpress/pkg/infra/storage"
	"google.golang.org/api/option"
)

func TestGCS_ObjectName(t *testing.T) {
	ctx := context.Background()

	t.Run("without prefix", func(t *testing.T) {
		g, err := storage.NewGCS(ctx, "test-bucket", storage.WithClientOptions(option.WithoutAuthentication()))
		gt.NoError(t, err)
		defer func() {
			_ = g.Close()
		}()

		gt.V(t, g.ObjectName("compressed-images.zip")).Equal("compressed-images.zip")
	})

	t.Run("with prefix", func(t *testing.T) {
		g, err := storage.NewGCS(ctx, "test-bucket",
			storage.WithPrefix("batches/2024"),
			storage.WithClientOptions(option.WithoutAuthentication()),
		)
		gt.NoError(t, err)
		defer func() {
			_ = g.Close()
		}()

		gt.V(t, g.ObjectName("compressed-a.jpg.webp")).Equal("batches/2024/compressed-a.jpg.webp")
	})

	t.Run("empty bucket", func(t *testing.T) {
		_, err := storage.NewGCS(ctx, "")
		gt.Error(t, err)
	})
}

func TestGCS_Export_WithRealBucket(t *testing.T) {
	// Integration test with a real bucket, requires ADC or a key file
	bucket := os.Getenv("TEST_GCS_BUCKET")
	if bucket == "" {
		t.Skip("TEST_GCS_BUCKET is not set")
	}

	ctx := context.Background()
	var opts []storage.GCSOption
	opts = append(opts, storage.WithPrefix("imgpress-test"))
	if cred := os.Getenv("TEST_GCS_CREDENTIALS"); cred != "" {
		opts = append(opts, storage.WithCredentialsFile(cred))
	}

	g, err := storage.NewGCS(ctx, bucket, opts...)
	gt.NoError(t, err)
	defer func() {
		_ = g.Close()
	}()

	gt.NoError(t, g.Export(ctx, "compressed-test.png.webp", []byte("RIFF0000WEBP")))
}
