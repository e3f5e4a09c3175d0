package media

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	fbstorage "firebase.google.com/go/v4/storage"
	"go.uber.org/zap"
)

// LocalStore writes files under a directory served at publicBaseURL.
type LocalStore struct {
	savePath      string
	publicBaseURL string
	logger        *zap.Logger
}

func NewLocalStore(savePath, publicBaseURL string, logger *zap.Logger) (*LocalStore, error) {
	if savePath == "" {
		return nil, fmt.Errorf("image save path (IMAGE_SAVE_PATH) is not configured")
	}
	if publicBaseURL == "" {
		return nil, fmt.Errorf("image public base URL (IMAGE_PUBLIC_BASE_URL) is not configured")
	}
	if err := os.MkdirAll(savePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %q: %w", savePath, err)
	}
	return &LocalStore{
		savePath:      savePath,
		publicBaseURL: publicBaseURL,
		logger:        logger.Named("LocalStore"),
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := path.Clean("/" + name)[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: invalid file name %q", ErrImageSaveFailed, name)
	}

	filePath := filepath.Join(s.savePath, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageSaveFailed, err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		s.logger.Error("Failed to save image to file", zap.String("path", filePath), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrImageSaveFailed, err)
	}

	publicURL, err := joinURL(s.publicBaseURL, clean)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageSaveFailed, err)
	}
	s.logger.Info("Image saved to file",
		zap.String("path", filePath),
		zap.String("content_type", contentType),
		zap.String("url", publicURL))
	return publicURL, nil
}

// joinURL appends name to base, defaulting to https when base has no scheme.
func joinURL(base, name string) (string, error) {
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid public base URL %q: %w", base, err)
	}
	return u.JoinPath(name).String(), nil
}

// FirebaseStore uploads files to a Firebase Storage bucket.
type FirebaseStore struct {
	client *fbstorage.Client
	bucket string
	logger *zap.Logger
}

func NewFirebaseStore(client *fbstorage.Client, bucket string, logger *zap.Logger) *FirebaseStore {
	return &FirebaseStore{client: client, bucket: bucket, logger: logger.Named("FirebaseStore")}
}

func (s *FirebaseStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	bucket, err := s.client.Bucket(s.bucket)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open bucket %q: %v", ErrImageSaveFailed, s.bucket, err)
	}

	w := bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%w: upload %q: %v", ErrImageSaveFailed, name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: finalize %q: %v", ErrImageSaveFailed, name, err)
	}

	publicURL := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, name)
	s.logger.Info("Image uploaded", zap.String("object", name), zap.Int("size_bytes", len(data)))
	return publicURL, nil
}
