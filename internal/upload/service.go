// Package upload mints short-lived signed URLs for résumé uploads from
// the public apply form. The server never proxies file bytes; it hands
// the client a destination whose signature the storage frontend
// verifies, so only allowlisted content types and server-chosen names
// can land in storage.
package upload

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"shoptrack/internal/platform/config"
	dErrors "shoptrack/pkg/domain-errors"
)

// allowedTypes is the résumé content-type allowlist.
var allowedTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
}

// extPattern constrains the extension taken from the client file name so
// path separators or other junk never reach the stored name.
var extPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// SignedUpload is what the client needs to perform the upload and later
// reference the file.
type SignedUpload struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	FileName  string    `json:"file_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service mints signed upload destinations.
type Service struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
	logger  *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service from config.
func New(cfg config.UploadConfig, opts ...Option) *Service {
	s := &Service{
		secret:  []byte(cfg.SigningSecret),
		baseURL: strings.TrimRight(cfg.StorageBaseURL, "/"),
		ttl:     cfg.URLTTL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign mints a signed upload URL. The stored name is server-generated;
// only the extension survives from the client's file name, so a caller
// can never choose a path.
func (s *Service) Sign(fileName, contentType string) (*SignedUpload, error) {
	if !allowedTypes[strings.ToLower(strings.TrimSpace(contentType))] {
		return nil, dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("Invalid content type %q", contentType))
	}

	ext := "pdf"
	if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
		if candidate := strings.ToLower(fileName[i+1:]); extPattern.MatchString(candidate) {
			ext = candidate
		}
	}

	storedName := uuid.NewString() + "." + ext
	expiresAt := time.Now().UTC().Add(s.ttl)

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expiresAt.Unix(), 10))
	q.Set("signature", s.signature(storedName, expiresAt.Unix()))

	return &SignedUpload{
		UploadURL: s.baseURL + "/resumes/" + storedName + "?" + q.Encode(),
		PublicURL: s.baseURL + "/resumes/" + storedName,
		FileName:  storedName,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks a previously minted signature. The storage frontend
// calls this before accepting bytes.
func (s *Service) Verify(fileName string, expires int64, signature string) error {
	if time.Now().UTC().Unix() > expires {
		return dErrors.New(dErrors.CodeForbidden, "upload URL has expired")
	}
	expected := s.signature(fileName, expires)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return dErrors.New(dErrors.CodeForbidden, "invalid upload signature")
	}
	return nil
}

func (s *Service) signature(fileName string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", fileName, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
