package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pustakalaya/intake-service/internal/errs"
	"github.com/pustakalaya/intake-service/internal/model"
)

const MaxCertificateBytes = 5 << 20 // 5 MiB

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type Config struct {
	CertificatesDir string `yaml:"certificatesDir" envconfig:"CERTIFICATES_DIR" default:"uploads/certificates"`
}

// CertificateStore persists uploaded certificate images to a local
// directory, created on demand. It performs no database writes: linking a
// stored file to a donor happens through the intake transaction.
type CertificateStore struct {
	dir string
}

func NewCertificateStore(cfg Config) *CertificateStore {
	return &CertificateStore{dir: cfg.CertificatesDir}
}

// Save validates the upload and writes it under a unique name.
// The declared content type must be JPEG or PNG and the size at most 5 MiB.
func (s *CertificateStore) Save(fh *multipart.FileHeader) (model.UploadResult, error) {
	if fh.Size > MaxCertificateBytes {
		return model.UploadResult{}, errs.NewValidationError("file size too large, maximum 5MB allowed")
	}
	contentType := fh.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		return model.UploadResult{}, errs.NewValidationError("only JPEG and PNG files are allowed")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return model.UploadResult{}, errors.Wrap(err, "mkdir certificates")
	}

	name := uniqueName(fh.Filename)
	dst := filepath.Join(s.dir, name)

	src, err := fh.Open()
	if err != nil {
		return model.UploadResult{}, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return model.UploadResult{}, errors.Wrap(err, "create certificate file")
	}

	if _, err := io.Copy(out, io.LimitReader(src, MaxCertificateBytes)); err != nil {
		out.Close()
		os.Remove(dst)
		return model.UploadResult{}, errors.Wrap(err, "write certificate file")
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return model.UploadResult{}, errors.Wrap(err, "close certificate file")
	}

	return model.UploadResult{
		FilePath: dst,
		FileName: name,
	}, nil
}

func uniqueName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("cert_%s_%d%s", uuid.New(), time.Now().Unix(), ext)
}
