package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ops-collab-be/internal/config"
	"ops-collab-be/internal/dto"
	"ops-collab-be/internal/pkg/serverutils"

	"github.com/google/uuid"
)

// UploadKind selects the size ceiling and the subdirectory a file lands in.
type UploadKind string

const (
	UploadImage UploadKind = "image" // inline report images
	UploadCover UploadKind = "cover" // folder cover images
	UploadFile  UploadKind = "file"  // report attachments
)

type IUploadService interface {
	Save(file *multipart.FileHeader, kind UploadKind) (*dto.UploadResponse, error)
}

type uploadService struct {
	dir     string
	baseURL string
	limits  map[UploadKind]int64
}

func NewUploadService(cfg *config.Config) IUploadService {
	return &uploadService{
		dir:     cfg.Upload.Dir,
		baseURL: cfg.App.BaseURL,
		limits: map[UploadKind]int64{
			UploadImage: int64(cfg.Upload.MaxImageBytes),
			UploadCover: int64(cfg.Upload.MaxCoverBytes),
			UploadFile:  int64(cfg.Upload.MaxFileBytes),
		},
	}
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

func (s *uploadService) Save(file *multipart.FileHeader, kind UploadKind) (*dto.UploadResponse, error) {
	limit, ok := s.limits[kind]
	if !ok {
		return nil, serverutils.NewAppError(400, "unknown upload kind")
	}
	if file.Size > limit {
		return nil, serverutils.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if (kind == UploadImage || kind == UploadCover) && !imageExtensions[ext] {
		return nil, serverutils.NewAppError(400, "unsupported image format")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	subdir := string(kind) + "s"
	uploadDir := filepath.Join(s.dir, subdir)
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)
	dstPath := filepath.Join(uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return nil, err
	}

	return &dto.UploadResponse{
		URL:      fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, subdir, filename),
		FileName: file.Filename,
		FileSize: file.Size,
		FileType: file.Header.Get("Content-Type"),
	}, nil
}
