package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const postSubdir = "posts"

// MediaStore 媒体文件落盘；帖子图片统一放在 <root>/posts/ 下
type MediaStore struct {
	root string
}

func NewMediaStore(root string) (*MediaStore, error) {
	if err := os.MkdirAll(filepath.Join(root, postSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &MediaStore{root: root}, nil
}

func (s *MediaStore) Root() string { return s.root }

// SavePost stores an uploaded post image and returns its media-relative
// path (forward slashes) for the Post record.
func (s *MediaStore) SavePost(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	rel := path.Join(postSubdir, uuid.New().String()+ext)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return rel, nil
}
