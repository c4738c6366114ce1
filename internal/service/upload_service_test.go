package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"ops-collab-be/internal/config"
	"ops-collab-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploadService(t *testing.T) (IUploadService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{BaseURL: "http://localhost:8080"},
		Upload: config.UploadConfig{
			Dir:           dir,
			MaxImageBytes: 1024,
			MaxCoverBytes: 512,
			MaxFileBytes:  2048,
		},
	}
	return NewUploadService(cfg), dir
}

func formFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

func TestUploadSavesImageToDisk(t *testing.T) {
	svc, dir := newTestUploadService(t)

	res, err := svc.Save(formFile(t, "diagram.png", []byte("png-bytes")), UploadImage)
	require.NoError(t, err)

	assert.Equal(t, "diagram.png", res.FileName)
	assert.Equal(t, int64(len("png-bytes")), res.FileSize)
	assert.Contains(t, res.URL, "http://localhost:8080/uploads/images/")

	entries, err := os.ReadDir(filepath.Join(dir, "images"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestUploadService(t)

	big := make([]byte, 600)
	_, err := svc.Save(formFile(t, "cover.jpg", big), UploadCover)
	assert.ErrorIs(t, err, serverutils.ErrFileTooLarge)
}

func TestUploadRejectsNonImageForImageKinds(t *testing.T) {
	svc, _ := newTestUploadService(t)

	_, err := svc.Save(formFile(t, "notes.pdf", []byte("pdf")), UploadImage)
	require.Error(t, err)

	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
}

func TestUploadAcceptsArbitraryAttachment(t *testing.T) {
	svc, _ := newTestUploadService(t)

	res, err := svc.Save(formFile(t, "export.csv", []byte("a,b,c")), UploadFile)
	require.NoError(t, err)
	assert.Contains(t, res.URL, "/uploads/files/")
}
