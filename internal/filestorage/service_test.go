package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupFileStorageService(t *testing.T) (*FileStorageService, string) {
	root := filepath.Join(t.TempDir(), "previews")
	fsService, err := NewFileStorageService(root, "/previews", zap.NewNop())
	require.NoError(t, err)
	return fsService, root
}

// newTestFileHeader builds a FileHeader the way gin would after parsing a multipart body.
func newTestFileHeader(t *testing.T, filename, content, contentType string) *multipart.FileHeader {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, filename))
	if contentType != "" {
		partHeader.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	files := form.File["photo"]
	require.NotEmpty(t, files)
	return files[0]
}

func TestSaveUploadedFile(t *testing.T) {
	fsService, root := setupFileStorageService(t)

	fh := newTestFileHeader(t, "front.JPEG", "jpeg bytes", "image/jpeg")
	rel, err := fsService.SaveUploadedFile(fh, "drafts/abc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "drafts/abc/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))
}

func TestSaveUploadedFile_InfersExtensionFromContentType(t *testing.T) {
	fsService, _ := setupFileStorageService(t)

	rel, err := fsService.SaveUploadedFile(newTestFileHeader(t, "blob", "png", "image/png"), "drafts/x")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, ".png"))
}

func TestSaveUploadedFile_Rejections(t *testing.T) {
	fsService, _ := setupFileStorageService(t)

	_, err := fsService.SaveUploadedFile(nil, "drafts/x")
	assert.EqualError(t, err, "fileHeader cannot be nil")

	_, err = fsService.SaveUploadedFile(newTestFileHeader(t, "notes.txt", "text", "text/plain"), "drafts/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = fsService.SaveUploadedFile(newTestFileHeader(t, "a.png", "png", "image/png"), "../escape")
	assert.Error(t, err)

	big := newTestFileHeader(t, "big.png", strings.Repeat("x", MaxPreviewSize+1), "image/png")
	_, err = fsService.SaveUploadedFile(big, "drafts/x")
	assert.Error(t, err)
}

func TestPublicURLRoundTrip(t *testing.T) {
	fsService, _ := setupFileStorageService(t)

	url := fsService.PublicURL("drafts/abc/1.jpg")
	assert.Equal(t, "/previews/drafts/abc/1.jpg", url)

	rel, ok := fsService.RelativePath(url)
	assert.True(t, ok)
	assert.Equal(t, "drafts/abc/1.jpg", rel)

	_, ok = fsService.RelativePath("https://images.example.com/car.jpg")
	assert.False(t, ok)
	_, ok = fsService.RelativePath("/previews/../secret")
	assert.False(t, ok)
}

func TestDeleteFile(t *testing.T) {
	fsService, root := setupFileStorageService(t)

	rel, err := fsService.SaveUploadedFile(newTestFileHeader(t, "a.png", "png", "image/png"), "drafts/d1")
	require.NoError(t, err)

	require.NoError(t, fsService.DeleteFile(rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, fsService.DeleteFile("drafts/d1/missing.png"))

	outside := filepath.Join(filepath.Dir(root), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))
	err = fsService.DeleteFile("../outside.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file path for deletion")
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestDeleteDir(t *testing.T) {
	fsService, root := setupFileStorageService(t)

	_, err := fsService.SaveUploadedFile(newTestFileHeader(t, "a.png", "png", "image/png"), "drafts/d2")
	require.NoError(t, err)
	_, err = fsService.SaveUploadedFile(newTestFileHeader(t, "b.png", "png", "image/png"), "drafts/d2")
	require.NoError(t, err)

	require.NoError(t, fsService.DeleteDir("drafts/d2"))
	_, err = os.Stat(filepath.Join(root, "drafts", "d2"))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, fsService.DeleteDir(""))
	assert.Error(t, fsService.DeleteDir(".."))
}
