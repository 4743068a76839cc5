package validate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkorotkov/clipstream/internal/common"
)

// minimal ISO BMFF header so content sniffing recognizes video/mp4
var mp4Header = append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestCheck_ValidMP4(t *testing.T) {
	path := writeFile(t, "clip.mp4", mp4Header)

	ct, size, err := Check(path)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", ct)
	assert.Equal(t, int64(len(mp4Header)), size)
}

func TestCheck_TextFileRejected(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("not a video"))

	_, _, err := Check(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnsupportedMediaType)

	var typeErr *UnsupportedTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, path, typeErr.Path)
}

func TestUnsupportedTypeError_NamesAcceptedFormats(t *testing.T) {
	err := Validate("/tmp/x.txt", "text/plain", 10)
	require.Error(t, err)

	for _, allowed := range common.AllowedVideoTypes {
		assert.Contains(t, err.Error(), allowed)
	}
}

func TestCheck_RenamedTextFileRejected(t *testing.T) {
	// extension lies; sniffing sees through it
	path := writeFile(t, "fake.mp4", []byte("plain text pretending to be video"))

	_, _, err := Check(path)
	assert.ErrorIs(t, err, common.ErrUnsupportedMediaType)
}

func TestCheck_MissingFile(t *testing.T) {
	_, _, err := Check(filepath.Join(t.TempDir(), "absent.mp4"))
	assert.Error(t, err)
}

func TestCheck_Directory(t *testing.T) {
	_, _, err := Check(t.TempDir())
	assert.Error(t, err)
}

func TestCheck_TypeCheckedBeforeSize(t *testing.T) {
	// a wrong-type file must surface the type error, never a size error
	path := writeFile(t, "big.txt", []byte("text"))

	_, _, err := Check(path)

	var sizeErr *FileTooLargeError
	assert.False(t, errors.As(err, &sizeErr))
	assert.ErrorIs(t, err, common.ErrUnsupportedMediaType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		wantErr     error
	}{
		{"mp4 accepted", "video/mp4", 1024, nil},
		{"quicktime accepted", "video/quicktime", 1024, nil},
		{"webm accepted", "video/webm", 1024, nil},
		{"avi accepted", "video/x-msvideo", 1024, nil},
		{"at the ceiling", "video/mp4", common.MaxFileSizeBytes, nil},
		{"over the ceiling", "video/mp4", common.MaxFileSizeBytes + 1, &FileTooLargeError{}},
		{"ogg rejected", "video/ogg", 1024, &UnsupportedTypeError{}},
		{"text rejected", "text/plain", 1024, &UnsupportedTypeError{}},
		{"empty type rejected", "", 1024, &UnsupportedTypeError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("clip", tt.contentType, tt.size)
			switch tt.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *FileTooLargeError:
				var e *FileTooLargeError
				assert.ErrorAs(t, err, &e)
			case *UnsupportedTypeError:
				assert.ErrorIs(t, err, common.ErrUnsupportedMediaType)
			}
		})
	}
}
