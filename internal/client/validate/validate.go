// Package validate performs selection-time checks on local video files,
// before any record enters a batch or any byte goes over the wire.
package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/mkorotkov/clipstream/internal/common"
	"github.com/mkorotkov/clipstream/internal/filex"
)

// FileTooLargeError reports a file above the per-file size ceiling.
type FileTooLargeError struct {
	Path string
	Size int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %s is %d bytes, max allowed is %d", e.Path, e.Size, common.MaxFileSizeBytes)
}

// UnsupportedTypeError reports a file whose content type is outside the
// allowlist. The message names the accepted formats so the user knows what
// would have passed.
type UnsupportedTypeError struct {
	Path        string
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("file %s has unsupported type %q, allowed types: %s",
		e.Path, e.ContentType, strings.Join(common.AllowedVideoTypes, ", "))
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == common.ErrUnsupportedMediaType
}

// Validate is the pure eligibility check over a declared content type and a
// byte size. The content type is checked before the size, so a wrong-type
// file is reported as such even when it is also oversized. No I/O.
func Validate(path, contentType string, size int64) error {
	if !common.IsAllowedVideoType(contentType) {
		return &UnsupportedTypeError{Path: path, ContentType: contentType}
	}
	if size > common.MaxFileSizeBytes {
		return &FileTooLargeError{Path: path, Size: size}
	}
	return nil
}

// Check resolves the content type and size of the file at path and validates
// them. On success it returns the detected content type and the file size in
// bytes.
func Check(path string) (contentType string, size int64, err error) {

	info, err := os.Stat(path)
	if err != nil {
		return "", 0, fmt.Errorf("cannot stat file: %w", err)
	}
	if info.IsDir() {
		return "", 0, fmt.Errorf("%s is a directory", path)
	}

	contentType = filex.DetectType(path)
	if err := Validate(path, contentType, info.Size()); err != nil {
		return "", 0, err
	}

	return contentType, info.Size(), nil
}
