package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("unknown preset", "django", UnknownPreset, nil)
	assert.Equal(t, "unknown preset: django", configErr.Error())
	assert.Equal(t, "django", configErr.Param())
	assert.Equal(t, UnknownPreset, configErr.Kind())
	assert.True(t, IsConfigError(configErr))
	assert.True(t, IsUnknownPreset(configErr))
	assert.True(t, IsFatal(configErr))

	cause := fmt.Errorf("line 3: bad indent")
	configErr = NewConfigError("error parsing config file", "flat.yaml", InvalidConfig, cause)
	assert.Equal(t, "error parsing config file: flat.yaml: line 3: bad indent", configErr.Error())
	assert.False(t, IsUnknownPreset(configErr))
	assert.Equal(t, cause, Unwrap(configErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("source directory does not exist", "/nope", SourceNotFound, fs.ErrNotExist)
	assert.Equal(t, "source directory does not exist: /nope: file does not exist", fileErr.Error())
	assert.Equal(t, "/nope", fileErr.Path())
	assert.True(t, errors.Is(fileErr, fs.ErrNotExist))
	assert.True(t, IsFatal(fileErr))
	assert.Equal(t, SourceNotFound, KindOf(fileErr))
}

func TestTraversalError(t *testing.T) {
	travErr := NewTraversalError("cannot read directory", "/src/private", fs.ErrPermission)
	assert.Equal(t, "cannot read directory: /src/private: permission denied", travErr.Error())
	assert.Equal(t, "/src/private", travErr.Path())
	assert.True(t, IsTraversalError(travErr))
	assert.False(t, IsFatal(travErr))
	assert.Equal(t, TraversalFailed, KindOf(Wrap(travErr, "walk")))
}

func TestCopyError(t *testing.T) {
	copyErr := NewCopyError("copy failed", "/src/a.rs", "/out/a.rs", fs.ErrPermission)
	assert.Equal(t, "copy failed: /src/a.rs -> /out/a.rs: permission denied", copyErr.Error())
	assert.Equal(t, "/src/a.rs", copyErr.Source())
	assert.Equal(t, "/out/a.rs", copyErr.Dest())
	assert.True(t, IsCopyError(copyErr))
	assert.False(t, IsFatal(copyErr))
	assert.False(t, IsFatal(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "copy_failed", CopyFailed.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "kind(99)", ErrorKind(99).String())
	assert.Equal(t, Unknown, KindOf(fmt.Errorf("plain")))
}
