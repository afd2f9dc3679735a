package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/pictale/pkg/pictale/domain"
	"kgeyst.com/pictale/pkg/pictale/domain/domaintest"
)

func TestReadUploadRejectsFormatBeforeReadingFile(t *testing.T) {
	_, err := readUpload(domain.NewUploadGate(), filepath.Join(t.TempDir(), "notes.txt"))

	var rejectedFormatErr *domain.RejectedFormatError
	require.ErrorAs(t, err, &rejectedFormatErr)
	assert.Equal(t, domain.RejectedFormatMessage, describeError(err))
}

func TestReadUploadMissingImage(t *testing.T) {
	_, err := readUpload(domain.NewUploadGate(), filepath.Join(t.TempDir(), "cat.png"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cat.PNG")
	require.NoError(t, os.WriteFile(path, domaintest.PNG(), 0o600))

	upload, err := readUpload(domain.NewUploadGate(), path)

	require.NoError(t, err)
	assert.Equal(t, "Cat.PNG", upload.Name)
	assert.Equal(t, domaintest.PNG(), upload.Data)
}
