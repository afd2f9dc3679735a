package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/pictale/pkg/pictale/domain"
	"kgeyst.com/pictale/pkg/pictale/domain/domaintest"
)

func TestDecodeImage(t *testing.T) {
	decoded, err := domain.DecodeImage(domain.UploadedImage{Name: "cat.png", Data: domaintest.PNG()})
	require.NoError(t, err)
	assert.Equal(t, "png", decoded.Format)
	assert.Equal(t, "image/png", decoded.MIMEType())
	assert.Equal(t, 4, decoded.Width)
	assert.Equal(t, 3, decoded.Height)
	assert.Equal(t, "cat.png", decoded.Name)

	// The declared extension doesn't matter, the content does.
	decoded, err = domain.DecodeImage(domain.UploadedImage{Name: "cat.png", Data: domaintest.JPEG()})
	require.NoError(t, err)
	assert.Equal(t, "jpeg", decoded.Format)
	assert.Equal(t, "image/jpeg", decoded.MIMEType())
}

func TestDecodeImageWithCorruptData(t *testing.T) {
	_, err := domain.DecodeImage(domain.UploadedImage{Name: "broken.jpg", Data: []byte("definitely not a jpeg")})
	var inferenceErr *domain.InferenceError
	require.ErrorAs(t, err, &inferenceErr)
	assert.Equal(t, domain.StageDecode, inferenceErr.Stage)

	truncated := domaintest.PNG()
	_, err = domain.DecodeImage(domain.UploadedImage{Name: "half.png", Data: truncated[:len(truncated)/2]})
	require.ErrorAs(t, err, &inferenceErr)
}
