package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractImagePrefersInlineBytes(t *testing.T) {
	resp := &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{
			{Image: &genai.Image{ImageBytes: []byte{1, 2, 3}, GCSURI: "gs://bucket/img.png"}},
		},
	}

	data, uri, mime, err := extractImage(resp)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Empty(t, uri)
	assert.Equal(t, "image/png", mime)
}

func TestExtractImageFallsBackToGCSURI(t *testing.T) {
	resp := &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{
			{Image: &genai.Image{GCSURI: "gs://bucket/img.png", MIMEType: "image/jpeg"}},
		},
	}

	data, uri, mime, err := extractImage(resp)
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, "gs://bucket/img.png", uri)
	assert.Equal(t, "image/jpeg", mime)
}

func TestExtractImageScansLaterEntries(t *testing.T) {
	resp := &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{
			{Image: &genai.Image{}},
			{Image: &genai.Image{ImageBytes: []byte{9}}},
		},
	}

	data, _, _, err := extractImage(resp)
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, data)
}

func TestExtractImageEmptyResponse(t *testing.T) {
	_, _, _, err := extractImage(nil)
	assert.ErrorIs(t, err, ErrNoImageData)

	_, _, _, err = extractImage(&genai.GenerateImagesResponse{})
	assert.ErrorIs(t, err, ErrNoImageData)
}
