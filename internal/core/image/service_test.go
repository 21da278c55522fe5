package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipe-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessImage(t *testing.T) {
	t.Parallel()

	raw := samplePNG(t)
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name  string
		input string
	}{
		{"data uri", "data:image/png;base64," + encoded},
		{"plain base64", encoded},
		{"surrounding whitespace", "  " + encoded + "\n"},
	}

	svc := NewService(1 << 20)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := svc.ProcessImage(context.Background(), tt.input)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))
			assert.NoError(t, svc.ValidateImage(context.Background(), out))
		})
	}
}

func TestProcessImage_URL(t *testing.T) {
	t.Parallel()

	raw := samplePNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dish.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	svc := NewService(1 << 20)
	out, err := svc.ProcessImage(context.Background(), srv.URL+"/dish.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	_, err = svc.ProcessImage(context.Background(), srv.URL+"/missing.png")
	assert.ErrorIs(t, err, common.ErrInvalidImage)
}

func TestProcessImage_Errors(t *testing.T) {
	t.Parallel()

	raw := samplePNG(t)

	tests := []struct {
		name    string
		maxSize int64
		input   string
		wantErr error
	}{
		{"empty", 0, "  ", common.ErrInvalidImage},
		{"bad base64", 0, "not*base64", common.ErrInvalidImage},
		{"data uri without comma", 0, "data:image/png;base64", common.ErrInvalidImage},
		{"not an image", 0, base64.StdEncoding.EncodeToString([]byte("hello world")), common.ErrInvalidImage},
		{"too large", int64(len(raw) - 1), base64.StdEncoding.EncodeToString(raw), common.ErrImageTooLarge},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewService(tt.maxSize).ProcessImage(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "empty", Kind(""))
	assert.Equal(t, "url", Kind("https://example.com/a.jpg"))
	assert.Equal(t, "data_uri_png", Kind("data:image/png;base64,AAAA"))
	assert.Equal(t, "invalid_data_uri", Kind("data:image/png,AAAA"))
	assert.Equal(t, "base64", Kind("AAAA"))
}
