package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"strings"
	"time"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	"recipe-assistant/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	_ "golang.org/x/image/webp" // 支援 WebP
)

const jpegQuality = 85

// Service 圖片處理服務
type Service struct {
	maxSizeBytes int64
	client       *resty.Client
}

// NewService 創建新的圖片處理服務
func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
		client:       resty.New().SetTimeout(30 * time.Second),
	}
}

// ProcessImage 讀取 URL、data URI 或純 base64 圖片，轉成 JPEG data URI
func (s *Service) ProcessImage(ctx context.Context, imageData string) (string, error) {
	raw, err := s.load(ctx, imageData)
	if err != nil {
		return "", err
	}

	img, err := decode(raw)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ValidateImage 只驗證格式與大小，不重新編碼
func (s *Service) ValidateImage(ctx context.Context, imageData string) error {
	raw, err := s.load(ctx, imageData)
	if err != nil {
		return err
	}
	_, err = decode(raw)
	return err
}

// Kind 回傳圖片輸入的種類，只用於日誌
func Kind(imageData string) string {
	switch {
	case imageData == "":
		return "empty"
	case isURL(imageData):
		return "url"
	case strings.HasPrefix(imageData, "data:image/"):
		if head, _, ok := strings.Cut(imageData, ";base64,"); ok {
			return "data_uri_" + strings.TrimPrefix(head, "data:image/")
		}
		return "invalid_data_uri"
	default:
		return "base64"
	}
}

func (s *Service) load(ctx context.Context, imageData string) ([]byte, error) {
	imageData = strings.TrimSpace(imageData)
	if imageData == "" {
		return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("image data is empty"))
	}

	var (
		raw []byte
		err error
	)
	if isURL(imageData) {
		raw, err = s.download(ctx, imageData)
	} else {
		raw, err = decodeBase64(imageData)
	}
	if err != nil {
		return nil, err
	}

	if s.maxSizeBytes > 0 && int64(len(raw)) > s.maxSizeBytes {
		return nil, common.ErrImageTooLarge.Wrap(
			fmt.Errorf("image size %d exceeds maximum limit of %d bytes", len(raw), s.maxSizeBytes))
	}
	return raw, nil
}

func (s *Service) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("failed to download image: %w", err))
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("failed to download image: status code %d", resp.StatusCode()))
	}
	return resp.Body(), nil
}

func decodeBase64(imageData string) ([]byte, error) {
	payload := imageData
	if strings.HasPrefix(imageData, "data:") {
		_, data, ok := strings.Cut(imageData, ",")
		if !ok {
			return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("invalid data URI"))
		}
		payload = data
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("failed to decode base64 data: %w", err))
	}
	return raw, nil
}

func decode(raw []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("failed to decode image: %w", err))
	}
	if !isSupportedFormat(format) {
		return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("unsupported image format: %s", format))
	}
	return img, nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	switch format {
	case "jpeg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
