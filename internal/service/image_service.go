package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	xdraw "golang.org/x/image/draw"
)

// FallbackImageRef 是图片生成失败时使用的固定兜底图。
const FallbackImageRef = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&q=80&w=400"

// ErrImageRequestInFlight 表示上一次图片生成尚未结束。
var ErrImageRequestInFlight = errors.New("image request already in flight")

// maxImageWidth 与前台展示宽度一致，生成图会被等比缩小到该宽度以内。
const maxImageWidth = 400

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type imagePredictRequest struct {
	Instances  imagePromptInstance   `json:"instances"`
	Parameters imagePredictParameter `json:"parameters"`
}

type imagePromptInstance struct {
	Prompt string `json:"prompt"`
}

type imagePredictParameter struct {
	SampleCount int `json:"sampleCount"`
}

type imagePredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ImageService 调用外部图片生成接口，任何失败都解析为兜底图。
// 同一时刻最多允许一次在途请求，由 inFlight 标记保证。
type ImageService struct {
	http     httpDoer
	baseURL  string
	model    string
	apiKey   string
	inFlight atomic.Bool
}

// NewImageService 构造 ImageService。
func NewImageService(apiKey string) *ImageService {
	return &ImageService{
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		model:   "imagen-4.0-generate-001",
		apiKey:  strings.TrimSpace(apiKey),
	}
}

// SetHTTPClient 替换 HTTP 客户端，主要面向测试场景。
func (s *ImageService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 60 * time.Second}
		return
	}
	s.http = client
}

// SetBaseURL 覆盖图片接口的基础地址，便于测试或自定义代理。
func (s *ImageService) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// InFlight 返回当前是否有在途请求。
func (s *ImageService) InFlight() bool {
	return s.inFlight.Load()
}

// AcquireImage 根据提示词生成一张图片并返回可展示的引用。
// 上一次请求未结束时返回 ErrImageRequestInFlight；其余任何失败
// （网络错误、非 2xx、响应体异常）都会记录日志并返回兜底图，不向上抛错。
func (s *ImageService) AcquireImage(ctx context.Context, prompt string) (string, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return "", ErrImageRequestInFlight
	}
	defer s.inFlight.Store(false)

	ref, err := s.requestImage(ctx, prompt)
	if err != nil {
		log.Printf("image generation failed, using fallback: %v", err)
		return FallbackImageRef, nil
	}
	return ref, nil
}

func (s *ImageService) requestImage(ctx context.Context, prompt string) (string, error) {
	payload := imagePredictRequest{
		Instances:  imagePromptInstance{Prompt: strings.TrimSpace(prompt)},
		Parameters: imagePredictParameter{SampleCount: 1},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("构造请求失败: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:predict?key=%s", strings.TrimRight(s.baseURL, "/"), s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("创建图片请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "xdiner-cms/1.0")

	client := s.http
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求图片接口失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", fmt.Errorf("读取图片响应失败: %w", err)
	}

	var predict imagePredictResponse
	if err := json.Unmarshal(respBody, &predict); err != nil {
		return "", fmt.Errorf("解析图片响应失败: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(predict.Error.Message)
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("图片接口返回错误：%s", msg)
	}

	if len(predict.Predictions) == 0 || strings.TrimSpace(predict.Predictions[0].BytesBase64Encoded) == "" {
		return "", errors.New("图片接口未返回结果")
	}

	raw, err := base64.StdEncoding.DecodeString(predict.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return "", fmt.Errorf("解码图片数据失败: %w", err)
	}

	encoded, err := fitDisplayWidth(raw)
	if err != nil {
		return "", fmt.Errorf("处理图片失败: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(encoded), nil
}

// fitDisplayWidth 将 PNG 等比缩小到展示宽度以内，已足够小时原样返回。
func fitDisplayWidth(raw []byte) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() <= maxImageWidth {
		return raw, nil
	}

	height := bounds.Dy() * maxImageWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
