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
	"net/http"
	"strings"
	"testing"
	"time"
)

type fakeDoer struct {
	fn func(req *http.Request) (*http.Response, error)
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	return f.fn(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestAcquireImageFallbackOnNetworkFailure(t *testing.T) {
	svc := NewImageService("test-key")
	svc.SetHTTPClient(&fakeDoer{fn: func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}})

	ref, err := svc.AcquireImage(context.Background(), "a burger")
	if err != nil {
		t.Fatalf("failure must resolve, not error: %v", err)
	}
	if ref != FallbackImageRef {
		t.Fatalf("expected fallback image, got %q", ref)
	}
	if svc.InFlight() {
		t.Fatalf("in-flight flag must be cleared after failure")
	}
}

func TestAcquireImageFallbackOnHTTPError(t *testing.T) {
	svc := NewImageService("test-key")
	svc.SetHTTPClient(&fakeDoer{fn: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusForbidden, `{"error":{"message":"quota exceeded"}}`), nil
	}})

	ref, err := svc.AcquireImage(context.Background(), "a burger")
	if err != nil {
		t.Fatalf("http error must resolve, not error: %v", err)
	}
	if ref != FallbackImageRef {
		t.Fatalf("expected fallback image, got %q", ref)
	}
	if svc.InFlight() {
		t.Fatalf("in-flight flag must be cleared")
	}
}

func TestAcquireImageFallbackOnMalformedBody(t *testing.T) {
	svc := NewImageService("test-key")
	svc.SetHTTPClient(&fakeDoer{fn: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"predictions`), nil
	}})

	ref, err := svc.AcquireImage(context.Background(), "a burger")
	if err != nil {
		t.Fatalf("malformed body must resolve, not error: %v", err)
	}
	if ref != FallbackImageRef {
		t.Fatalf("expected fallback image, got %q", ref)
	}
}

func TestAcquireImageSuccess(t *testing.T) {
	small := encodePNG(t, 320, 200)
	payload, _ := json.Marshal(map[string]interface{}{
		"predictions": []map[string]string{
			{"bytesBase64Encoded": base64.StdEncoding.EncodeToString(small)},
		},
	})

	svc := NewImageService("test-key")
	svc.SetHTTPClient(&fakeDoer{fn: func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, ":predict") {
			t.Fatalf("unexpected endpoint: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, string(payload)), nil
	}})

	ref, err := svc.AcquireImage(context.Background(), "a burger")
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if !strings.HasPrefix(ref, "data:image/png;base64,") {
		t.Fatalf("expected a png data uri, got %q", ref[:32])
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ref, "data:image/png;base64,"))
	if err != nil {
		t.Fatalf("decode data uri: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("result is not a valid png: %v", err)
	}
	if decoded.Bounds().Dx() != 320 {
		t.Fatalf("small image must not be resized, got width %d", decoded.Bounds().Dx())
	}
	if svc.InFlight() {
		t.Fatalf("in-flight flag must be cleared after success")
	}
}

func TestAcquireImageDownscalesWideImages(t *testing.T) {
	wide := encodePNG(t, 1024, 512)

	resized, err := fitDisplayWidth(wide)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(resized))
	if err != nil {
		t.Fatalf("decode resized png: %v", err)
	}
	if decoded.Bounds().Dx() != maxImageWidth {
		t.Fatalf("expected width %d, got %d", maxImageWidth, decoded.Bounds().Dx())
	}
	if decoded.Bounds().Dy() != 200 {
		t.Fatalf("expected proportional height 200, got %d", decoded.Bounds().Dy())
	}
}

func TestAcquireImageRejectsReentrantCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	svc := NewImageService("test-key")
	svc.SetHTTPClient(&fakeDoer{fn: func(req *http.Request) (*http.Response, error) {
		close(started)
		<-release
		return nil, errors.New("slow network")
	}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.AcquireImage(context.Background(), "first")
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatalf("first request never started")
	}

	if !svc.InFlight() {
		t.Fatalf("expected in-flight flag while request pending")
	}
	_, err := svc.AcquireImage(context.Background(), "second")
	if !errors.Is(err, ErrImageRequestInFlight) {
		t.Fatalf("expected ErrImageRequestInFlight, got %v", err)
	}

	close(release)
	<-done
	if svc.InFlight() {
		t.Fatalf("in-flight flag must be cleared after settle")
	}
}
