// Package item は公開アイテムの検索・取得機能を提供する。
package item

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// SSRFValidator はSSRF検証のインターフェース。
type SSRFValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client
}

// ImageFetcher は出品者が指定したアイテム画像URLの取得機能。
// 画像URLは任意の外部URLであるため、SSRF検証を通したクライアントで取得する。
type ImageFetcher struct {
	ssrfGuard SSRFValidator
	timeout   time.Duration
	maxSize   int64
}

// NewImageFetcher はImageFetcherの新しいインスタンスを生成する。
func NewImageFetcher(ssrfGuard SSRFValidator, timeout time.Duration, maxSize int64) *ImageFetcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if maxSize <= 0 {
		maxSize = 2 * 1024 * 1024
	}
	return &ImageFetcher{
		ssrfGuard: ssrfGuard,
		timeout:   timeout,
		maxSize:   maxSize,
	}
}

// FetchImage は指定URLからアイテム画像を取得する。
// 取得失敗時はnilデータと空MIMEを返す（画像なしとして表示する。エラーは返さない）。
func (f *ImageFetcher) FetchImage(ctx context.Context, imageURL string) (data []byte, mimeType string, err error) {
	if imageURL == "" {
		return nil, "", nil
	}

	// SSRF検証
	if err := f.ssrfGuard.ValidateURL(imageURL); err != nil {
		slog.Warn("アイテム画像の取得: SSRFブロック",
			slog.String("url", imageURL),
			slog.String("error", err.Error()),
		)
		return nil, "", nil
	}

	client := f.ssrfGuard.NewSafeClient(f.timeout, f.maxSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", nil
	}
	req.Header.Set("User-Agent", "YardClient/1.0")

	resp, err := client.Do(req)
	if err != nil {
		slog.Warn("アイテム画像の取得に失敗しました",
			slog.String("url", imageURL),
			slog.String("error", err.Error()),
		)
		return nil, "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize))
	if err != nil || len(body) == 0 {
		return nil, "", nil
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(body)
	}

	return body, mime, nil
}
