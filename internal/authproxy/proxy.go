// Package authproxy は/api配下のリクエストをIdPへそのまま転送するパススルーを提供する。
package authproxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// FailureRecorder は転送失敗のメトリクス記録のインターフェースを定義する。
type FailureRecorder interface {
	RecordUpstreamFailure(reason string)
}

// hopByHopHeaders は転送時に除去するホップバイホップヘッダー。
// RFC 9110 7.6.1 に基づく。
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Proxy はIdPの公開APIへリクエストを転送するHTTPハンドラー。
// メソッド、ヘッダー、ボディを改変せずに送り、レスポンスの
// ステータス、ヘッダー、ボディをそのまま返す。Cookieヘッダーも
// 透過するため、IdPはセッションCookieを直接検証できる。
type Proxy struct {
	baseURL  *url.URL
	client   *http.Client
	recorder FailureRecorder
}

// NewProxy は新しいProxyを生成する。
// baseURLはIdPの公開ベースURL。clientはSSRFガード付きの転送用クライアント。
func NewProxy(baseURL string, client *http.Client, recorder FailureRecorder) (*Proxy, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("upstream base URL must be absolute: %s", baseURL)
	}

	return &Proxy{
		baseURL:  parsed,
		client:   client,
		recorder: recorder,
	}, nil
}

// ServeHTTP はリクエストを上流へ転送し、レスポンスを書き戻す。
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upstream := p.upstreamURL(r)

	// 1. 上流リクエストの組み立て（メソッドとボディは無改変）
	req, err := http.NewRequestWithContext(r.Context(), r.Method, upstream, r.Body)
	if err != nil {
		slog.Error("failed to build upstream request",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		p.recorder.RecordUpstreamFailure("build_request")
		writeBadGateway(w)
		return
	}

	// 2. ヘッダーのコピー（ホップバイホップを除く）
	copyHeaders(req.Header, r.Header)

	// 3. 上流へ送信
	resp, err := p.client.Do(req)
	if err != nil {
		reason := "unreachable"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		slog.Error("upstream request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		p.recorder.RecordUpstreamFailure(reason)
		writeBadGateway(w)
		return
	}
	defer resp.Body.Close()

	// 4. レスポンスの書き戻し（ステータス、ヘッダー、ボディ）
	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Warn("failed to relay upstream response body",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
}

// upstreamURL はリクエストのパスとクエリを上流ベースURLに結合する。
// /api プレフィックスは上流のパス構造と一致するため除去しない。
func (p *Proxy) upstreamURL(r *http.Request) string {
	u := *p.baseURL
	u.Path = strings.TrimSuffix(p.baseURL.Path, "/") + r.URL.Path
	u.RawQuery = r.URL.RawQuery
	return u.String()
}

// copyHeaders はホップバイホップヘッダーを除いてヘッダーをコピーする。
func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if isHopByHop(key) {
			continue
		}
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}

// isHopByHop はヘッダーがホップバイホップかを判定する。
func isHopByHop(key string) bool {
	for _, h := range hopByHopHeaders {
		if strings.EqualFold(key, h) {
			return true
		}
	}
	return false
}

// writeBadGateway は上流到達不能時の502レスポンスを書き込む。
// IdPのエラーフォーマットを偽装しないよう、最小限のJSONを返す。
func writeBadGateway(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	w.Write([]byte(`{"error":"upstream unavailable"}`))
}
