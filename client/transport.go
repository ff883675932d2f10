package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// envelope là khung response chuẩn của server:
// {success, message?, data?, total?, pages?}
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Total   *int64          `json:"total,omitempty"`
	Pages   *int64          `json:"pages,omitempty"`
}

// Transport thực hiện các lời gọi HTTP tới server với bearer token tự gắn
// từ SessionStore. Gặp 401 ở bất kỳ response nào, hook onUnauthorized được
// gọi đúng một lần cho response đó (xóa phiên + điều hướng về login) TRƯỚC
// khi lỗi trả về caller. Không retry.
type Transport struct {
	baseURL        string
	httpClient     *http.Client
	session        *SessionStore
	onUnauthorized func()
}

// NewTransport tạo transport với base URL và session store.
// onUnauthorized được gọi mỗi khi một response trả về 401 (có thể nil).
func NewTransport(baseURL string, session *SessionStore, onUnauthorized func()) *Transport {
	return &Transport{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		session:        session,
		onUnauthorized: onUnauthorized,
	}
}

// do thực hiện một request JSON và trả về envelope đã parse.
// Response không phải 2xx trả về error mang message của server nếu có.
func (t *Transport) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	fullURL := t.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := t.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if len(raw) > 0 {
		// Body không parse được vẫn giữ envelope rỗng để còn báo lỗi theo status
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Xử lý toàn cục: xóa phiên rồi điều hướng, bất kể caller là ai
		t.session.Clear()
		if t.onUnauthorized != nil {
			t.onUnauthorized()
		}
		message := env.Message
		if message == "" {
			message = "Phiên đăng nhập đã hết hạn"
		}
		return nil, fmt.Errorf("%s", message)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := env.Message
		if message == "" {
			message = fmt.Sprintf("Yêu cầu thất bại (HTTP %d)", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", message)
	}

	if !env.Success {
		message := env.Message
		if message == "" {
			message = "Yêu cầu bị từ chối"
		}
		return nil, fmt.Errorf("%s", message)
	}

	return &env, nil
}

// decodeData decode phần data của envelope vào kiểu đích
func decodeData[T any](env *envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decode response data: %w", err)
	}
	return out, nil
}
