package client

import (
	"encoding/json"
	"os"
	"sync"
)

// SessionUser là thông tin người dùng của phiên đăng nhập hiện tại
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// sessionState là trạng thái được mirror xuống file JSON
type sessionState struct {
	User         *SessionUser `json:"user,omitempty"`
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
}

// SessionStore giữ phiên đăng nhập hiện tại và mirror xuống một file JSON
// (tương đương persisted storage phía trình duyệt). An toàn khi dùng đồng thời.
// Token, refresh token và user luôn được ghi/xóa cùng nhau.
type SessionStore struct {
	mu    sync.RWMutex
	path  string
	state sessionState
}

// NewSessionStore tạo store với đường dẫn file lưu phiên
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load đọc phiên từ file lúc khởi động. File chưa tồn tại không phải lỗi.
func (s *SessionStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = sessionState{}
			return nil
		}
		return err
	}

	var state sessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		// File hỏng coi như chưa đăng nhập
		s.state = sessionState{}
		return nil
	}
	s.state = state
	return nil
}

// Set lưu phiên mới (user + cặp token) và mirror xuống file
func (s *SessionStore) Set(user *SessionUser, accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = sessionState{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	return s.persistLocked()
}

// Clear xóa toàn bộ phiên: user, access token và refresh token cùng lúc
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = sessionState{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AccessToken trả về access token hiện tại ("" khi chưa đăng nhập)
func (s *SessionStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

// RefreshToken trả về refresh token hiện tại
func (s *SessionStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RefreshToken
}

// User trả về user của phiên hiện tại (nil khi chưa đăng nhập)
func (s *SessionStore) User() *SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	user := *s.state.User
	return &user
}

// persistLocked ghi trạng thái hiện tại xuống file. Caller phải giữ lock.
func (s *SessionStore) persistLocked() error {
	raw, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0600)
}
