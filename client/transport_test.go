package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *SessionStore {
	t.Helper()
	session := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, session.Load())
	return session
}

func TestSessionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	session := NewSessionStore(path)
	require.NoError(t, session.Load())
	user := &SessionUser{ID: "u1", Email: "admin@example.com", Name: "Admin", Role: "admin"}
	require.NoError(t, session.Set(user, "access-1", "refresh-1"))

	// Store mới đọc lại từ cùng file phải thấy nguyên phiên
	reloaded := NewSessionStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, "access-1", reloaded.AccessToken())
	assert.Equal(t, "refresh-1", reloaded.RefreshToken())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, "admin@example.com", reloaded.User().Email)
}

func TestSessionStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{không phải json"), 0600))

	session := NewSessionStore(path)
	require.NoError(t, session.Load(), "file hỏng coi như chưa đăng nhập")
	assert.Empty(t, session.AccessToken())
	assert.Nil(t, session.User())
}

func TestTransportAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, []Category{}, "")
	}))
	defer server.Close()

	session := newTestSession(t)
	require.NoError(t, session.Set(&SessionUser{ID: "u1"}, "token-abc", "refresh-abc"))
	transport := NewTransport(server.URL, session, nil)

	_, err := transport.do(context.Background(), http.MethodGet, "/categories", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)
}

func TestTransportClearsSessionOn401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, nil, "Token không hợp lệ")
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	session := NewSessionStore(path)
	require.NoError(t, session.Load())
	require.NoError(t, session.Set(&SessionUser{ID: "u1", Role: "admin"}, "token-abc", "refresh-abc"))

	var hookCalls int32
	transport := NewTransport(server.URL, session, func() {
		atomic.AddInt32(&hookCalls, 1)
		// Phiên phải đã bị xóa TRƯỚC khi hook chạy
		assert.Empty(t, session.AccessToken())
	})

	service := NewCategoryService(transport)
	result := service.List(context.Background())

	require.False(t, result.IsOk())
	assert.Equal(t, "Token không hợp lệ", result.Message())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hookCalls), "hook chạy đúng một lần cho response")

	// Cả ba thành phần của phiên bị xóa cùng lúc, kể cả bản mirror trên đĩa
	assert.Empty(t, session.AccessToken())
	assert.Empty(t, session.RefreshToken())
	assert.Nil(t, session.User())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestTransportServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, false, nil, "Không thể xóa danh mục vì có 3 loại outlet đang sử dụng")
	}))
	defer server.Close()

	transport := NewTransport(server.URL, newTestSession(t), nil)
	_, err := transport.do(context.Background(), http.MethodDelete, "/categories/c1", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 loại outlet")
}

func TestOutletTypeListFilterParam(t *testing.T) {
	var gotQueries []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQueries = append(gotQueries, r.URL.Query())
		writeEnvelope(w, http.StatusOK, true, []OutletType{}, "")
	}))
	defer server.Close()

	service := NewOutletTypeService(NewTransport(server.URL, newTestSession(t), nil))
	ctx := context.Background()

	require.True(t, service.List(ctx, "cat-123").IsOk())
	require.True(t, service.List(ctx, FilterAll).IsOk())
	require.True(t, service.List(ctx, "").IsOk())

	require.Len(t, gotQueries, 3)
	assert.Equal(t, "cat-123", gotQueries[0].Get("categoryId"), "lọc cụ thể phải gửi categoryId")
	assert.False(t, gotQueries[1].Has("categoryId"), "lọc 'all' không gửi tham số")
	assert.False(t, gotQueries[2].Has("categoryId"), "chuỗi rỗng không gửi tham số")
}

func TestMutationSerializationPerCollection(t *testing.T) {
	var inFlight, maxInFlight int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&inFlight, 1)
		for {
			seen := atomic.LoadInt32(&maxInFlight)
			if current <= seen || atomic.CompareAndSwapInt32(&maxInFlight, seen, current) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		writeEnvelope(w, http.StatusOK, true, Category{ID: "c1", Name: "X", Active: true}, "")
	}))
	defer server.Close()

	service := NewCategoryService(NewTransport(server.URL, newTestSession(t), nil))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.True(t, service.Create(ctx, CategoryPayload{Name: "X"}).IsOk())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight),
		"mutation cùng collection phải xếp hàng, không chạy song song")
}

func TestAuthLoginStoresSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, LoginData{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User:         SessionUser{ID: "u1", Email: "admin@example.com", Role: "admin"},
		}, "")
	}))
	defer server.Close()

	session := newTestSession(t)
	auth := NewAuthService(NewTransport(server.URL, session, nil), session)

	result := auth.Login(context.Background(), "admin@example.com", "secret")
	require.True(t, result.IsOk())
	assert.Equal(t, "access-1", session.AccessToken())
	assert.Equal(t, "refresh-1", session.RefreshToken())
	require.NotNil(t, session.User())
	assert.Equal(t, "admin", session.User().Role)
}

func TestAuthLogoutClearsSessionEvenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, false, nil, "Lỗi hệ thống")
	}))
	defer server.Close()

	session := newTestSession(t)
	require.NoError(t, session.Set(&SessionUser{ID: "u1"}, "access-1", "refresh-1"))
	auth := NewAuthService(NewTransport(server.URL, session, nil), session)

	result := auth.Logout(context.Background())
	assert.False(t, result.IsOk())
	assert.Empty(t, session.AccessToken(), "phiên cục bộ vẫn bị xóa khi server lỗi")
	assert.Nil(t, session.User())
}
