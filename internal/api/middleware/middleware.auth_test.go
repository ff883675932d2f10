package middleware

import (
	"testing"
	"time"

	authmodels "outlet_admin/internal/api/auth/models"
	"outlet_admin/internal/api/events"
	"outlet_admin/internal/global"
	"outlet_admin/internal/utility"
)

func newTestAuthManager() *AuthManager {
	return &AuthManager{Cache: utility.NewCache(time.Minute, time.Minute)}
}

func TestOnUserDataChangedFlushesTokenCache(t *testing.T) {
	global.MongoDB_ColNames.Users = "users"
	am := newTestAuthManager()
	defer am.Cache.Stop()

	am.Cache.Set("auth_token:tok-1", authmodels.User{Email: "a@example.com"})
	am.Cache.Set("auth_token:tok-2", authmodels.User{Email: "b@example.com"})

	// Document của event update là bản ghi SAU thay đổi — token bị thu hồi
	// không còn trên đó, nên mọi bản cache phải chết
	am.onUserDataChanged(events.DataChangeEvent{
		CollectionName: "users",
		Operation:      events.OpUpdate,
		Document:       authmodels.User{Email: "a@example.com"},
	})

	if _, found := am.Cache.Get("auth_token:tok-1"); found {
		t.Error("cache token phải bị xóa khi users thay đổi")
	}
	if _, found := am.Cache.Get("auth_token:tok-2"); found {
		t.Error("toàn bộ cache token phải bị xóa, không chỉ user bị sửa")
	}
}

func TestOnUserDataChangedIgnoresOtherCollections(t *testing.T) {
	global.MongoDB_ColNames.Users = "users"
	am := newTestAuthManager()
	defer am.Cache.Stop()

	am.Cache.Set("auth_token:tok-1", authmodels.User{Email: "a@example.com"})

	am.onUserDataChanged(events.DataChangeEvent{
		CollectionName: "categories",
		Operation:      events.OpInsert,
	})

	if _, found := am.Cache.Get("auth_token:tok-1"); !found {
		t.Error("thay đổi collection khác không được đụng tới cache token")
	}
}
