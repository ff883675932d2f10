package events

import (
	"context"
	"testing"
	"time"
)

func TestEmitDataChangedInvokesHandlers(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		received <- e
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "categories",
		Operation:      OpInsert,
	})

	select {
	case e := <-received:
		if e.CollectionName != "categories" || e.Operation != OpInsert {
			t.Errorf("event sai nội dung: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("handler không được gọi sau khi emit")
	}
}

func TestEmitDataChangedRecoversHandlerPanic(t *testing.T) {
	done := make(chan struct{}, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		panic("handler hỏng")
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		done <- struct{}{}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "outlets",
		Operation:      OpDelete,
	})

	select {
	case <-done:
		// Handler panic không được kéo sập các handler khác
	case <-time.After(time.Second):
		t.Fatal("handler phía sau không chạy khi handler trước panic")
	}
}
