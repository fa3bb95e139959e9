package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"max.ks1230/converter-bot/internal/entity/user"
)

func Test_OnGetUserByID_ShouldReturnEmptyRecordForUnknownUser(t *testing.T) {
	s := NewInMemStorage()

	rec, err := s.GetUserByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, user.Record{}, rec)
}

func Test_OnSaveUserByID_ShouldBeVisibleToGet(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	assert.NoError(t, s.SaveUserByID(ctx, 7, user.Record{From: "EUR", To: "USD"}))

	rec, err := s.GetUserByID(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, user.Record{From: "EUR", To: "USD"}, rec)
}

func Test_OnConcurrentAccess_ShouldKeepEveryUser(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	var wg sync.WaitGroup
	for i := int64(0); i < 100; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = s.SaveUserByID(ctx, id, user.Record{From: "EUR"})
			_, _ = s.GetUserByID(ctx, id)
		}(i)
	}
	wg.Wait()

	for i := int64(0); i < 100; i++ {
		rec, _ := s.GetUserByID(ctx, i)
		assert.Equal(t, "EUR", rec.From)
	}
}
