package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedCheckin(t *testing.T, kv *MemoryKV, userID uint, dateKey, payload string) {
	t.Helper()
	require.NoError(t, kv.Set(context.Background(), checkinKey(userID, dateKey), payload))
}

func seedRaw(t *testing.T, kv *MemoryKV, key, payload string) {
	t.Helper()
	require.NoError(t, kv.Set(context.Background(), key, payload))
}
