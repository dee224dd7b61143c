package utils_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-pg-admin/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestToStringSlice(t *testing.T) {
	require.Equal(t, []string{"paid", "1s"}, utils.ToStringSlice([]any{"paid", 42, time.Second, nil}))
	require.Empty(t, utils.ToStringSlice(nil))
}

func TestPointers(t *testing.T) {
	require.Equal(t, 0, utils.Value[int](nil))

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	p := utils.Ptr(at)
	at = at.Add(time.Hour)
	require.Equal(t, 9, utils.Value(p).Hour())
}
