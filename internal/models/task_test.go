package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskStatus_Valid(t *testing.T) {
	require.True(t, StatusTodo.Valid())
	require.True(t, StatusDoing.Valid())
	require.True(t, StatusDone.Valid())
	require.False(t, TaskStatus("LATER").Valid())
	require.False(t, TaskStatus("todo").Valid())
	require.False(t, TaskStatus("").Valid())
}

func TestTaskStatus_RankOrdersWorkflow(t *testing.T) {
	require.Less(t, StatusTodo.Rank(), StatusDoing.Rank())
	require.Less(t, StatusDoing.Rank(), StatusDone.Rank())
	require.Greater(t, TaskStatus("unknown").Rank(), StatusDone.Rank())
}
