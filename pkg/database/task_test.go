package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockBoard/pkg/model"
)

func TestTaskCreateForcesIncomplete(t *testing.T) {
	db := newTestDB(t)

	task := &model.Task{
		Title:     "buy milk",
		Completed: true, // 调用方传什么都不算数
	}
	require.NoError(t, db.Task().Create(task))

	assert.NotZero(t, task.ID)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestTaskListOrdering(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	titles := []string{"first", "second", "third", "fourth"}
	ids := make(map[string]int64)
	for i, title := range titles {
		task := &model.Task{Title: title, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, db.Task().Create(task))
		ids[title] = task.ID
	}

	// 完成两个
	_, err := db.Task().Update(ids["first"], map[string]interface{}{"completed": true})
	require.NoError(t, err)
	_, err = db.Task().Update(ids["third"], map[string]interface{}{"completed": true})
	require.NoError(t, err)

	tasks, err := db.Task().List()
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	// 未完成的在前(新建的在前)，然后是完成的(新建的在前)
	assert.Equal(t, "fourth", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	assert.Equal(t, "third", tasks[2].Title)
	assert.Equal(t, "first", tasks[3].Title)
	assert.False(t, tasks[0].Completed)
	assert.False(t, tasks[1].Completed)
	assert.True(t, tasks[2].Completed)
	assert.True(t, tasks[3].Completed)
}

func TestTaskGetNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Task().Get(404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Contains(t, err.Error(), "404")
}

func TestTaskUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	description := "whole milk"
	task := &model.Task{Title: "buy milk", Description: &description}
	require.NoError(t, db.Task().Create(task))

	// 没有字段时直接返回现有行
	unchanged, err := db.Task().Update(task.ID, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", unchanged.Title)

	// 只改completed，其余不动
	updated, err := db.Task().Update(task.ID, map[string]interface{}{"completed": true})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "buy milk", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "whole milk", *updated.Description)
	// created_at不跟着变
	assert.True(t, updated.CreatedAt.Equal(task.CreatedAt))

	// 显式清空描述
	cleared, err := db.Task().Update(task.ID, map[string]interface{}{"description": nil})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
}

func TestTaskDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	task := &model.Task{Title: "buy milk"}
	require.NoError(t, db.Task().Create(task))

	deleted, err := db.Task().Delete(task.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = db.Task().Delete(task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
