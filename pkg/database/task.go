package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"StockBoard/pkg/model"
)

type TaskDB struct {
	db *gorm.DB
}

// Create 创建任务，completed一律从false开始
func (t *TaskDB) Create(task *model.Task) error {
	task.Completed = false
	if err := t.db.Create(task).Error; err != nil {
		return fmt.Errorf("创建任务失败: %w", err)
	}
	return nil
}

// List 未完成的在前，完成的在后，组内新建的在前
func (t *TaskDB) List() ([]*model.Task, error) {
	var tasks []*model.Task
	err := t.db.Order("completed ASC").Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("查询任务失败: %w", err)
	}
	return tasks, nil
}

// Get 按id查询，未找到时返回ErrTaskNotFound
func (t *TaskDB) Get(id int64) (*model.Task, error) {
	var task model.Task
	err := t.db.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("查询任务失败: %w", err)
	}
	return &task, nil
}

// Update 部分更新，fields以列名为键
// 没有字段时直接返回现有行
func (t *TaskDB) Update(id int64, fields map[string]interface{}) (*model.Task, error) {
	task, err := t.Get(id)
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return task, nil
	}

	if err := t.db.Model(task).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("更新任务失败: %w", err)
	}
	return t.Get(id)
}

// Delete 删除任务，返回是否真的删掉了一行
func (t *TaskDB) Delete(id int64) (bool, error) {
	result := t.db.Delete(&model.Task{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("删除任务失败: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
