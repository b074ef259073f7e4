package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"StockBoard/pkg/model"
)

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	// completed字段即使传了也忽略，新任务一律未完成
}

// CreateTask 创建任务
func (h *Handlers) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	task := model.Task{
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.db.Task().Create(&task); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": task})
}

// GetTasks 任务列表，未完成在前，组内新建在前
func (h *Handlers) GetTasks(c *gin.Context) {
	tasks, err := h.db.Task().List()
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tasks})
}

// GetTask 按id查询任务
func (h *Handlers) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.db.Task().Get(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": task})
}

// UpdateTaskRequest 部分更新任务请求
type UpdateTaskRequest struct {
	Title       *string                `json:"title"`
	Description model.Nullable[string] `json:"description"`
	Completed   *bool                  `json:"completed"`
}

// UpdateTask 部分更新，常用于勾选完成状态
func (h *Handlers) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			badRequest(c, "title不能为空")
			return
		}
		fields["title"] = *req.Title
	}
	if req.Description.Set {
		fields["description"] = nullableValue(req.Description)
	}
	if req.Completed != nil {
		fields["completed"] = *req.Completed
	}

	task, err := h.db.Task().Update(id, fields)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": task})
}

// DeleteTask 删除任务，id不存在时deleted为false不报错
func (h *Handlers) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.db.Task().Delete(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}
