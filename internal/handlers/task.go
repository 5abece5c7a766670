package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/db"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/types"
	"github.com/taskdeck/taskdeck/internal/utils"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	DueDate     *string `json:"dueDate"`
}

type UpdateTaskRequest struct {
	Title       types.Optional[string] `json:"title"`
	Description types.Optional[string] `json:"description"`
	Status      types.Optional[string] `json:"status"`
	DueDate     types.Optional[string] `json:"dueDate"`
}

// Workflow position of each status, so groups come out TODO, DOING, DONE
// regardless of the strings' lexical order.
const statusRankExpr = "CASE status WHEN 'TODO' THEN 0 WHEN 'DOING' THEN 1 WHEN 'DONE' THEN 2 ELSE 3 END"

// findOwnedTask resolves a task only if it belongs to userID. A missing row
// and a row owned by someone else are indistinguishable to the caller, so
// non-owners cannot probe for existence.
func findOwnedTask(userID string, taskID string) (models.Task, error) {
	var task models.Task

	err := db.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error

	return task, err
}

func parseDueDate(value string) (time.Time, bool) {
	dueDate, err := time.Parse(time.RFC3339, value)
	return dueDate, err == nil
}

func ListTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var tasks []models.Task

	err = db.DB.Where("user_id = ?", userID).
		Order(statusRankExpr).
		Order("created_at DESC").
		Find(&tasks).Error

	if err != nil {
		log.Printf("Failed to list tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, types.NewTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": response})
}

func CreateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondInvalid(ctx, err)
		return
	}

	task := models.Task{
		UserID:      userID,
		Title:       body.Title,
		Description: body.Description,
		Status:      models.StatusTodo,
	}

	if body.DueDate != nil {
		dueDate, ok := parseDueDate(*body.DueDate)
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid request",
				"fields": map[string]string{"duedate": "must be an RFC 3339 timestamp"},
			})
			return
		}
		task.DueDate = &dueDate
	}

	if err := db.DB.Create(&task).Error; err != nil {
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"task": types.NewTaskResponse(task)})
}

// validateTaskUpdate turns a PATCH body into a column update map. Absent
// fields produce no entry, explicit nulls for description/dueDate produce a
// nil entry that clears the column.
func validateTaskUpdate(body UpdateTaskRequest) (map[string]interface{}, map[string]string) {
	updates := make(map[string]interface{})
	fields := make(map[string]string)

	// Title and status are not clearable, so null is rejected rather than
	// treated as a third intent.
	if body.Title.Set {
		if !body.Title.Valid || utf8.RuneCountInString(body.Title.Value) < 1 || utf8.RuneCountInString(body.Title.Value) > 120 {
			fields["title"] = "must be between 1 and 120 characters"
		} else {
			updates["title"] = body.Title.Value
		}
	}

	if body.Status.Set {
		status := models.TaskStatus(body.Status.Value)
		if !body.Status.Valid || !status.Valid() {
			fields["status"] = "must be one of TODO, DOING, DONE"
		} else {
			updates["status"] = status
		}
	}

	if body.Description.Set {
		if !body.Description.Valid {
			updates["description"] = nil
		} else if utf8.RuneCountInString(body.Description.Value) > 2000 {
			fields["description"] = "must be at most 2000 characters"
		} else {
			updates["description"] = body.Description.Value
		}
	}

	if body.DueDate.Set {
		if !body.DueDate.Valid {
			updates["due_date"] = nil
		} else if dueDate, ok := parseDueDate(body.DueDate.Value); ok {
			updates["due_date"] = dueDate
		} else {
			fields["duedate"] = "must be an RFC 3339 timestamp"
		}
	}

	return updates, fields
}

func UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates, fields := validateTaskUpdate(body)

	if len(fields) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": fields})
		return
	}

	task, err := findOwnedTask(userID, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to retrieve task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
			log.Printf("Failed to update task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		// Refresh so cleared columns come back as nil rather than stale values
		if err := db.DB.First(&task, "id = ?", task.ID).Error; err != nil {
			log.Printf("Failed to refresh task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"task": types.NewTaskResponse(task)})
}

func DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	task, err := findOwnedTask(userID, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to retrieve task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		log.Printf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
