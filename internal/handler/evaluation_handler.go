package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hunar-api/internal/service"
)

// EvaluationHandler обрабатывает завершение модулей и чтение итогов
type EvaluationHandler struct {
	evaluationService *service.EvaluationService
	moduleService     *service.ModuleService
}

// NewEvaluationHandler создает новый обработчик оценки
func NewEvaluationHandler(
	evaluationService *service.EvaluationService,
	moduleService *service.ModuleService,
) *EvaluationHandler {
	return &EvaluationHandler{
		evaluationService: evaluationService,
		moduleService:     moduleService,
	}
}

// EvaluateRequest представляет запрос на оценку модуля
type EvaluateRequest struct {
	TestID uint `json:"test_id" binding:"required"`
}

// Evaluate помечает модуль пройденным, считает и сохраняет итоговый балл
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.evaluationService.Evaluate(userID, req.TestID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkCompleted помечает модуль пройденным без подсчета баллов.
// Итог таких модулей пишет внешний движок оценки.
func (h *EvaluationHandler) MarkCompleted(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.evaluationService.MarkCompleted(userID, req.TestID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test marked as completed"})
}

// OverallResult возвращает сводные результаты пользователя.
// Ни одного завершенного модуля - 403.
func (h *EvaluationHandler) OverallResult(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		if id, ok := userIDFromContext(c); ok {
			userID = id
		}
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	results, err := h.evaluationService.OverallResults(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// CheckCompletion возвращает признак завершения модуля пользователем
func (h *EvaluationHandler) CheckCompletion(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		if id, ok := userIDFromContext(c); ok {
			userID = id
		}
	}
	testIDStr := c.Query("test_id")
	if userID == "" || testIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and test_id are required"})
		return
	}

	testID, err := strconv.ParseUint(testIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid test_id"})
		return
	}

	completed, err := h.evaluationService.CheckCompletion(userID, uint(testID))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_completed": completed})
}

// TestStatus возвращает статусы пользователя по всем модулям
func (h *EvaluationHandler) TestStatus(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		if id, ok := userIDFromContext(c); ok {
			userID = id
		}
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	statuses, err := h.evaluationService.StatusList(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, statuses)
}

// Instructions возвращает инструкцию модуля (кешируется в Redis)
func (h *EvaluationHandler) Instructions(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	instruction, err := h.moduleService.GetInstruction(uint(id))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"instruction": instruction})
}
