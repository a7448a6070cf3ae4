package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/hunar-api/internal/domain/repository"
	"github.com/yourusername/hunar-api/internal/service"
)

// AdminHandler обрабатывает административные запросы:
// пользователи, вопросы, экспорт результатов.
type AdminHandler struct {
	userService     *service.UserService
	questionService *service.QuestionService
	overallRepo     repository.OverallResultRepository
}

// NewAdminHandler создает новый административный обработчик
func NewAdminHandler(
	userService *service.UserService,
	questionService *service.QuestionService,
	overallRepo repository.OverallResultRepository,
) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		questionService: questionService,
		overallRepo:     overallRepo,
	}
}

// ChangePasswordRequest представляет запрос на смену пароля
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// ListUsers возвращает всех пользователей (без хешей паролей)
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser обновляет профиль пользователя.
// Пустой пароль в запросе сохраняет прежний.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	phone := c.Param("phone")

	var req service.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(phone, req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser удаляет пользователя
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	phone := c.Param("phone")

	if err := h.userService.Delete(phone); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ChangePassword устанавливает новый пароль пользователя
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	phone := c.Param("phone")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.ChangePassword(phone, req.Password); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// MakeAdmin повышает пользователя до администратора
func (h *AdminHandler) MakeAdmin(c *gin.Context) {
	phone := c.Param("phone")

	if err := h.userService.MakeAdmin(phone); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User promoted to admin"})
}

// ListQuestions возвращает вопросы модуля вместе с ответами
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	moduleID := c.GetUint("module_id")

	questions, err := h.questionService.ListByModule(moduleID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuestion возвращает вопрос с ответом
func (h *AdminHandler) GetQuestion(c *gin.Context) {
	id := c.GetUint("question_id")

	question, err := h.questionService.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// CreateQuestion создает вопрос с ответом (одна транзакция)
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	var req service.CreateQuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.Create(req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion обновляет вопрос с ответом (одна транзакция)
func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	id := c.GetUint("question_id")

	var req service.UpdateQuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.Update(id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion удаляет вопрос вместе с ответом и откликами
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	id := c.GetUint("question_id")

	if err := h.questionService.Delete(id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// ListListeningQuestions возвращает вопросы аудирования, сгруппированные
// по аудиозаписям.
func (h *AdminHandler) ListListeningQuestions(c *gin.Context) {
	groups, err := h.questionService.ListListeningGrouped()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// ExportResults выгружает все сводные результаты в Excel.
// StreamWriter держит память постоянной на больших выгрузках.
func (h *AdminHandler) ExportResults(c *gin.Context) {
	results, err := h.overallRepo.ListAll()
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("overall_results_%s", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"User", "Test ID", "Test Name", "Total Marks", "Max Marks", "Updated At"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range results {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			sanitizeForExcel(r.UserID),
			r.TestID,
			sanitizeForExcel(r.TestName),
			r.TotalMarks,
			r.MaxMarks,
			r.UpdatedAt.Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AdminHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
