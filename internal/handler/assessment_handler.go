package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/service"
)

// AssessmentHandler обрабатывает прохождение тестов пользователем
type AssessmentHandler struct {
	assessmentService *service.AssessmentService
	evaluationService *service.EvaluationService
}

// NewAssessmentHandler создает новый обработчик прохождения тестов
func NewAssessmentHandler(
	assessmentService *service.AssessmentService,
	evaluationService *service.EvaluationService,
) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
		evaluationService: evaluationService,
	}
}

// SubmitAnswerRequest представляет запрос на фиксацию ответа
type SubmitAnswerRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
	Answer     int  `json:"answer" binding:"required"`
}

// NextQuestion возвращает случайный неотвеченный вопрос модуля.
// Query-параметры: standard, tag (языковой модуль), recording_id (аудирование).
func (h *AssessmentHandler) NextQuestion(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	moduleID := c.GetUint("module_id")

	opts := service.NextQuestionOptions{
		Standard: c.Query("standard"),
		Tag:      c.Query("tag"),
	}
	if ridStr := c.Query("recording_id"); ridStr != "" {
		rid, err := strconv.ParseUint(ridStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording_id"})
			return
		}
		recordingID := uint(rid)
		opts.RecordingID = &recordingID
	}

	question, err := h.assessmentService.NextQuestion(userID, moduleID, opts)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// SubmitAnswer фиксирует ответ пользователя и возвращает вердикт
func (h *AssessmentHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	correct, err := h.assessmentService.SubmitAnswer(userID, req.QuestionID, req.Answer)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_correct": correct})
}

// Result возвращает промежуточный результат модуля. Для weighted-модулей
// это сумма набранных баллов, для языкового дополнительно разбивка по
// сложности, для остальных - агрегат exact.
func (h *AssessmentHandler) Result(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	moduleID := c.GetUint("module_id")

	module, err := h.assessmentService.Module(moduleID)
	if err != nil {
		handleError(c, err)
		return
	}

	switch {
	case module.IsWeighted():
		result, err := h.assessmentService.WeightedResult(userID, moduleID)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	case moduleID == entity.ModuleLanguage:
		result, err := h.assessmentService.Result(userID, moduleID)
		if err != nil {
			handleError(c, err)
			return
		}
		breakdown, err := h.assessmentService.LanguageResult(userID)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total_marks":   result.TotalMarks,
			"total_correct": result.TotalCorrect,
			"max_marks":     result.MaxMarks,
			"by_tag":        breakdown,
		})
	default:
		result, err := h.assessmentService.Result(userID, moduleID)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// CommunicationQuestion возвращает случайный вопрос коммуникационного
// модуля без учета истории: ответы оценивает внешний речевой движок.
func (h *AssessmentHandler) CommunicationQuestion(c *gin.Context) {
	h.randomQuestion(c, entity.ModuleCommunication)
}

// PresentationQuestion возвращает случайный вопрос презентационного модуля
func (h *AssessmentHandler) PresentationQuestion(c *gin.Context) {
	h.randomQuestion(c, entity.ModulePresentation)
}

func (h *AssessmentHandler) randomQuestion(c *gin.Context, moduleID uint) {
	question, err := h.assessmentService.RandomQuestion(moduleID, c.Query("standard"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// CommunicationResult возвращает сырые метрики речевого движка
func (h *AssessmentHandler) CommunicationResult(c *gin.Context) {
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

	blob, err := h.evaluationService.AudioMetrics(userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(blob))
}

// PresentationResult возвращает сырой отзыв презентационного движка
func (h *AssessmentHandler) PresentationResult(c *gin.Context) {
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

	blob, err := h.evaluationService.PresentationFeedback(userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(blob))
}
