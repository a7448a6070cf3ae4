package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
	"github.com/yourusername/hunar-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// ============================================================================
// Сопоставление ошибок сервисов с HTTP статусами
// ============================================================================

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.ErrValidation, http.StatusUnprocessableEntity},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		c, w := newTestGinContext(http.MethodGet, "/", nil)

		handleError(c, tt.err)

		assert.Equal(t, tt.wantStatus, w.Code, "Ошибка %v должна давать статус %d", tt.err, tt.wantStatus)
	}
}

func TestHandleError_WrappedSentinel(t *testing.T) {
	c, w := newTestGinContext(http.MethodGet, "/", nil)

	handleError(c, fmt.Errorf("%w: module 3 cannot be deleted", apperrors.ErrForbidden))

	assert.Equal(t, http.StatusForbidden, w.Code, "Обернутая ошибка должна распознаваться через errors.Is")
}

func TestUserIDFromContext(t *testing.T) {
	c, _ := newTestGinContext(http.MethodGet, "/", nil)
	c.Set("user_id", "79990001122")

	userID, ok := userIDFromContext(c)
	require.True(t, ok)
	assert.Equal(t, "79990001122", userID)

	empty, _ := newTestGinContext(http.MethodGet, "/", nil)
	_, ok = userIDFromContext(empty)
	assert.False(t, ok, "Без аутентификации user_id отсутствует")
}

// ============================================================================
// Валидация запросов — сервисы не вызываются, 400 до обращения к ним
// ============================================================================

func TestEvaluationHandler_Evaluate_ValidationErrors(t *testing.T) {
	handler := &EvaluationHandler{} // nil services — OK для validation tests

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "empty body", body: nil},
		{name: "missing test_id", body: map[string]interface{}{}},
		{name: "zero test_id", body: map[string]interface{}{"test_id": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, "/api/eval", tt.body)
			c.Set("user_id", "79990001122")

			handler.Evaluate(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestEvaluationHandler_Evaluate_Unauthorized(t *testing.T) {
	handler := &EvaluationHandler{}

	c, w := newTestGinContext(http.MethodPost, "/api/eval", map[string]interface{}{"test_id": 1})

	handler.Evaluate(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code, "Без user_id в контексте запрос должен быть отклонен")
}

func TestEvaluationHandler_CheckCompletion_MissingParams(t *testing.T) {
	handler := &EvaluationHandler{}

	c, w := newTestGinContext(http.MethodGet, "/api/check-completion", nil)

	handler.CheckCompletion(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// statusRepoStub отдает фиксированный ответ из Get; остальные методы не нужны
type statusRepoStub struct {
	status *entity.TestSkillStatus
	err    error
}

func (s *statusRepoStub) CreateBatch([]entity.TestSkillStatus) error { return nil }
func (s *statusRepoStub) MarkCompleted(string, uint) error           { return nil }
func (s *statusRepoStub) Get(string, uint) (*entity.TestSkillStatus, error) {
	return s.status, s.err
}
func (s *statusRepoStub) ListByUser(string) ([]entity.TestSkillStatus, error) { return nil, nil }
func (s *statusRepoStub) DeleteByTest(uint) error                             { return nil }
func (s *statusRepoStub) DeleteByUser(string) error                           { return nil }

func TestEvaluationHandler_CheckCompletion_UnknownPairIs404(t *testing.T) {
	evalService := service.NewEvaluationService(
		nil, &statusRepoStub{err: apperrors.ErrNotFound}, nil, nil, nil, nil)
	handler := &EvaluationHandler{evaluationService: evalService}

	c, w := newTestGinContext(http.MethodGet, "/api/check-completion?user_id=79990001122&test_id=3", nil)

	handler.CheckCompletion(c)

	assert.Equal(t, http.StatusNotFound, w.Code, "Неизвестная пара (user, test) должна давать 404")
}

func TestAssessmentHandler_SubmitAnswer_ValidationErrors(t *testing.T) {
	handler := &AssessmentHandler{}

	c, w := newTestGinContext(http.MethodPost, "/api/modules/5/answer", map[string]interface{}{})
	c.Set("user_id", "79990001122")

	handler.SubmitAnswer(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_ValidationErrors(t *testing.T) {
	handler := &AuthHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "empty body", body: nil},
		{name: "missing password", body: map[string]string{"phone": "79990001122"}},
		{name: "missing phone", body: map[string]string{"password": "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, "/api/auth/login", tt.body)

			handler.Login(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
