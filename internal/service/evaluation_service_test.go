package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

func newEvaluationFixture() (*EvaluationService, *MockModuleRepo, *MockStatusRepo, *MockResponseRepo, *MockOverallResultRepo, *MockMetricsRepo, *MockCacheRepo) {
	moduleRepo := new(MockModuleRepo)
	statusRepo := new(MockStatusRepo)
	responseRepo := new(MockResponseRepo)
	overallRepo := new(MockOverallResultRepo)
	metricsRepo := new(MockMetricsRepo)
	cacheRepo := new(MockCacheRepo)
	svc := NewEvaluationService(moduleRepo, statusRepo, responseRepo, overallRepo, metricsRepo, cacheRepo)
	return svc, moduleRepo, statusRepo, responseRepo, overallRepo, metricsRepo, cacheRepo
}

// expectLock настраивает успешный захват и снятие блокировки оценки
func expectLock(cacheRepo *MockCacheRepo) {
	cacheRepo.On("SetNX", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	cacheRepo.On("Delete", mock.Anything).Return(nil)
}

func TestEvaluationService_Evaluate_GenericExact(t *testing.T) {
	svc, moduleRepo, statusRepo, responseRepo, overallRepo, _, cacheRepo := newEvaluationFixture()
	expectLock(cacheRepo)

	statusRepo.On("MarkCompleted", "u1", entity.ModuleEtiquette).Return(nil)
	responseRepo.On("AggregateExact", "u1", entity.ModuleEtiquette).Return(&repository.ExactAggregate{
		TotalMarks: 7, TotalCorrect: 7, MaxMarks: 10,
	}, nil)
	moduleRepo.On("GetByID", entity.ModuleEtiquette).
		Return(&entity.Module{ID: entity.ModuleEtiquette, Name: "Etiquette", Scoring: entity.ScoringExact}, nil)
	overallRepo.On("Upsert", mock.MatchedBy(func(r *entity.OverallResult) bool {
		return r.TestID == entity.ModuleEtiquette && r.TotalMarks == 7 && r.MaxMarks == 10 && r.TestName == "Etiquette"
	})).Return(nil)

	result, err := svc.Evaluate("u1", entity.ModuleEtiquette)

	require.NoError(t, err, "Оценка exact-модуля должна быть успешной")
	assert.Equal(t, 7.0, result.TotalMarks)
	overallRepo.AssertExpectations(t)
}

func TestEvaluationService_Evaluate_Communication(t *testing.T) {
	svc, moduleRepo, statusRepo, _, overallRepo, metricsRepo, cacheRepo := newEvaluationFixture()
	expectLock(cacheRepo)

	statusRepo.On("MarkCompleted", "u1", entity.ModuleCommunication).Return(nil)
	metricsRepo.On("GetAudioMetrics", "u1").
		Return(`{"overall_score": {"value": 87.5}, "fluency": {"value": 90}}`, nil)
	moduleRepo.On("GetByID", entity.ModuleCommunication).
		Return(&entity.Module{ID: entity.ModuleCommunication, Name: "Communication"}, nil)
	overallRepo.On("Upsert", mock.Anything).Return(nil)

	result, err := svc.Evaluate("u1", entity.ModuleCommunication)

	require.NoError(t, err)
	assert.Equal(t, 87.5, result.TotalMarks, "Балл должен браться из метрик речевого движка")
	assert.Equal(t, 100, result.MaxMarks)
}

func TestEvaluationService_Evaluate_Presentation(t *testing.T) {
	svc, moduleRepo, statusRepo, _, overallRepo, metricsRepo, cacheRepo := newEvaluationFixture()
	expectLock(cacheRepo)

	statusRepo.On("MarkCompleted", "u1", entity.ModulePresentation).Return(nil)
	metricsRepo.On("GetPresentationFeedback", "u1").
		Return(`{"Overall Score": "7.5/10", "Clarity": "good"}`, nil)
	moduleRepo.On("GetByID", entity.ModulePresentation).
		Return(&entity.Module{ID: entity.ModulePresentation, Name: "Presentation"}, nil)
	overallRepo.On("Upsert", mock.Anything).Return(nil)

	result, err := svc.Evaluate("u1", entity.ModulePresentation)

	require.NoError(t, err)
	assert.Equal(t, 7.5, result.TotalMarks, "Балл должен парситься из строки score/max")
	assert.Equal(t, 10, result.MaxMarks)
}

func TestEvaluationService_Evaluate_LanguageFormula(t *testing.T) {
	svc, moduleRepo, statusRepo, responseRepo, overallRepo, _, cacheRepo := newEvaluationFixture()
	expectLock(cacheRepo)

	statusRepo.On("MarkCompleted", "u1", entity.ModuleLanguage).Return(nil)
	responseRepo.On("CorrectCountByTag", "u1", entity.ModuleLanguage).Return(map[string]int{
		entity.TagEasy:   3,
		entity.TagMedium: 2,
		entity.TagHard:   1,
	}, nil)
	moduleRepo.On("GetByID", entity.ModuleLanguage).
		Return(&entity.Module{ID: entity.ModuleLanguage, Name: "Language"}, nil)
	overallRepo.On("Upsert", mock.Anything).Return(nil)

	result, err := svc.Evaluate("u1", entity.ModuleLanguage)

	require.NoError(t, err)
	// 3×2 + 2×3 + 1×5 = 17
	assert.Equal(t, 17.0, result.TotalMarks)
	assert.Equal(t, 50, result.MaxMarks, "Потолок языкового модуля фиксирован")
}

func TestEvaluationService_Evaluate_TeamLeadership(t *testing.T) {
	svc, moduleRepo, statusRepo, responseRepo, overallRepo, _, cacheRepo := newEvaluationFixture()
	expectLock(cacheRepo)

	statusRepo.On("MarkCompleted", "u1", entity.ModuleTeamLeadership).Return(nil)
	responseRepo.On("AggregateWeighted", "u1", entity.ModuleTeamLeadership).
		Return(&repository.WeightedAggregate{TotalScore: 34, ResponseCount: 10}, nil)
	moduleRepo.On("GetByID", entity.ModuleTeamLeadership).
		Return(&entity.Module{ID: entity.ModuleTeamLeadership, Name: "Team Leadership", Scoring: entity.ScoringWeighted}, nil)
	overallRepo.On("Upsert", mock.Anything).Return(nil)

	result, err := svc.Evaluate("u1", entity.ModuleTeamLeadership)

	require.NoError(t, err)
	assert.Equal(t, 34.0, result.TotalMarks)
	assert.Equal(t, 50, result.MaxMarks, "Потолок должен равняться числу откликов на максимум шкалы")
}

func TestEvaluationService_Evaluate_CustomWeightedModule(t *testing.T) {
	svc, moduleRepo, statusRepo, responseRepo, overallRepo, _, cacheRepo := newEvaluationFixture()
	expectLock(cacheRepo)

	const customID = uint(8)
	statusRepo.On("MarkCompleted", "u1", customID).Return(nil)
	moduleRepo.On("GetByID", customID).
		Return(&entity.Module{ID: customID, Name: "Negotiation", Scoring: entity.ScoringWeighted}, nil)
	responseRepo.On("AggregateWeighted", "u1", customID).
		Return(&repository.WeightedAggregate{TotalScore: 12, ResponseCount: 4}, nil)
	overallRepo.On("Upsert", mock.MatchedBy(func(r *entity.OverallResult) bool {
		return r.TestID == customID && r.TotalMarks == 12 && r.MaxMarks == 20
	})).Return(nil)

	result, err := svc.Evaluate("u1", customID)

	require.NoError(t, err, "Созданный администратором weighted-модуль должен считаться по своей стратегии")
	assert.Equal(t, 12.0, result.TotalMarks)
	assert.Equal(t, 20, result.MaxMarks)
	responseRepo.AssertNotCalled(t, "AggregateExact", mock.Anything, mock.Anything)
	overallRepo.AssertExpectations(t)
}

func TestEvaluationService_Evaluate_StatusNotFound(t *testing.T) {
	svc, _, statusRepo, _, overallRepo, _, cacheRepo := newEvaluationFixture()
	expectLock(cacheRepo)

	statusRepo.On("MarkCompleted", "u1", uint(99)).Return(apperrors.ErrNotFound)

	result, err := svc.Evaluate("u1", 99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Отсутствующая пара статуса должна быть фатальной")
	assert.Nil(t, result)
	overallRepo.AssertNotCalled(t, "Upsert", mock.Anything)
}

func TestEvaluationService_Evaluate_LockHeld(t *testing.T) {
	svc, _, statusRepo, _, _, _, cacheRepo := newEvaluationFixture()

	cacheRepo.On("SetNX", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	result, err := svc.Evaluate("u1", entity.ModuleEtiquette)

	assert.ErrorIs(t, err, apperrors.ErrConflict, "Параллельная оценка должна быть отсечена блокировкой")
	assert.Nil(t, result)
	statusRepo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything)
}

func TestEvaluationService_OverallResults_EmptyForbidden(t *testing.T) {
	svc, _, _, _, overallRepo, _, _ := newEvaluationFixture()

	overallRepo.On("ListByUser", "u1").Return([]entity.OverallResult{}, nil)

	results, err := svc.OverallResults("u1")

	assert.ErrorIs(t, err, apperrors.ErrForbidden, "Пустой список результатов должен давать forbidden")
	assert.Nil(t, results)
}

func TestEvaluationService_CheckCompletion_MissingRow(t *testing.T) {
	svc, _, statusRepo, _, _, _, _ := newEvaluationFixture()

	statusRepo.On("Get", "u1", uint(3)).Return(nil, apperrors.ErrNotFound)

	completed, err := svc.CheckCompletion("u1", 3)

	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Отсутствие пары статуса должно отдаваться клиенту как not found")
	assert.False(t, completed)
}

func TestEvaluationService_CheckCompletion_Completed(t *testing.T) {
	svc, _, statusRepo, _, _, _, _ := newEvaluationFixture()

	statusRepo.On("Get", "u1", uint(3)).
		Return(&entity.TestSkillStatus{UserID: "u1", TestID: 3, IsCompleted: true}, nil)

	completed, err := svc.CheckCompletion("u1", 3)

	require.NoError(t, err)
	assert.True(t, completed)
}

func TestParseOverallScore(t *testing.T) {
	score, max, err := parseOverallScore(`{"Overall Score": " 8/10 "}`)
	require.NoError(t, err)
	assert.Equal(t, 8.0, score)
	assert.Equal(t, 10, max)

	_, _, err = parseOverallScore(`{"Clarity": "good"}`)
	assert.Error(t, err, "Отсутствие поля Overall Score должно быть ошибкой")

	_, _, err = parseOverallScore(`{"Overall Score": "ten"}`)
	assert.Error(t, err, "Строка без разделителя должна быть ошибкой")
}
