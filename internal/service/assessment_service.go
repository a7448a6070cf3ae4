package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// NextQuestionOptions сужает пул при выборе следующего вопроса
type NextQuestionOptions struct {
	Standard    string
	Tag         string
	RecordingID *uint
}

// ExactResult — промежуточный результат exact-модуля.
// MaxMarks растёт вместе с числом отвеченных вопросов.
type ExactResult struct {
	TotalMarks   int `json:"total_marks"`
	TotalCorrect int `json:"total_correct"`
	MaxMarks     int `json:"max_marks"`
}

// WeightedResult — промежуточный результат weighted-модуля
type WeightedResult struct {
	TotalScore    int `json:"total_score"`
	ResponseCount int `json:"response_count"`
}

// LanguageBreakdown — число правильных ответов языкового модуля по сложности
type LanguageBreakdown struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// AssessmentService ведет пользователя по тесту: выдает случайные
// неотвеченные вопросы, фиксирует ответы и считает промежуточные итоги.
type AssessmentService struct {
	moduleRepo   repository.ModuleRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	responseRepo repository.ResponseRepository
}

// NewAssessmentService создает новый сервис прохождения тестов
func NewAssessmentService(
	moduleRepo repository.ModuleRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	responseRepo repository.ResponseRepository,
) *AssessmentService {
	return &AssessmentService{
		moduleRepo:   moduleRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		responseRepo: responseRepo,
	}
}

// NextQuestion возвращает случайный вопрос модуля, на который пользователь
// еще не отвечал. Исчерпанный пул — ErrNotFound.
func (s *AssessmentService) NextQuestion(userID string, moduleID uint, opts NextQuestionOptions) (*entity.Question, error) {
	if _, err := s.moduleRepo.GetByID(moduleID); err != nil {
		return nil, err
	}

	standard := opts.Standard
	if standard == "" {
		standard = entity.DefaultStandard
	}

	return s.questionRepo.GetRandomUnanswered(userID, moduleID, repository.QuestionFilter{
		Standard:    standard,
		Tag:         opts.Tag,
		RecordingID: opts.RecordingID,
	})
}

// RandomQuestion возвращает случайный вопрос модуля без учета истории
// ответов. Используется модулями, которые не пишут отклики
// (коммуникация и презентация оцениваются внешними движками).
func (s *AssessmentService) RandomQuestion(moduleID uint, standard string) (*entity.Question, error) {
	if _, err := s.moduleRepo.GetByID(moduleID); err != nil {
		return nil, err
	}
	if standard == "" {
		standard = entity.DefaultStandard
	}
	return s.questionRepo.GetRandomByStandard(moduleID, standard)
}

// SubmitAnswer фиксирует ответ пользователя на вопрос и возвращает
// признак правильности (для exact-модулей).
// Повторный ответ на тот же вопрос — ErrConflict.
func (s *AssessmentService) SubmitAnswer(userID string, questionID uint, selectedOption int) (bool, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return false, err
	}

	module, err := s.moduleRepo.GetByID(question.ModuleID)
	if err != nil {
		return false, err
	}

	answer, err := s.answerRepo.GetByQuestionID(questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[AssessmentService] Вопрос id=%d не имеет канонического ответа", questionID)
		}
		return false, err
	}

	response := &entity.Response{
		UserID:     userID,
		QuestionID: questionID,
	}

	if module.IsWeighted() {
		weight, ok := answer.WeightFor(selectedOption)
		if !ok {
			return false, fmt.Errorf("%w: option must be between %d and %d",
				apperrors.ErrValidation, entity.MinWeightedOption, entity.MaxWeightedOption)
		}
		response.WeightScored = weight
	} else {
		response.IsCorrect = answer.Matches(selectedOption)
	}

	if err := s.responseRepo.Create(response); err != nil {
		return false, err
	}

	return response.IsCorrect, nil
}

// Module возвращает модуль по идентификатору. Обработчики используют его,
// чтобы выбрать форму промежуточного результата по стратегии оценивания.
func (s *AssessmentService) Module(id uint) (*entity.Module, error) {
	return s.moduleRepo.GetByID(id)
}

// Result возвращает промежуточный результат exact-модуля
func (s *AssessmentService) Result(userID string, moduleID uint) (*ExactResult, error) {
	if _, err := s.moduleRepo.GetByID(moduleID); err != nil {
		return nil, err
	}

	agg, err := s.responseRepo.AggregateExact(userID, moduleID)
	if err != nil {
		return nil, err
	}
	return &ExactResult{
		TotalMarks:   agg.TotalMarks,
		TotalCorrect: agg.TotalCorrect,
		MaxMarks:     agg.MaxMarks,
	}, nil
}

// WeightedResult возвращает промежуточный результат weighted-модуля
func (s *AssessmentService) WeightedResult(userID string, moduleID uint) (*WeightedResult, error) {
	if _, err := s.moduleRepo.GetByID(moduleID); err != nil {
		return nil, err
	}

	agg, err := s.responseRepo.AggregateWeighted(userID, moduleID)
	if err != nil {
		return nil, err
	}
	return &WeightedResult{
		TotalScore:    agg.TotalScore,
		ResponseCount: agg.ResponseCount,
	}, nil
}

// LanguageResult возвращает число правильных ответов языкового модуля
// по каждому уровню сложности.
func (s *AssessmentService) LanguageResult(userID string) (*LanguageBreakdown, error) {
	byTag, err := s.responseRepo.CorrectCountByTag(userID, entity.ModuleLanguage)
	if err != nil {
		return nil, err
	}
	return &LanguageBreakdown{
		Easy:   byTag[entity.TagEasy],
		Medium: byTag[entity.TagMedium],
		Hard:   byTag[entity.TagHard],
	}, nil
}
