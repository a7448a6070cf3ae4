package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// Очки за правильный ответ языкового модуля по уровню сложности
const (
	languageEasyPoints   = 2
	languageMediumPoints = 3
	languageHardPoints   = 5

	// languageMaxMarks — потолок языкового модуля: по 10 вопросов
	// каждой сложности в типовом банке.
	languageMaxMarks = 50

	// communicationMaxMarks — потолок речевых метрик
	communicationMaxMarks = 100
)

// evalLockTTL — время жизни блокировки одной оценки
const evalLockTTL = 30 * time.Second

// EvaluationService завершает модуль: помечает его пройденным,
// считает итоговый балл по правилам модуля и сохраняет сводную строку.
type EvaluationService struct {
	moduleRepo   repository.ModuleRepository
	statusRepo   repository.StatusRepository
	responseRepo repository.ResponseRepository
	overallRepo  repository.OverallResultRepository
	metricsRepo  repository.MetricsRepository
	cacheRepo    repository.CacheRepository
}

// NewEvaluationService создает новый сервис оценки
func NewEvaluationService(
	moduleRepo repository.ModuleRepository,
	statusRepo repository.StatusRepository,
	responseRepo repository.ResponseRepository,
	overallRepo repository.OverallResultRepository,
	metricsRepo repository.MetricsRepository,
	cacheRepo repository.CacheRepository,
) *EvaluationService {
	return &EvaluationService{
		moduleRepo:   moduleRepo,
		statusRepo:   statusRepo,
		responseRepo: responseRepo,
		overallRepo:  overallRepo,
		metricsRepo:  metricsRepo,
		cacheRepo:    cacheRepo,
	}
}

// Evaluate помечает модуль пройденным, считает итоговый балл и сохраняет
// сводную строку. Повторный вызов пересчитывает и обновляет ту же строку.
// Параллельные вызовы для одной пары (user, test) отсекаются блокировкой.
func (s *EvaluationService) Evaluate(userID string, testID uint) (*entity.OverallResult, error) {
	lockKey := fmt.Sprintf("eval:%s:%d", userID, testID)
	acquired, err := s.cacheRepo.SetNX(lockKey, "1", evalLockTTL)
	if err != nil {
		// Redis недоступен: продолжаем без блокировки, upsert все равно
		// не даст задвоить строку результата.
		log.Printf("[EvaluationService] Не удалось взять блокировку %s: %v", lockKey, err)
	} else if !acquired {
		return nil, fmt.Errorf("%w: evaluation already in progress", apperrors.ErrConflict)
	} else {
		defer func() {
			if err := s.cacheRepo.Delete(lockKey); err != nil {
				log.Printf("[EvaluationService] Не удалось снять блокировку %s: %v", lockKey, err)
			}
		}()
	}

	if err := s.statusRepo.MarkCompleted(userID, testID); err != nil {
		return nil, err
	}

	result, err := s.score(userID, testID)
	if err != nil {
		return nil, err
	}

	if err := s.overallRepo.Upsert(result); err != nil {
		log.Printf("[EvaluationService] Ошибка сохранения результата user=%s test=%d: %v", userID, testID, err)
		return nil, err
	}

	log.Printf("[EvaluationService] Оценен модуль test=%d user=%s: %.2f/%d",
		testID, userID, result.TotalMarks, result.MaxMarks)
	return result, nil
}

// score считает итоговый балл модуля по его правилам. Встроенные модули
// с внешними движками и языковой считаются по своим формулам, остальные,
// включая созданные администратором, по стратегии модуля.
func (s *EvaluationService) score(userID string, testID uint) (*entity.OverallResult, error) {
	switch testID {
	case entity.ModuleCommunication:
		return s.scoreCommunication(userID)
	case entity.ModulePresentation:
		return s.scorePresentation(userID)
	case entity.ModuleLanguage:
		return s.scoreLanguage(userID)
	}

	module, err := s.moduleRepo.GetByID(testID)
	if err != nil {
		return nil, err
	}
	if module.IsWeighted() {
		return s.scoreWeighted(userID, testID)
	}
	return s.scoreExact(userID, testID)
}

// scoreCommunication берет итоговый балл из метрик речевого движка
func (s *EvaluationService) scoreCommunication(userID string) (*entity.OverallResult, error) {
	blob, err := s.metricsRepo.GetAudioMetrics(userID)
	if err != nil {
		return nil, err
	}

	var metrics struct {
		OverallScore struct {
			Value float64 `json:"value"`
		} `json:"overall_score"`
	}
	if err := json.Unmarshal([]byte(blob), &metrics); err != nil {
		return nil, fmt.Errorf("failed to parse audio metrics for user %s: %w", userID, err)
	}

	return s.buildResult(userID, entity.ModuleCommunication, metrics.OverallScore.Value, communicationMaxMarks)
}

// scorePresentation извлекает балл вида "7.5/10" из отзыва презентационного движка
func (s *EvaluationService) scorePresentation(userID string) (*entity.OverallResult, error) {
	blob, err := s.metricsRepo.GetPresentationFeedback(userID)
	if err != nil {
		return nil, err
	}

	score, max, err := parseOverallScore(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse presentation feedback for user %s: %w", userID, err)
	}

	return s.buildResult(userID, entity.ModulePresentation, score, max)
}

// scoreLanguage считает балл языкового модуля: правильные ответы
// ценятся по сложности вопроса.
func (s *EvaluationService) scoreLanguage(userID string) (*entity.OverallResult, error) {
	byTag, err := s.responseRepo.CorrectCountByTag(userID, entity.ModuleLanguage)
	if err != nil {
		return nil, err
	}

	total := byTag[entity.TagEasy]*languageEasyPoints +
		byTag[entity.TagMedium]*languageMediumPoints +
		byTag[entity.TagHard]*languageHardPoints

	return s.buildResult(userID, entity.ModuleLanguage, float64(total), languageMaxMarks)
}

// scoreWeighted считает балл weighted-модуля: сумма весов выбранных
// вариантов, потолок - максимум шкалы на каждый отвеченный вопрос.
func (s *EvaluationService) scoreWeighted(userID string, testID uint) (*entity.OverallResult, error) {
	agg, err := s.responseRepo.AggregateWeighted(userID, testID)
	if err != nil {
		return nil, err
	}
	maxMarks := agg.ResponseCount * entity.MaxWeightedOption
	return s.buildResult(userID, testID, float64(agg.TotalScore), maxMarks)
}

// scoreExact считает балл exact-модуля: сумма весов правильных ответов,
// потолок - сумма весов отвеченных вопросов.
func (s *EvaluationService) scoreExact(userID string, testID uint) (*entity.OverallResult, error) {
	agg, err := s.responseRepo.AggregateExact(userID, testID)
	if err != nil {
		return nil, err
	}
	return s.buildResult(userID, testID, float64(agg.TotalMarks), agg.MaxMarks)
}

// buildResult собирает сводную строку, подтягивая имя модуля
func (s *EvaluationService) buildResult(userID string, testID uint, totalMarks float64, maxMarks int) (*entity.OverallResult, error) {
	module, err := s.moduleRepo.GetByID(testID)
	if err != nil {
		return nil, err
	}
	return &entity.OverallResult{
		UserID:     userID,
		TestID:     testID,
		TestName:   module.Name,
		TotalMarks: totalMarks,
		MaxMarks:   maxMarks,
	}, nil
}

// MarkCompleted помечает модуль пройденным без подсчета баллов.
// Используется модулями, итог которых пишет внешний движок.
func (s *EvaluationService) MarkCompleted(userID string, testID uint) error {
	return s.statusRepo.MarkCompleted(userID, testID)
}

// OverallResults возвращает сводные результаты пользователя.
// Пустой список — ErrForbidden: пользователь еще не завершил ни одного модуля.
func (s *EvaluationService) OverallResults(userID string) ([]entity.OverallResult, error) {
	results, err := s.overallRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no completed modules for user %s", apperrors.ErrForbidden, userID)
	}
	return results, nil
}

// AudioMetrics возвращает сырые метрики речевого движка
func (s *EvaluationService) AudioMetrics(userID string) (string, error) {
	return s.metricsRepo.GetAudioMetrics(userID)
}

// PresentationFeedback возвращает сырой отзыв презентационного движка
func (s *EvaluationService) PresentationFeedback(userID string) (string, error) {
	return s.metricsRepo.GetPresentationFeedback(userID)
}

// CheckCompletion возвращает признак завершения модуля пользователем.
// Отсутствие пары (user, test) — ErrNotFound.
func (s *EvaluationService) CheckCompletion(userID string, testID uint) (bool, error) {
	status, err := s.statusRepo.Get(userID, testID)
	if err != nil {
		return false, err
	}
	return status.IsCompleted, nil
}

// StatusList возвращает статусы пользователя по всем модулям
func (s *EvaluationService) StatusList(userID string) ([]entity.TestSkillStatus, error) {
	return s.statusRepo.ListByUser(userID)
}

// parseOverallScore разбирает строку вида "7.5/10" из поля
// "Overall Score" JSON-отзыва.
func parseOverallScore(blob string) (float64, int, error) {
	var feedback map[string]interface{}
	if err := json.Unmarshal([]byte(blob), &feedback); err != nil {
		return 0, 0, err
	}

	raw, ok := feedback["Overall Score"]
	if !ok {
		return 0, 0, errors.New("feedback has no \"Overall Score\" field")
	}
	text, ok := raw.(string)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected \"Overall Score\" type %T", raw)
	}

	parts := strings.SplitN(strings.TrimSpace(text), "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed overall score %q", text)
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed overall score %q: %w", text, err)
	}
	max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed overall score %q: %w", text, err)
	}
	return score, max, nil
}
