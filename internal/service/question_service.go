package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// QuestionWithAnswer — вопрос вместе с каноническим ответом (админка)
type QuestionWithAnswer struct {
	entity.Question
	Answer  int            `json:"answer"`
	Weight  int            `json:"weight"`
	Weights entity.IntArray `json:"weights,omitempty"`
}

// RecordingGroup — вопросы одной аудиозаписи модуля аудирования
type RecordingGroup struct {
	RecordingID uint                 `json:"recording_id"`
	AudioURL    string               `json:"audio_url"`
	Questions   []QuestionWithAnswer `json:"questions"`
}

// CreateQuestionInput — данные для создания вопроса с ответом
type CreateQuestionInput struct {
	ModuleID    uint               `json:"module_id" binding:"required"`
	Text        string             `json:"question_text" binding:"required"`
	Options     entity.StringArray `json:"options" binding:"required"`
	Answer      int                `json:"answer"`
	Weight      int                `json:"weight"`
	Weights     entity.IntArray    `json:"weights"`
	AttemptTime int                `json:"attempt_time"`
	Standard    string             `json:"standard"`
	Tag         string             `json:"tag"`
	RecordingID *uint              `json:"recording_id"`
}

// UpdateQuestionInput — данные для обновления вопроса с ответом
type UpdateQuestionInput struct {
	Text        string             `json:"question_text"`
	Options     entity.StringArray `json:"options"`
	Answer      *int               `json:"answer"`
	Weight      *int               `json:"weight"`
	Weights     entity.IntArray    `json:"weights"`
	AttemptTime int                `json:"attempt_time"`
	Standard    string             `json:"standard"`
	Tag         string             `json:"tag"`
}

// QuestionService предоставляет административные методы для работы с вопросами
type QuestionService struct {
	db           *gorm.DB
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	moduleRepo   repository.ModuleRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	db *gorm.DB,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	moduleRepo repository.ModuleRepository,
) *QuestionService {
	return &QuestionService{
		db:           db,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		moduleRepo:   moduleRepo,
	}
}

// ListByModule возвращает вопросы модуля вместе с каноническими ответами
func (s *QuestionService) ListByModule(moduleID uint) ([]QuestionWithAnswer, error) {
	questions, err := s.questionRepo.ListByModule(moduleID)
	if err != nil {
		return nil, err
	}
	return s.attachAnswers(questions)
}

// Get возвращает вопрос с ответом по идентификатору
func (s *QuestionService) Get(id uint) (*QuestionWithAnswer, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	result := &QuestionWithAnswer{Question: *question}
	answer, err := s.answerRepo.GetByQuestionID(id)
	if err == nil {
		result.Answer = answer.Value
		result.Weight = answer.Weight
		result.Weights = answer.Weights
	}
	return result, nil
}

// Create создает вопрос и его канонический ответ в одной транзакции
func (s *QuestionService) Create(input CreateQuestionInput) (*QuestionWithAnswer, error) {
	module, err := s.moduleRepo.GetByID(input.ModuleID)
	if err != nil {
		return nil, err
	}

	if module.IsWeighted() && len(input.Weights) != entity.MaxWeightedOption {
		return nil, fmt.Errorf("%w: weighted module requires %d option weights",
			apperrors.ErrValidation, entity.MaxWeightedOption)
	}

	question := &entity.Question{
		ModuleID:    input.ModuleID,
		RecordingID: input.RecordingID,
		Text:        input.Text,
		Options:     input.Options,
		AttemptTime: input.AttemptTime,
		Standard:    input.Standard,
		Tag:         input.Tag,
	}
	if question.AttemptTime <= 0 {
		question.AttemptTime = entity.DefaultAttemptTime
	}
	if question.Standard == "" {
		question.Standard = entity.DefaultStandard
	}

	weight := input.Weight
	if weight <= 0 {
		weight = 1
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		answer := &entity.Answer{
			QuestionID: question.ID,
			Value:      input.Answer,
			Weight:     weight,
			Weights:    input.Weights,
		}
		return tx.Create(answer).Error
	})
	if err != nil {
		log.Printf("[QuestionService] Ошибка при создании вопроса module_id=%d: %v", input.ModuleID, err)
		return nil, err
	}

	return &QuestionWithAnswer{
		Question: *question,
		Answer:   input.Answer,
		Weight:   weight,
		Weights:  input.Weights,
	}, nil
}

// Update обновляет вопрос и его канонический ответ в одной транзакции
func (s *QuestionService) Update(id uint, input UpdateQuestionInput) (*QuestionWithAnswer, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Text != "" {
		question.Text = input.Text
	}
	if len(input.Options) > 0 {
		question.Options = input.Options
	}
	if input.AttemptTime > 0 {
		question.AttemptTime = input.AttemptTime
	}
	if input.Standard != "" {
		question.Standard = input.Standard
	}
	if input.Tag != "" {
		question.Tag = input.Tag
	}

	answer, err := s.answerRepo.GetByQuestionID(id)
	if err != nil {
		return nil, err
	}
	if input.Answer != nil {
		answer.Value = *input.Answer
	}
	if input.Weight != nil && *input.Weight > 0 {
		answer.Weight = *input.Weight
	}
	if len(input.Weights) > 0 {
		answer.Weights = input.Weights
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		return tx.Save(answer).Error
	})
	if err != nil {
		log.Printf("[QuestionService] Ошибка при обновлении вопроса id=%d: %v", id, err)
		return nil, err
	}

	return &QuestionWithAnswer{
		Question: *question,
		Answer:   answer.Value,
		Weight:   answer.Weight,
		Weights:  answer.Weights,
	}, nil
}

// Delete удаляет вопрос вместе с ответом и откликами пользователей
func (s *QuestionService) Delete(id uint) error {
	if _, err := s.questionRepo.GetByID(id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&entity.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&entity.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Question{}, id).Error
	})
	if err != nil {
		log.Printf("[QuestionService] Ошибка при удалении вопроса id=%d: %v", id, err)
	}
	return err
}

// ListListeningGrouped возвращает вопросы модуля аудирования,
// сгруппированные по аудиозаписям.
func (s *QuestionService) ListListeningGrouped() ([]RecordingGroup, error) {
	questions, err := s.questionRepo.ListByModule(entity.ModuleListening)
	if err != nil {
		return nil, err
	}

	withAnswers, err := s.attachAnswers(questions)
	if err != nil {
		return nil, err
	}

	byRecording := make(map[uint][]QuestionWithAnswer)
	order := make([]uint, 0)
	for _, q := range withAnswers {
		if q.RecordingID == nil {
			continue
		}
		rid := *q.RecordingID
		if _, ok := byRecording[rid]; !ok {
			order = append(order, rid)
		}
		byRecording[rid] = append(byRecording[rid], q)
	}

	groups := make([]RecordingGroup, 0, len(order))
	for _, rid := range order {
		groups = append(groups, RecordingGroup{
			RecordingID: rid,
			AudioURL:    fmt.Sprintf("/api/listening/audio/%d", rid),
			Questions:   byRecording[rid],
		})
	}
	return groups, nil
}

// attachAnswers подтягивает канонические ответы к списку вопросов
func (s *QuestionService) attachAnswers(questions []entity.Question) ([]QuestionWithAnswer, error) {
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	answers, err := s.answerRepo.ListByQuestionIDs(ids)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[uint]entity.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	result := make([]QuestionWithAnswer, len(questions))
	for i, q := range questions {
		result[i] = QuestionWithAnswer{Question: q}
		if a, ok := byQuestion[q.ID]; ok {
			result[i].Answer = a.Value
			result[i].Weight = a.Weight
			result[i].Weights = a.Weights
		}
	}
	return result, nil
}
