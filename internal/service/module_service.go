package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

// instructionCacheTTL — время жизни инструкции модуля в кеше
const instructionCacheTTL = 10 * time.Minute

// CreateModuleInput — данные для создания модуля
type CreateModuleInput struct {
	Name          string `json:"name" binding:"required"`
	Status        string `json:"status"`
	Instruction   string `json:"instruction"`
	NoOfQuestions int    `json:"no_of_questions"`
	Scoring       string `json:"scoring"`
}

// UpdateModuleInput — данные для обновления модуля. Имя модуля не
// меняется: на него ссылаются сохраненные сводные результаты.
type UpdateModuleInput struct {
	Status        string `json:"status"`
	Instruction   string `json:"instruction"`
	NoOfQuestions int    `json:"no_of_questions"`
}

// ModuleService предоставляет методы для работы с навыковыми модулями
type ModuleService struct {
	db           *gorm.DB
	moduleRepo   repository.ModuleRepository
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
}

// NewModuleService создает новый сервис модулей
func NewModuleService(
	db *gorm.DB,
	moduleRepo repository.ModuleRepository,
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
) *ModuleService {
	return &ModuleService{
		db:           db,
		moduleRepo:   moduleRepo,
		userRepo:     userRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
	}
}

// List возвращает все модули
func (s *ModuleService) List() ([]entity.Module, error) {
	return s.moduleRepo.List()
}

// Get возвращает модуль по идентификатору
func (s *ModuleService) Get(id uint) (*entity.Module, error) {
	return s.moduleRepo.GetByID(id)
}

// Create создает модуль и заводит статусы прохождения для всех
// существующих пользователей.
func (s *ModuleService) Create(input CreateModuleInput) (*entity.Module, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: module name is required", apperrors.ErrValidation)
	}

	scoring := input.Scoring
	if scoring == "" {
		scoring = entity.ScoringExact
	}
	if scoring != entity.ScoringExact && scoring != entity.ScoringWeighted {
		return nil, fmt.Errorf("%w: unknown scoring %q", apperrors.ErrValidation, input.Scoring)
	}

	status := input.Status
	if status == "" {
		status = "active"
	}

	module := &entity.Module{
		Name:          input.Name,
		Status:        status,
		Instruction:   input.Instruction,
		NoOfQuestions: input.NoOfQuestions,
		Scoring:       scoring,
	}

	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}

	// Модуль и статусы пользователей создаются атомарно
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(module).Error; err != nil {
			return err
		}

		statuses := make([]entity.TestSkillStatus, 0, len(users))
		for _, u := range users {
			statuses = append(statuses, entity.TestSkillStatus{
				UserID: u.Phone,
				TestID: module.ID,
			})
		}
		if len(statuses) > 0 {
			if err := tx.Create(&statuses).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolationErr(err) {
			return nil, fmt.Errorf("%w: module %q already exists", apperrors.ErrConflict, input.Name)
		}
		log.Printf("[ModuleService] Ошибка при создании модуля %q: %v", input.Name, err)
		return nil, err
	}

	log.Printf("[ModuleService] Создан модуль id=%d name=%q", module.ID, module.Name)
	return module, nil
}

// Update обновляет модуль и сбрасывает кеш его инструкции
func (s *ModuleService) Update(id uint, input UpdateModuleInput) (*entity.Module, error) {
	module, err := s.moduleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		module.Status = input.Status
	}
	if input.Instruction != "" {
		module.Instruction = input.Instruction
	}
	if input.NoOfQuestions > 0 {
		module.NoOfQuestions = input.NoOfQuestions
	}

	if err := s.moduleRepo.Update(module); err != nil {
		log.Printf("[ModuleService] Ошибка при обновлении модуля id=%d: %v", id, err)
		return nil, err
	}

	if err := s.cacheRepo.Delete(instructionCacheKey(id)); err != nil {
		log.Printf("[ModuleService] Не удалось сбросить кеш инструкции модуля id=%d: %v", id, err)
	}

	return module, nil
}

// Delete удаляет модуль вместе с его вопросами, ответами, откликами,
// статусами и сводными результатами. Встроенные модули 1-7 защищены.
func (s *ModuleService) Delete(id uint) error {
	module, err := s.moduleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if module.IsProtected() {
		return fmt.Errorf("%w: built-in module %d cannot be deleted", apperrors.ErrForbidden, id)
	}

	questionIDs, err := s.questionRepo.ListIDsByModule(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&entity.Response{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&entity.Answer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("module_id = ?", id).Delete(&entity.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", id).Delete(&entity.TestSkillStatus{}).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", id).Delete(&entity.OverallResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Module{}, id).Error
	})
	if err != nil {
		log.Printf("[ModuleService] Ошибка при удалении модуля id=%d: %v", id, err)
		return err
	}

	if err := s.cacheRepo.Delete(instructionCacheKey(id)); err != nil {
		log.Printf("[ModuleService] Не удалось сбросить кеш инструкции модуля id=%d: %v", id, err)
	}

	log.Printf("[ModuleService] Удален модуль id=%d name=%q", id, module.Name)
	return nil
}

// GetInstruction возвращает инструкцию модуля, кешируя ее в Redis
func (s *ModuleService) GetInstruction(id uint) (string, error) {
	key := instructionCacheKey(id)

	cached, err := s.cacheRepo.Get(key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[ModuleService] Ошибка чтения кеша инструкции модуля id=%d: %v", id, err)
	}

	module, err := s.moduleRepo.GetByID(id)
	if err != nil {
		return "", err
	}

	if err := s.cacheRepo.Set(key, module.Instruction, instructionCacheTTL); err != nil {
		log.Printf("[ModuleService] Не удалось записать инструкцию модуля id=%d в кеш: %v", id, err)
	}

	return module.Instruction, nil
}

func instructionCacheKey(moduleID uint) string {
	return fmt.Sprintf("module:instruction:%d", moduleID)
}
