package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
)

func newModuleFixture() (*ModuleService, *MockModuleRepo, *MockUserRepo, *MockQuestionRepo, *MockCacheRepo) {
	moduleRepo := new(MockModuleRepo)
	userRepo := new(MockUserRepo)
	questionRepo := new(MockQuestionRepo)
	cacheRepo := new(MockCacheRepo)
	// Транзакционные пути (Create/Delete) тестируются интеграционно,
	// здесь БД не нужна
	svc := NewModuleService(nil, moduleRepo, userRepo, questionRepo, cacheRepo)
	return svc, moduleRepo, userRepo, questionRepo, cacheRepo
}

func TestModuleService_Delete_ProtectedIDs(t *testing.T) {
	svc, moduleRepo, _, _, _ := newModuleFixture()

	for id := uint(1); id <= entity.MaxProtectedModuleID; id++ {
		moduleRepo.On("GetByID", id).Return(&entity.Module{ID: id, Name: "built-in"}, nil).Once()

		err := svc.Delete(id)

		assert.ErrorIs(t, err, apperrors.ErrForbidden, "Встроенный модуль %d должен быть защищен от удаления", id)
	}
}

func TestModuleService_Create_UnknownScoring(t *testing.T) {
	svc, _, _, _, _ := newModuleFixture()

	module, err := svc.Create(CreateModuleInput{Name: "Custom", Scoring: "fuzzy"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, module)
}

func TestModuleService_Create_EmptyName(t *testing.T) {
	svc, _, _, _, _ := newModuleFixture()

	module, err := svc.Create(CreateModuleInput{})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, module)
}

func TestModuleService_GetInstruction_CacheHit(t *testing.T) {
	svc, moduleRepo, _, _, cacheRepo := newModuleFixture()

	cacheRepo.On("Get", "module:instruction:5").Return("Читайте внимательно", nil)

	instruction, err := svc.GetInstruction(5)

	require.NoError(t, err)
	assert.Equal(t, "Читайте внимательно", instruction)
	moduleRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestModuleService_GetInstruction_CacheMiss(t *testing.T) {
	svc, moduleRepo, _, _, cacheRepo := newModuleFixture()

	cacheRepo.On("Get", "module:instruction:5").Return("", apperrors.ErrNotFound)
	moduleRepo.On("GetByID", uint(5)).Return(&entity.Module{ID: 5, Instruction: "Из базы"}, nil)
	cacheRepo.On("Set", "module:instruction:5", "Из базы", instructionCacheTTL).Return(nil)

	instruction, err := svc.GetInstruction(5)

	require.NoError(t, err)
	assert.Equal(t, "Из базы", instruction)
	cacheRepo.AssertExpectations(t)
}

func TestModuleService_Update_InvalidatesCache(t *testing.T) {
	svc, moduleRepo, _, _, cacheRepo := newModuleFixture()

	moduleRepo.On("GetByID", uint(9)).Return(&entity.Module{ID: 9, Name: "Custom"}, nil)
	moduleRepo.On("Update", mock.MatchedBy(func(m *entity.Module) bool {
		return m.Instruction == "Новая инструкция"
	})).Return(nil)
	cacheRepo.On("Delete", "module:instruction:9").Return(nil)

	module, err := svc.Update(9, UpdateModuleInput{Instruction: "Новая инструкция"})

	require.NoError(t, err)
	assert.Equal(t, "Новая инструкция", module.Instruction)
	cacheRepo.AssertExpectations(t)
}

func TestModuleService_Update_KeepsName(t *testing.T) {
	svc, moduleRepo, _, _, cacheRepo := newModuleFixture()

	moduleRepo.On("GetByID", uint(9)).Return(&entity.Module{ID: 9, Name: "Custom", Status: "active"}, nil)
	moduleRepo.On("Update", mock.MatchedBy(func(m *entity.Module) bool {
		return m.Name == "Custom" && m.Status == "inactive"
	})).Return(nil)
	cacheRepo.On("Delete", "module:instruction:9").Return(nil)

	module, err := svc.Update(9, UpdateModuleInput{Status: "inactive"})

	require.NoError(t, err, "Обновление не должно затрагивать имя модуля")
	assert.Equal(t, "Custom", module.Name)
	moduleRepo.AssertExpectations(t)
}
