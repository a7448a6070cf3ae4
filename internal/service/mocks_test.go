package service

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
)

// ============================================================================
// Общие моки репозиториев для тестов сервисов
// ============================================================================

// helper для создания pointer
func uintPtr(v uint) *uint { return &v }

// MockUserRepo реализует repository.UserRepository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByPhone(phone string) (*entity.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) List() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdatePassword(phone, hashedPassword string) error {
	args := m.Called(phone, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateLevel(phone, level string) error {
	args := m.Called(phone, level)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(phone string) error {
	args := m.Called(phone)
	return args.Error(0)
}

// MockModuleRepo реализует repository.ModuleRepository
type MockModuleRepo struct {
	mock.Mock
}

func (m *MockModuleRepo) Create(module *entity.Module) error {
	args := m.Called(module)
	return args.Error(0)
}

func (m *MockModuleRepo) GetByID(id uint) (*entity.Module, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Module), args.Error(1)
}

func (m *MockModuleRepo) List() ([]entity.Module, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Module), args.Error(1)
}

func (m *MockModuleRepo) Update(module *entity.Module) error {
	args := m.Called(module)
	return args.Error(0)
}

func (m *MockModuleRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockModuleRepo) ListIDs() ([]uint, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockQuestionRepo реализует repository.QuestionRepository
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) ListByModule(moduleID uint) ([]entity.Question, error) {
	args := m.Called(moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetRandomUnanswered(userID string, moduleID uint, filter repository.QuestionFilter) (*entity.Question, error) {
	args := m.Called(userID, moduleID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetRandomByStandard(moduleID uint, standard string) (*entity.Question, error) {
	args := m.Called(moduleID, standard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) MaxRecordingID() (uint, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockQuestionRepo) ListByRecording(recordingID uint) ([]entity.Question, error) {
	args := m.Called(recordingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) ListIDsByModule(moduleID uint) ([]uint, error) {
	args := m.Called(moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockAnswerRepo реализует repository.AnswerRepository
type MockAnswerRepo struct {
	mock.Mock
}

func (m *MockAnswerRepo) Create(answer *entity.Answer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockAnswerRepo) GetByQuestionID(questionID uint) (*entity.Answer, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Answer), args.Error(1)
}

func (m *MockAnswerRepo) Update(answer *entity.Answer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockAnswerRepo) ListByQuestionIDs(questionIDs []uint) ([]entity.Answer, error) {
	args := m.Called(questionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Answer), args.Error(1)
}

func (m *MockAnswerRepo) DeleteByQuestionIDs(questionIDs []uint) error {
	args := m.Called(questionIDs)
	return args.Error(0)
}

// MockResponseRepo реализует repository.ResponseRepository
type MockResponseRepo struct {
	mock.Mock
}

func (m *MockResponseRepo) Create(response *entity.Response) error {
	args := m.Called(response)
	return args.Error(0)
}

func (m *MockResponseRepo) AggregateExact(userID string, moduleID uint) (*repository.ExactAggregate, error) {
	args := m.Called(userID, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ExactAggregate), args.Error(1)
}

func (m *MockResponseRepo) AggregateWeighted(userID string, moduleID uint) (*repository.WeightedAggregate, error) {
	args := m.Called(userID, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.WeightedAggregate), args.Error(1)
}

func (m *MockResponseRepo) CorrectCountByTag(userID string, moduleID uint) (map[string]int, error) {
	args := m.Called(userID, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockResponseRepo) DeleteByQuestionIDs(questionIDs []uint) error {
	args := m.Called(questionIDs)
	return args.Error(0)
}

func (m *MockResponseRepo) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockStatusRepo реализует repository.StatusRepository
type MockStatusRepo struct {
	mock.Mock
}

func (m *MockStatusRepo) CreateBatch(statuses []entity.TestSkillStatus) error {
	args := m.Called(statuses)
	return args.Error(0)
}

func (m *MockStatusRepo) MarkCompleted(userID string, testID uint) error {
	args := m.Called(userID, testID)
	return args.Error(0)
}

func (m *MockStatusRepo) Get(userID string, testID uint) (*entity.TestSkillStatus, error) {
	args := m.Called(userID, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TestSkillStatus), args.Error(1)
}

func (m *MockStatusRepo) ListByUser(userID string) ([]entity.TestSkillStatus, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TestSkillStatus), args.Error(1)
}

func (m *MockStatusRepo) DeleteByTest(testID uint) error {
	args := m.Called(testID)
	return args.Error(0)
}

func (m *MockStatusRepo) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockOverallResultRepo реализует repository.OverallResultRepository
type MockOverallResultRepo struct {
	mock.Mock
}

func (m *MockOverallResultRepo) Upsert(result *entity.OverallResult) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockOverallResultRepo) ListByUser(userID string) ([]entity.OverallResult, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OverallResult), args.Error(1)
}

func (m *MockOverallResultRepo) ListAll() ([]entity.OverallResult, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OverallResult), args.Error(1)
}

func (m *MockOverallResultRepo) DeleteByTest(testID uint) error {
	args := m.Called(testID)
	return args.Error(0)
}

func (m *MockOverallResultRepo) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockMetricsRepo реализует repository.MetricsRepository
type MockMetricsRepo struct {
	mock.Mock
}

func (m *MockMetricsRepo) GetAudioMetrics(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockMetricsRepo) GetPresentationFeedback(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

// MockCacheRepo реализует repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepo) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}
