package service

import (
	"fmt"
	"io"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/hunar-api/internal/domain/entity"
	"github.com/yourusername/hunar-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunar-api/internal/pkg/errors"
	"github.com/yourusername/hunar-api/pkg/storage"
)

// RandomAudio — аудиозапись, предложенная пользователю
type RandomAudio struct {
	RecordingID uint   `json:"audio_id"`
	AudioURL    string `json:"audio_url"`
}

// AudioService управляет аудиозаписями модуля аудирования.
// Файлы хранятся в BlobStore под именами "<recording_id>.mp3".
type AudioService struct {
	db           *gorm.DB
	questionRepo repository.QuestionRepository
	store        storage.BlobStore
}

// NewAudioService создает новый сервис аудиозаписей
func NewAudioService(db *gorm.DB, questionRepo repository.QuestionRepository, store storage.BlobStore) *AudioService {
	return &AudioService{
		db:           db,
		questionRepo: questionRepo,
		store:        store,
	}
}

// audioKey возвращает имя файла аудиозаписи в хранилище
func audioKey(recordingID uint) string {
	return fmt.Sprintf("%d.mp3", recordingID)
}

// RandomAudio выбирает аудиозапись, вопросы которой пользователь еще
// не исчерпал. Исчерпанный пул — ErrNotFound.
func (s *AudioService) RandomAudio(userID string) (*RandomAudio, error) {
	question, err := s.questionRepo.GetRandomUnanswered(userID, entity.ModuleListening, repository.QuestionFilter{
		Standard: entity.DefaultStandard,
	})
	if err != nil {
		return nil, err
	}
	if question.RecordingID == nil {
		return nil, fmt.Errorf("listening question %d has no recording", question.ID)
	}

	rid := *question.RecordingID
	return &RandomAudio{
		RecordingID: rid,
		AudioURL:    fmt.Sprintf("/api/listening/audio/%d", rid),
	}, nil
}

// FilePath возвращает путь к файлу аудиозаписи; отсутствие — ErrNotFound
func (s *AudioService) FilePath(recordingID uint) (string, error) {
	key := audioKey(recordingID)
	exists, err := s.store.Exists(key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: recording %d", apperrors.ErrNotFound, recordingID)
	}
	return s.store.Path(key), nil
}

// Upload сохраняет новую аудиозапись под следующим свободным номером
// и заводит для нее вопрос-заготовку с ответом по умолчанию.
// Вопрос потом редактируется через админку.
func (s *AudioService) Upload(r io.Reader) (uint, error) {
	maxID, err := s.questionRepo.MaxRecordingID()
	if err != nil {
		return 0, err
	}
	newID := maxID + 1

	if err := s.store.Put(audioKey(newID), r); err != nil {
		log.Printf("[AudioService] Ошибка сохранения аудиозаписи id=%d: %v", newID, err)
		return 0, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		question := &entity.Question{
			ModuleID:    entity.ModuleListening,
			RecordingID: &newID,
			Text:        fmt.Sprintf("Question for recording %d", newID),
			Options:     entity.StringArray{},
			AttemptTime: entity.DefaultAttemptTime,
			Standard:    entity.DefaultStandard,
		}
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		answer := &entity.Answer{
			QuestionID: question.ID,
			Value:      1,
			Weight:     1,
		}
		return tx.Create(answer).Error
	})
	if err != nil {
		// Файл без вопроса бесполезен, убираем его
		if remErr := s.store.Delete(audioKey(newID)); remErr != nil {
			log.Printf("[AudioService] Не удалось удалить файл осиротевшей записи id=%d: %v", newID, remErr)
		}
		log.Printf("[AudioService] Ошибка создания вопроса для записи id=%d: %v", newID, err)
		return 0, err
	}

	log.Printf("[AudioService] Загружена аудиозапись id=%d", newID)
	return newID, nil
}

// DeleteRecording удаляет аудиозапись вместе с ее вопросами, ответами
// и откликами пользователей.
func (s *AudioService) DeleteRecording(recordingID uint) error {
	questions, err := s.questionRepo.ListByRecording(recordingID)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("%w: recording %d", apperrors.ErrNotFound, recordingID)
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&entity.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&entity.Answer{}).Error; err != nil {
			return err
		}
		return tx.Where("recording_id = ?", recordingID).Delete(&entity.Question{}).Error
	})
	if err != nil {
		log.Printf("[AudioService] Ошибка удаления вопросов записи id=%d: %v", recordingID, err)
		return err
	}

	if err := s.store.Delete(audioKey(recordingID)); err != nil {
		log.Printf("[AudioService] Не удалось удалить файл записи id=%d: %v", recordingID, err)
	}

	log.Printf("[AudioService] Удалена аудиозапись id=%d", recordingID)
	return nil
}
