package repository

// MetricsRepository читает результаты внешних движков оценки:
// речевые метрики коммуникационного модуля и отзыв презентационного.
type MetricsRepository interface {
	// GetAudioMetrics возвращает JSON-блоб метрик речи; отсутствие — ErrNotFound
	GetAudioMetrics(userID string) (string, error)

	// GetPresentationFeedback возвращает JSON-блоб отзыва; отсутствие — ErrNotFound
	GetPresentationFeedback(userID string) (string, error)
}
