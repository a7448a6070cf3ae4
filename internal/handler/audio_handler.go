package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hunar-api/internal/service"
)

// maxAudioUploadSize ограничивает размер загружаемой аудиозаписи
const maxAudioUploadSize = 32 << 20 // 32 MiB

// AudioHandler обрабатывает аудиозаписи модуля аудирования
type AudioHandler struct {
	audioService *service.AudioService
}

// NewAudioHandler создает новый обработчик аудиозаписей
func NewAudioHandler(audioService *service.AudioService) *AudioHandler {
	return &AudioHandler{
		audioService: audioService,
	}
}

// RandomAudio возвращает аудиозапись, вопросы которой пользователь
// еще не исчерпал.
func (h *AudioHandler) RandomAudio(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	audio, err := h.audioService.RandomAudio(userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, audio)
}

// Stream отдает файл аудиозаписи
func (h *AudioHandler) Stream(c *gin.Context) {
	recordingID := c.GetUint("recording_id")

	path, err := h.audioService.FilePath(recordingID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Type", "audio/mpeg")
	c.File(path)
}

// Upload принимает multipart-файл новой аудиозаписи (админ)
func (h *AudioHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAudioUploadSize)

	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read audio file"})
		return
	}
	defer src.Close()

	recordingID, err := h.audioService.Upload(src)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"audio_id":  recordingID,
		"audio_url": fmt.Sprintf("/api/listening/audio/%d", recordingID),
	})
}

// DeleteRecording удаляет аудиозапись вместе с вопросами (админ)
func (h *AudioHandler) DeleteRecording(c *gin.Context) {
	recordingID := c.GetUint("recording_id")

	if err := h.audioService.DeleteRecording(recordingID); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recording deleted"})
}
