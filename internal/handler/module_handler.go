package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hunar-api/internal/service"
)

// ModuleHandler обрабатывает запросы к навыковым модулям
type ModuleHandler struct {
	moduleService *service.ModuleService
}

// NewModuleHandler создает новый обработчик модулей
func NewModuleHandler(moduleService *service.ModuleService) *ModuleHandler {
	return &ModuleHandler{
		moduleService: moduleService,
	}
}

// List возвращает все модули
func (h *ModuleHandler) List(c *gin.Context) {
	modules, err := h.moduleService.List()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, modules)
}

// Get возвращает модуль по идентификатору
func (h *ModuleHandler) Get(c *gin.Context) {
	id := c.GetUint("module_id")

	module, err := h.moduleService.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// Create обрабатывает создание модуля (админ)
func (h *ModuleHandler) Create(c *gin.Context) {
	var req service.CreateModuleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	module, err := h.moduleService.Create(req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, module)
}

// Update обрабатывает обновление модуля (админ)
func (h *ModuleHandler) Update(c *gin.Context) {
	id := c.GetUint("module_id")

	var req service.UpdateModuleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	module, err := h.moduleService.Update(id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// Delete обрабатывает удаление модуля (админ). Встроенные модули защищены.
func (h *ModuleHandler) Delete(c *gin.Context) {
	id := c.GetUint("module_id")

	if err := h.moduleService.Delete(id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Module deleted"})
}
