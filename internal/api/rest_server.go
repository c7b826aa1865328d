package api

import (
	"fmt"
	"net/http"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/editor"
	"github.com/annel0/dungeon-editor/internal/middleware"
	"github.com/annel0/dungeon-editor/internal/storage"
	"github.com/gin-gonic/gin"
)

// RestServer представляет REST API редактора: единственную
// презентационную границу ядра. Маршруты выражают дискретные
// команды редактирования (place, paint, select, copy, paste, undo…).
type RestServer struct {
	router   *gin.Engine
	session  *editor.Session
	store    *storage.DocumentStorage
	files    *storage.FileStorage
	port     string
	defaults dungeon.Dimensions
	metrics  *ServerMetrics
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port     string                   // порт для запуска сервера
	Session  *editor.Session          // сессия редактирования
	Store    *storage.DocumentStorage // хранилище документов
	Files    *storage.FileStorage     // файловый экспорт/импорт
	Defaults dungeon.Dimensions       // размеры нового подземелья по умолчанию
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	promMw := middleware.NewPrometheusMiddleware("editor_api")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:   router,
		session:  config.Session,
		store:    config.Store,
		files:    config.Files,
		port:     config.Port,
		defaults: config.Defaults,
		metrics:  NewServerMetrics(),
	}

	// Настраиваем маршруты
	server.setupRoutes()

	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Группа API
	api := rs.router.Group("/api")

	// Документы: список, создание, загрузка, сохранение
	dungeons := api.Group("/dungeons")
	{
		dungeons.GET("", rs.handleListDungeons)
		dungeons.POST("", rs.handleCreateDungeon)
		dungeons.POST("/:id/open", rs.handleOpenDungeon)
		dungeons.POST("/:id/save", rs.handleSaveDungeon)
		dungeons.DELETE("/:id", rs.handleDeleteDungeon)
	}

	// Текущий документ целиком (для сохранения/отрисовки)
	api.GET("/document", rs.handleGetDocument)

	// Команды редактирования
	edit := api.Group("/edit")
	{
		edit.POST("/select", rs.handleSelectShape)
		edit.POST("/select-cell", rs.handleSelectCell)
		edit.GET("/selection", rs.handleGetSelection)
		edit.POST("/place", rs.handlePlace)
		edit.POST("/paint", rs.handlePaint)
		edit.POST("/delete", rs.handleDelete)
		edit.POST("/delete-painted", rs.handleDeletePainted)
		edit.POST("/delete-selection", rs.handleDeleteSelection)
		edit.POST("/add-reset", rs.handleAddReset)
		edit.POST("/copy", rs.handleCopy)
		edit.POST("/paste", rs.handlePaste)
		edit.POST("/undo", rs.handleUndo)
		edit.POST("/redo", rs.handleRedo)
		edit.POST("/resize", rs.handleResize)
		edit.POST("/layer", rs.handleSetLayer)
		edit.POST("/reset-message", rs.handleSetResetMessage)
		edit.GET("/exits", rs.handleExits)
	}

	// Шаблоны комнат и мобов/предметов (границa форм: атрибуты непрозрачны)
	rooms := api.Group("/rooms")
	{
		rooms.POST("", rs.handleAddRoomTemplate)
		rooms.PUT("/:idx", rs.handleUpdateRoomTemplate)
		rooms.DELETE("/:idx", rs.handleDeleteRoomTemplate)
	}
	templates := api.Group("/templates")
	{
		templates.POST("", rs.handleAddTemplate)
		templates.PUT("/:id", rs.handleUpdateTemplate)
		templates.DELETE("/:id", rs.handleDeleteTemplate)
	}

	// Статистика процесса редактора
	api.GET("/server", rs.handleServerInfo)

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Start запускает REST сервер (блокирующий вызов)
func (rs *RestServer) Start() error {
	return rs.router.Run(rs.port)
}

// handleHealth проверка живости сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": rs.metrics.GetUptime(),
	})
}

// handleServerInfo возвращает информацию о процессе редактора
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	memoryMB, _ := rs.metrics.GetMemoryUsage()
	cpuPercent, _ := rs.metrics.GetCPUUsage()

	info := map[string]interface{}{
		"name":           "Dungeon Grid Editor",
		"status":         "running",
		"uptime":         rs.metrics.GetUptime(),
		"memory_mb":      fmt.Sprintf("%.1f", memoryMB),
		"cpu_percent":    fmt.Sprintf("%.1f", cpuPercent),
		"memory_details": rs.metrics.GetDetailedMemoryStats(),
		"document":       rs.session.DocumentID(),
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    info,
	})
}
