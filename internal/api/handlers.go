package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/editor"
	"github.com/annel0/dungeon-editor/internal/eventbus"
	"github.com/annel0/dungeon-editor/internal/geometry"
	"github.com/annel0/dungeon-editor/internal/logging"
	"github.com/annel0/dungeon-editor/internal/vec"
	"github.com/gin-gonic/gin"
)

// CellRequest координата клетки во внешних координатах (Z снизу вверх)
type CellRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Pos преобразует запрос в координату
func (r CellRequest) Pos() vec.Vec3 {
	return vec.Vec3{X: r.X, Y: r.Y, Z: r.Z}
}

// CreateDungeonRequest запрос на создание нового подземелья.
// Нулевые размеры заменяются значениями из конфигурации.
type CreateDungeonRequest struct {
	ID      string `json:"id" binding:"required"`
	Display string `json:"display"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Layers  int    `json:"layers"`
}

// badRequest отвечает единообразной ошибкой формата запроса
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, GenericResponse{
		Success: false,
		Message: "Неверный формат запроса",
	})
}

// opResponse отвечает итогом операции редактирования.
// Невыполненные предусловия — это no-op, а не ошибка HTTP.
func opResponse(c *gin.Context, res editor.OpResult) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: res.Message,
		Data:    res,
	})
}

// handleListDungeons возвращает идентификаторы сохранённых подземелий
func (rs *RestServer) handleListDungeons(c *gin.Context) {
	ids, err := rs.store.ListDungeons()
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка хранилища",
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Список подземелий",
		Data:    ids,
	})
}

// handleCreateDungeon создаёт пустое подземелье и делает его текущим
func (rs *RestServer) handleCreateDungeon(c *gin.Context) {
	var req CreateDungeonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	dims := dungeon.Dimensions{Width: req.Width, Height: req.Height, Layers: req.Layers}
	if dims.Width == 0 {
		dims.Width = rs.defaults.Width
	}
	if dims.Height == 0 {
		dims.Height = rs.defaults.Height
	}
	if dims.Layers == 0 {
		dims.Layers = rs.defaults.Layers
	}
	if dims.Width <= 0 || dims.Height <= 0 || dims.Layers <= 0 {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Размеры должны быть положительными",
		})
		return
	}

	doc := dungeon.New(req.ID, dims)
	doc.Display = req.Display
	rs.session.Open(doc)

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Подземелье создано",
		Data:    gin.H{"id": doc.ID},
	})
}

// handleOpenDungeon загружает документ из хранилища в сессию
func (rs *RestServer) handleOpenDungeon(c *gin.Context) {
	id := c.Param("id")
	doc, err := rs.store.LoadDungeon(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка хранилища",
		})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Подземелье не найдено",
		})
		return
	}

	rs.session.Open(doc)
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Подземелье загружено",
		Data:    gin.H{"id": id},
	})
}

// handleSaveDungeon сохраняет текущий документ целиком: в BadgerDB и,
// при ?export=yaml, в YAML-файл каталога экспорта
func (rs *RestServer) handleSaveDungeon(c *gin.Context) {
	id := c.Param("id")
	doc := rs.session.Document()
	if doc == nil || doc.ID != id {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Документ не загружен",
		})
		return
	}

	if err := rs.store.SaveDungeon(doc); err != nil {
		logging.Error("Ошибка сохранения %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка сохранения",
		})
		return
	}

	data := gin.H{"id": id}
	if c.Query("export") == "yaml" {
		path, err := rs.files.Export(doc)
		if err != nil {
			logging.Error("Ошибка экспорта %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, GenericResponse{
				Success: false,
				Message: "Ошибка экспорта",
			})
			return
		}
		data["export_path"] = path
	}

	eventbus.PublishEditorEvent(eventbus.EventDocumentSaved, gin.H{"dungeon_id": id})
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Сохранено",
		Data:    data,
	})
}

// handleDeleteDungeon удаляет документ из хранилища
func (rs *RestServer) handleDeleteDungeon(c *gin.Context) {
	id := c.Param("id")
	if err := rs.store.DeleteDungeon(id); err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка удаления",
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Удалено",
	})
}

// handleGetDocument возвращает полное состояние текущего документа
func (rs *RestServer) handleGetDocument(c *gin.Context) {
	doc := rs.session.Document()
	if doc == nil {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Документ не загружен",
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Текущий документ",
		Data:    doc,
	})
}

// SelectShapeRequest запрос выделения фигурой на одном этаже
type SelectShapeRequest struct {
	Shape  string `json:"shape" binding:"required"`
	StartX int    `json:"start_x"`
	StartY int    `json:"start_y"`
	EndX   int    `json:"end_x"`
	EndY   int    `json:"end_y"`
	Z      int    `json:"z"`
}

// handleSelectShape строит выделение по фигуре
func (rs *RestServer) handleSelectShape(c *gin.Context) {
	var req SelectShapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	shape, err := geometry.ParseShape(req.Shape)
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	count := rs.session.SelectShape(shape,
		vec.Vec2{X: req.StartX, Y: req.StartY},
		vec.Vec2{X: req.EndX, Y: req.EndY},
		req.Z)
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Выделение обновлено",
		Data:    gin.H{"cells": count},
	})
}

// handleSelectCell выделяет единственную клетку (якорь вставки)
func (rs *RestServer) handleSelectCell(c *gin.Context) {
	var req CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	rs.session.SelectCell(req.Pos())
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Клетка выделена"})
}

// handleGetSelection возвращает текущее множество выделенных клеток
func (rs *RestServer) handleGetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Текущее выделение",
		Data:    rs.session.Selection(),
	})
}

// PlaceRequest запрос размещения/заливки комнаты
type PlaceRequest struct {
	CellRequest
	RoomIndex int `json:"room_index"`
}

// handlePlace ставит одну комнату
func (rs *RestServer) handlePlace(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.PlaceRoom(req.Pos(), req.RoomIndex))
}

// handlePaint выполняет заливку комнатой
func (rs *RestServer) handlePaint(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.Paint(req.Pos(), req.RoomIndex))
}

// handleDelete очищает одну клетку
func (rs *RestServer) handleDelete(c *gin.Context) {
	var req CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.DeleteRoom(req.Pos()))
}

// handleDeletePainted выполняет заливку-удаление
func (rs *RestServer) handleDeletePainted(c *gin.Context) {
	var req CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.PaintDelete(req.Pos()))
}

// handleDeleteSelection очищает все выделенные клетки
func (rs *RestServer) handleDeleteSelection(c *gin.Context) {
	opResponse(c, rs.session.DeleteSelection())
}

// AddResetRequest запрос добавления ресета
type AddResetRequest struct {
	CellRequest
	TemplateID string `json:"template_id" binding:"required"`
}

// handleAddReset добавляет или объединяет ресет
func (rs *RestServer) handleAddReset(c *gin.Context) {
	var req AddResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.AddReset(req.Pos(), req.TemplateID))
}

// handleCopy копирует выделение в буфер обмена
func (rs *RestServer) handleCopy(c *gin.Context) {
	opResponse(c, rs.session.Copy())
}

// PasteRequest необязательный явный якорь вставки
type PasteRequest struct {
	Anchor *CellRequest `json:"anchor"`
}

// handlePaste вставляет буфер обмена
func (rs *RestServer) handlePaste(c *gin.Context) {
	var req PasteRequest
	// Пустое тело допустимо: якорь берётся из выделения
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c)
		return
	}
	if req.Anchor != nil {
		opResponse(c, rs.session.PasteAt(req.Anchor.Pos()))
		return
	}
	opResponse(c, rs.session.Paste())
}

// handleUndo откатывает последнюю мутацию
func (rs *RestServer) handleUndo(c *gin.Context) {
	opResponse(c, rs.session.Undo())
}

// handleRedo повторяет отменённую мутацию
func (rs *RestServer) handleRedo(c *gin.Context) {
	opResponse(c, rs.session.Redo())
}

// ResizeRequest новый размер подземелья
type ResizeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
	Layers int `json:"layers" binding:"required"`
}

// handleResize изменяет размеры документа
func (rs *RestServer) handleResize(c *gin.Context) {
	var req ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.ResizeDungeon(dungeon.Dimensions{
		Width:  req.Width,
		Height: req.Height,
		Layers: req.Layers,
	}))
}

// LayerRequest текущий этаж
type LayerRequest struct {
	Z int `json:"z"`
}

// handleSetLayer задаёт текущий этаж
func (rs *RestServer) handleSetLayer(c *gin.Context) {
	var req LayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	rs.session.SetCurrentLayer(req.Z)
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Этаж переключён"})
}

// ResetMessageRequest сообщение ресета подземелья
type ResetMessageRequest struct {
	Message string `json:"message"`
}

// handleSetResetMessage задаёт сообщение ресета
func (rs *RestServer) handleSetResetMessage(c *gin.Context) {
	var req ResetMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.SetResetMessage(req.Message))
}

// handleExits возвращает классификацию связности клетки
func (rs *RestServer) handleExits(c *gin.Context) {
	x, _ := strconv.Atoi(c.Query("x"))
	y, _ := strconv.Atoi(c.Query("y"))
	z, _ := strconv.Atoi(c.Query("z"))

	cls, ok := rs.session.ExitsAt(vec.Vec3{X: x, Y: y, Z: z})
	if !ok {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Документ не загружен",
		})
		return
	}

	out := make(map[string]string, 4)
	for _, dir := range dungeon.Lateral {
		out[dir.String()] = cls.At(dir).String()
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Классификация выходов",
		Data:    out,
	})
}

// handleAddRoomTemplate добавляет шаблон комнаты
func (rs *RestServer) handleAddRoomTemplate(c *gin.Context) {
	var rt dungeon.RoomTemplate
	if err := c.ShouldBindJSON(&rt); err != nil {
		badRequest(c)
		return
	}
	idx, res := rs.session.AddRoomTemplate(rt)
	if !res.Changed {
		opResponse(c, res)
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Шаблон комнаты добавлен",
		Data:    gin.H{"index": idx},
	})
}

// handleUpdateRoomTemplate заменяет шаблон комнаты по индексу
func (rs *RestServer) handleUpdateRoomTemplate(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		badRequest(c)
		return
	}
	var rt dungeon.RoomTemplate
	if err := c.ShouldBindJSON(&rt); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.UpdateRoomTemplate(idx, rt))
}

// handleDeleteRoomTemplate удаляет шаблон комнаты с перенумерацией сетки
func (rs *RestServer) handleDeleteRoomTemplate(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.DeleteRoomTemplate(idx))
}

// handleAddTemplate добавляет шаблон моба/предмета
func (rs *RestServer) handleAddTemplate(c *gin.Context) {
	var t dungeon.Template
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.AddTemplate(t))
}

// handleUpdateTemplate заменяет шаблон моба/предмета
func (rs *RestServer) handleUpdateTemplate(c *gin.Context) {
	var t dungeon.Template
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c)
		return
	}
	opResponse(c, rs.session.UpdateTemplate(c.Param("id"), t))
}

// handleDeleteTemplate удаляет шаблон моба/предмета вместе с его ресетами
func (rs *RestServer) handleDeleteTemplate(c *gin.Context) {
	opResponse(c, rs.session.DeleteTemplate(c.Param("id")))
}
