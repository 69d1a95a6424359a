package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workspace-service/internal/api/dto"
	"github.com/spec-kit/workspace-service/internal/auth"
	"github.com/spec-kit/workspace-service/internal/domain"
	"github.com/spec-kit/workspace-service/internal/service"
)

// TodosHandler exposes todo CRUD for the authenticated user.
type TodosHandler struct {
	todos *service.TodoService
}

// NewTodosHandler constructs handler.
func NewTodosHandler(todos *service.TodoService) *TodosHandler {
	return &TodosHandler{todos: todos}
}

// List handles GET /api/todos.
func (h *TodosHandler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrForbidden
	}

	todos, err := h.todos.List(c.Context(), userID)
	if err != nil {
		return err
	}

	responses := make([]dto.TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, todoResponse(todo))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Create handles POST /api/todos.
func (h *TodosHandler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrForbidden
	}

	var req dto.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	todo, err := h.todos.Create(c.Context(), userID, req.Title)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": todoResponse(*todo)})
}

// Update handles PATCH /api/todos/:id.
func (h *TodosHandler) Update(c *fiber.Ctx) error {
	userID, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrForbidden
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid todo id")
	}

	var req dto.UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.todos.SetDone(c.Context(), userID, id, req.Done); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete handles DELETE /api/todos/:id.
func (h *TodosHandler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrForbidden
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid todo id")
	}

	if err := h.todos.Delete(c.Context(), userID, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func todoResponse(todo domain.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Done:      todo.Done,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}
