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

// NotesHandler exposes note CRUD for the authenticated user.
type NotesHandler struct {
	notes *service.NoteService
}

// NewNotesHandler constructs handler.
func NewNotesHandler(notes *service.NoteService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// List handles GET /api/notes.
func (h *NotesHandler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrForbidden
	}

	notes, err := h.notes.List(c.Context(), userID)
	if err != nil {
		return err
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, noteResponse(note))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Create handles POST /api/notes.
func (h *NotesHandler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrForbidden
	}

	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	note, err := h.notes.Create(c.Context(), userID, req.Title, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": noteResponse(*note)})
}

// Update handles PUT /api/notes/:id.
func (h *NotesHandler) Update(c *fiber.Ctx) error {
	userID, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrForbidden
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid note id")
	}

	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.notes.Update(c.Context(), userID, id, req.Title, req.Body); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete handles DELETE /api/notes/:id.
func (h *NotesHandler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrForbidden
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid note id")
	}

	if err := h.notes.Delete(c.Context(), userID, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func noteResponse(note domain.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
