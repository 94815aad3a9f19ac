package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bookshelf/internal/models"
	"bookshelf/internal/service"

	"github.com/gin-gonic/gin"
)

type bookResult struct {
	Message string              `json:"message"`
	Book    models.BookResponse `json:"book"`
}

// bookIDParam parses the :id segment; anything but a positive integer is reported as not found.
func bookIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		abortWithMessage(c, http.StatusNotFound, msgBookNotFound)
		return 0, false
	}
	return id, true
}

// writeBookError maps book service errors to responses.
func (h *Handler) writeBookError(c *gin.Context, event string, err error, kv ...any) {
	switch {
	case errors.Is(err, service.ErrMissingBookFields):
		abortWithMessage(c, http.StatusBadRequest, msgBookFieldsRequired)
	case errors.Is(err, service.ErrInvalidRating):
		abortWithMessage(c, http.StatusBadRequest, msgInvalidRating)
	case errors.Is(err, service.ErrDuplicateBook):
		abortWithMessage(c, http.StatusBadRequest, msgDuplicateBook)
	case errors.Is(err, service.ErrBookNotFound):
		abortWithMessage(c, http.StatusNotFound, msgBookNotFound)
	default:
		h.internalError(c, event, err, kv...)
	}
}

// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {array}   models.BookResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/books [get]
// @Security     BearerAuth
func (h *Handler) listBooks(c *gin.Context) {
	userID := currentUserID(c)
	books, err := h.services.Books.List(c.Request.Context(), userID)
	if err != nil {
		h.internalError(c, "books_list_failed", err, "user_id", userID)
		return
	}

	out := make([]models.BookResponse, 0, len(books))
	for i := range books {
		out = append(out, books[i].ToResponse())
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Add book
// @Description  Looks up a cover image before storing; a failed lookup leaves cover_image_url empty.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        input  body      models.BookInput  true  "book"
// @Success      201    {object}  bookResult
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /api/books [post]
// @Security     BearerAuth
func (h *Handler) addBook(c *gin.Context) {
	var input models.BookInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	userID := currentUserID(c)
	b, err := h.services.Books.Add(c.Request.Context(), userID, input)
	if err != nil {
		h.writeBookError(c, "book_add_failed", err, "user_id", userID)
		return
	}

	c.JSON(http.StatusCreated, bookResult{Message: msgBookAdded, Book: b.ToResponse()})
}

// @Summary      Update book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id     path      int               true  "book id"
// @Param        input  body      models.BookInput  true  "book"
// @Success      200    {object}  bookResult
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /api/books/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBook(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}
	var input models.BookInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	userID := currentUserID(c)
	b, err := h.services.Books.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		h.writeBookError(c, "book_update_failed", err, "user_id", userID, "book_id", id)
		return
	}

	c.JSON(http.StatusOK, bookResult{Message: msgBookUpdated, Book: b.ToResponse()})
}

// @Summary      Delete book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "book id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/books/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBook(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	if err := h.services.Books.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeBookError(c, "book_delete_failed", err, "user_id", userID, "book_id", id)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: msgBookDeleted})
}
