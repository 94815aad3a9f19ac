package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// User-facing messages.
const (
	msgCredentialsRequired = "Username and password are required."
	msgUsernameTaken       = "Username already exists."
	msgInvalidCredentials  = "Invalid username or password."
	msgRegistered          = "User registered successfully."
	msgLoggedIn            = "Logged in successfully."
	msgLoggedOut           = "Logged out successfully."
	msgBookFieldsRequired  = "Title, author, and status are required."
	msgInvalidRating       = "Rating must be an integer between 1 and 5."
	msgDuplicateBook       = "Book already exists in your collection."
	msgBookNotFound        = "Book not found."
	msgBookAdded           = "Book added successfully."
	msgBookUpdated         = "Book updated successfully."
	msgBookDeleted         = "Book deleted successfully."
	msgInvalidBody         = "Invalid request body."
	msgAuthRequired        = "Authentication required."
	msgInvalidSession      = "Invalid or expired session."
	msgInternal            = "Internal server error."
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func abortWithMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Message: msg})
}

// internalError logs err under event and answers 500.
func (h *Handler) internalError(c *gin.Context, event string, err error, kv ...any) {
	if h.log != nil {
		h.log.Errorw(event, append(kv, "err", err, "request_id", c.GetString(requestIDKey))...)
	}
	abortWithMessage(c, http.StatusInternalServerError, msgInternal)
}
