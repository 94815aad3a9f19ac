package handlers

import (
	"errors"
	"net/http"

	"bookshelf/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both register and login.
type authCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type sessionStatus struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		abortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      authCredentials  true  "credentials"
// @Success      201    {object}  registerResponse
// @Failure      400    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		abortWithMessage(c, http.StatusBadRequest, msgCredentialsRequired)
		return
	case errors.Is(err, service.ErrUsernameTaken):
		if h.log != nil {
			h.log.Infow("auth_register_taken", "username", input.Username)
		}
		abortWithMessage(c, http.StatusBadRequest, msgUsernameTaken)
		return
	case err != nil:
		h.internalError(c, "auth_register_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{Message: msgRegistered, ID: id})
}

// @Summary      Login
// @Description  Sets the session cookie on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      authCredentials  true  "credentials"
// @Success      200    {object}  loginResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	sess, err := h.services.SignIn(c.Request.Context(), input.Username, input.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", input.Username)
		}
		abortWithMessage(c, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		h.internalError(c, "auth_login_error", err, "username", input.Username)
		return
	}

	h.setSessionCookie(c, sess.Token, int(h.opts.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, loginResponse{Message: msgLoggedIn, Username: sess.Username})
}

// @Summary      Logout
// @Description  Expires the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, messageResponse{Message: msgLoggedOut})
}

// @Summary      Session state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionStatus
// @Failure      401  {object}  sessionStatus
// @Router       /api/check_session [get]
func (h *Handler) checkSession(c *gin.Context) {
	token := h.sessionToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, sessionStatus{LoggedIn: false})
		return
	}
	userID, err := h.services.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, sessionStatus{LoggedIn: false})
		return
	}

	u, err := h.services.CurrentUser(c.Request.Context(), userID)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, sessionStatus{LoggedIn: false})
		return
	}
	if err != nil {
		h.internalError(c, "check_session_failed", err, "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, sessionStatus{LoggedIn: true, Username: u.Username})
}

// setSessionCookie writes the session cookie; maxAge < 0 expires it.
func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, value, maxAge, "/", "", h.opts.CookieSecure, true)
}
