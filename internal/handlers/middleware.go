package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey       = "userId"
	requestIDKey    = "requestId"
	requestIDHeader = "X-Request-ID"
)

// sessionToken returns the session token from the cookie, falling back to a
// Bearer Authorization header.
func (h *Handler) sessionToken(c *gin.Context) string {
	if v, err := c.Cookie(h.opts.CookieName); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (h *Handler) sessionMiddleware(c *gin.Context) {
	token := h.sessionToken(c)
	if token == "" {
		abortWithMessage(c, http.StatusUnauthorized, msgAuthRequired)
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		abortWithMessage(c, http.StatusUnauthorized, msgInvalidSession)
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}

// currentUserID reads the id stored by sessionMiddleware.
func currentUserID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}

// requestLogger tags the request with an id and logs one line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	rid := c.GetHeader(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(requestIDKey, rid)
	c.Header(requestIDHeader, rid)

	c.Next()

	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"request_id", rid,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}

// cors echoes allowed origins so a browser frontend can send the session cookie.
func (h *Handler) cors(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if _, ok := h.origins[origin]; origin != "" && ok {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Vary", "Origin")
	}
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

// originAllowed is used by the websocket upgrader. Requests without an Origin
// header and same-host requests are accepted.
func (h *Handler) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if _, ok := h.origins[origin]; ok {
		return true
	}
	host := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
	return strings.EqualFold(host, r.Host)
}
