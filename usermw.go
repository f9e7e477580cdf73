package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cookieName     = "qz_cid"
	clientIDHeader = "X-Client-Id"
	clientIDKey    = "clientID"
)

// EnsureClient identifies the browser view a request comes from. The id is
// taken from the X-Client-Id header, then the cookie; otherwise a new one is
// issued. It scopes sessions to a view and is not authentication.
func EnsureClient(secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(clientIDHeader)
		if !validClientID(id) {
			id, _ = c.Cookie(cookieName)
		}
		if !validClientID(id) {
			id = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   24 * 3600,
				HttpOnly: true,
				Secure:   secureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Header(clientIDHeader, id)
		c.Set(clientIDKey, id)
		c.Next()
	}
}

func validClientID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func clientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}
