// Package response holds the wire shapes the API serves.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the error envelope every failing endpoint returns.
type ErrorBody struct {
	Error  string `json:"error"`
	Fields string `json:"fields,omitempty"`
}

// Auth is returned by register, login and update-profile. Login additionally
// fills in the user's display name and email.
type Auth struct {
	AuthToken string `json:"authtoken"`
	Email     string `json:"email,omitempty"`
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}

// Message is a one-line informational body (delete confirmations etc.).
type Message struct {
	Message string `json:"message"`
}

// Error renders the error envelope with the given status.
func Error(c echo.Context, statusCode int, message, fields string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorBody{Error: message, Fields: fields})
}
