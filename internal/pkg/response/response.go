package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorBody is the error envelope clients read: {"detail": "..."}.
type errorBody struct {
	Detail string `json:"detail"`
}

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// List sends a 200 response with the collection wrapped in {items: [...]}.
func List(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Error aborts with status and a detail message.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{Detail: message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// UnprocessableEntity sends a 422 error response.
func UnprocessableEntity(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, message)
}

// TooLarge sends a 413 error response.
func TooLarge(c *gin.Context, message string) {
	Error(c, http.StatusRequestEntityTooLarge, message)
}

// InternalError sends a 500 error response. The cause is not exposed.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "Internal Server Error")
}
