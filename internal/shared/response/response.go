package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Every error body has the same shape:
//
//	{"error": {"message": "<code>", "issues": {...}}}
//
// message is a fixed code string, never raw error text; issues only
// appears on validation failures.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string      `json:"message"`
	Issues  interface{} `json:"issues,omitempty"`
}

const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeInternal   = "internal_error"
)

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// List writes the rows as a JSON array and reports the total match count
// (ignoring pagination) in the x-total-count header.
func List(c *gin.Context, total int, rows interface{}) {
	c.Header("x-total-count", strconv.Itoa(total))
	c.JSON(http.StatusOK, rows)
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, errorBody{Error: errorDetail{Message: message}})
}

// ValidationError maps ozzo field errors into the issues payload. Other
// errors (malformed JSON, bad path params) get the bare code.
func ValidationError(c *gin.Context, err error) {
	var issues interface{}
	if verrs, ok := err.(validation.Errors); ok {
		issues = verrs
	} else if err != nil {
		issues = err.Error()
	}
	c.JSON(http.StatusBadRequest, errorBody{Error: errorDetail{
		Message: CodeValidation,
		Issues:  issues,
	}})
}

func NotFound(c *gin.Context) {
	Fail(c, http.StatusNotFound, CodeNotFound)
}

func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

func Internal(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, CodeInternal)
}
