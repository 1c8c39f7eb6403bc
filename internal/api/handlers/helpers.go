package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// pathID parses the ":id" route parameter. It writes a 400 and returns false
// when the value is not a positive integer.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid delivery id")
		return 0, false
	}
	return id, true
}
