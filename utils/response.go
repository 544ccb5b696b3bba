package utils

import "github.com/gin-gonic/gin"

// Response envelope matches the frontend contract: status is one of
// success | fail | error.

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func JSONFail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "fail", "message": message})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}
