package motivation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetQuoteHandler 返回当天的仪表盘励志格言。
func GetQuoteHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quote": DailyQuote()})
}
