package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workforce-scheduler/internal/web"
)

// WebHandler renders the client page shell. Access checks run in the browser;
// every API call behind the pages is still guarded server-side.
type WebHandler struct{}

func NewWebHandler() *WebHandler {
	return &WebHandler{}
}

// Page renders one of the client pages by id.
func (h *WebHandler) Page(page string) gin.HandlerFunc {
	title := web.Pages[page]
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "base", gin.H{
			"Page":  page,
			"Title": title,
		})
	}
}

func (h *WebHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/app")
}
