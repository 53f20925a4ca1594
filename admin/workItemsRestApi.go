package admin

import (
	"net/http"

	"cloyt/bizerror"
	"cloyt/common"

	"github.com/gin-gonic/gin"
)

type workItemsHandler struct {
}

func RegisterWorkItemsHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	handler := &workItemsHandler{}

	g := r.Group("/v1/work-items", middleWares...)
	g.GET("", handler.handleQuery)
}

func (h *workItemsHandler) handleQuery(c *gin.Context) {
	query := WorkItemQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	workItems, total, err := QueryWorkItemsFunc(c.Request.Context(), &query)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &common.PagedBody{List: workItems, Total: uint64(total)})
}
