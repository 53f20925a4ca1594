package admin

import (
	"errors"
	"net/http"

	"cloyt/bizerror"
	"cloyt/domain"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type employeesHandler struct {
	validator *validator.Validate
}

func RegisterEmployeesHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	handler := &employeesHandler{validator: validator.New()}

	g := r.Group("/v1/employees", middleWares...)
	g.GET("", handler.handleQuery)
	g.POST("", handler.handleCreate)
	g.PUT(":id", handler.handleUpdate)
	g.DELETE(":id", handler.handleDelete)
}

func (h *employeesHandler) handleQuery(c *gin.Context) {
	employees, err := QueryEmployeesFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, employees)
}

func (h *employeesHandler) handleCreate(c *gin.Context) {
	creation := domain.EmployeeCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := h.validator.Struct(creation); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	employee, err := CreateEmployeeFunc(c.Request.Context(), &creation)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *employeesHandler) handleUpdate(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	updating := domain.EmployeeUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := h.validator.Struct(updating); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	if err := UpdateEmployeeFunc(c.Request.Context(), parsedId, &updating); err != nil {
		panic(err)
	}
	c.AbortWithStatus(http.StatusNoContent)
}

func (h *employeesHandler) handleDelete(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	if err := DeleteEmployeeFunc(c.Request.Context(), parsedId); err != nil {
		panic(err)
	}
	c.AbortWithStatus(http.StatusNoContent)
}
