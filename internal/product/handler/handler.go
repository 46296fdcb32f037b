package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simpleapi/simpleapi/internal/product"
	"github.com/simpleapi/simpleapi/internal/product/service"
	"github.com/simpleapi/simpleapi/pkg/problem"
)

// ProductInput is the create/update payload.
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// RegisterProductRoutes wires the product CRUD endpoints. Reads are
// anonymous; create/update/delete sit behind the token gate (no role
// restriction beyond a valid token).
func RegisterProductRoutes(r *gin.Engine, svc service.Service, requireToken gin.HandlerFunc) {
	r.GET("/products", func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
		query := c.Query("query")
		list, err := svc.List(page, pageSize, query)
		if err != nil {
			problem.Problem{Title: "Unexpected error happened", Detail: err.Error(), Status: http.StatusInternalServerError, Type: "ListProducts"}.Abort(c, false)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/products/:id", func(c *gin.Context) {
		p, err := svc.Get(c.Param("id"))
		if err != nil {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.POST("/products", requireToken, func(c *gin.Context) {
		var req ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		p := &product.Product{Name: req.Name, Description: req.Description, Price: req.Price}
		id, err := svc.Create(p)
		if err != nil {
			problem.Problem{Title: "Unexpected error happened", Detail: err.Error(), Status: http.StatusInternalServerError, Type: "AddProduct"}.Abort(c, false)
			return
		}
		c.Header("Location", "/products/"+id)
		c.JSON(http.StatusCreated, p)
	})

	r.PUT("/products/:id", requireToken, func(c *gin.Context) {
		var req ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := svc.Update(c.Param("id"), req.Name, req.Description, req.Price); err != nil {
			notFound(c)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.DELETE("/products/:id", requireToken, func(c *gin.Context) {
		if err := svc.Delete(c.Param("id")); err != nil {
			notFound(c)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func badRequest(c *gin.Context, err error) {
	problem.Problem{
		Title:  "Bad request",
		Detail: err.Error(),
		Status: http.StatusBadRequest,
		Type:   "ValidationError",
	}.Abort(c, false)
}

func notFound(c *gin.Context) {
	problem.Problem{
		Title:  "Not found",
		Detail: "product not found",
		Status: http.StatusNotFound,
		Type:   "NotFound",
	}.Abort(c, false)
}
