package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"perfumeshop/internal/domain"
	productrepo "perfumeshop/internal/repository/product"
	catalogsvc "perfumeshop/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

// listProductsResponse mirrors the paginated list contract: payload plus
// pagination metadata and page links.
type listProductsResponse struct {
	Status      string           `json:"status"`
	Payload     []domain.Product `json:"payload"`
	TotalPages  int              `json:"totalPages"`
	PrevPage    *int             `json:"prevPage"`
	NextPage    *int             `json:"nextPage"`
	Page        int              `json:"page"`
	HasPrevPage bool             `json:"hasPrevPage"`
	HasNextPage bool             `json:"hasNextPage"`
	PrevLink    *string          `json:"prevLink"`
	NextLink    *string          `json:"nextLink"`
}

func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Non-numeric limit/page fall back to the engine defaults.
		limit, _ := strconv.Atoi(c.Query("limit"))
		page, _ := strconv.Atoi(c.Query("page"))

		result, err := svc.List(c.Request.Context(), catalogsvc.ListQuery{
			Query: c.Query("query"),
			Sort:  c.Query("sort"),
			Page:  page,
			Limit: limit,
		})
		if err != nil {
			writeError(c, err)
			return
		}

		resp := listProductsResponse{
			Status:      "success",
			Payload:     result.Products,
			TotalPages:  result.TotalPages,
			PrevPage:    result.PrevPage,
			NextPage:    result.NextPage,
			Page:        result.Page,
			HasPrevPage: result.HasPrevPage,
			HasNextPage: result.HasNextPage,
		}
		if result.PrevPage != nil {
			link := fmt.Sprintf("/api/products?page=%d", *result.PrevPage)
			resp.PrevLink = &link
		}
		if result.NextPage != nil {
			link := fmt.Sprintf("/api/products?page=%d", *result.NextPage)
			resp.NextLink = &link
		}
		c.JSON(http.StatusOK, resp)
	}
}

func getProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("pid"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type createProductRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	Code        string                 `json:"code" binding:"required"`
	Category    string                 `json:"category" binding:"required"`
	PriceCents  int64                  `json:"priceCents" binding:"gte=0"`
	Status      *bool                  `json:"status"`
	Stock       int                    `json:"stock" binding:"gte=0"`
	Attributes  map[string]interface{} `json:"attributes"`
}

func createProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		// Products are available unless the caller says otherwise.
		status := true
		if req.Status != nil {
			status = *req.Status
		}
		created, err := svc.Create(c.Request.Context(), productrepo.CreateInput{
			Title:       req.Title,
			Description: req.Description,
			Code:        req.Code,
			Category:    req.Category,
			PriceCents:  req.PriceCents,
			Status:      status,
			Stock:       req.Stock,
			Attributes:  req.Attributes,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": "product created",
			"payload": created,
		})
	}
}

type updateProductRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Code        *string                `json:"code"`
	Category    *string                `json:"category"`
	PriceCents  *int64                 `json:"priceCents"`
	Status      *bool                  `json:"status"`
	Stock       *int                   `json:"stock"`
	Attributes  map[string]interface{} `json:"attributes"`
}

func updateProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("pid"), productrepo.UpdateInput{
			Title:       req.Title,
			Description: req.Description,
			Code:        req.Code,
			Category:    req.Category,
			PriceCents:  req.PriceCents,
			Status:      req.Status,
			Stock:       req.Stock,
			Attributes:  req.Attributes,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "product updated",
			"payload": updated,
		})
	}
}

func deleteProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("pid")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "product deleted",
		})
	}
}
