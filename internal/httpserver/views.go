package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"perfumeshop/internal/domain"
	catalogsvc "perfumeshop/internal/service/catalog"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

const sessionCartKey = "cartID"

func writeViewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.String(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		c.String(http.StatusBadRequest, err.Error())
	default:
		c.String(http.StatusInternalServerError, err.Error())
	}
}

func homeViewHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			writeViewError(c, err)
			return
		}
		c.HTML(http.StatusOK, "home.html", gin.H{
			"Products": products,
		})
	}
}

func realTimeViewHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			writeViewError(c, err)
			return
		}
		c.HTML(http.StatusOK, "realtime_products.html", gin.H{
			"Products": products,
		})
	}
}

func productsViewHandler(catalog catalogService, carts cartService, sessions *scs.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		page, _ := strconv.Atoi(c.Query("page"))
		query := c.Query("query")
		sort := c.Query("sort")

		result, err := catalog.List(c.Request.Context(), catalogsvc.ListQuery{
			Query: query,
			Sort:  sort,
			Page:  page,
			Limit: limit,
		})
		if err != nil {
			writeViewError(c, err)
			return
		}

		cartID, err := sessionCartID(c, carts, sessions)
		if err != nil {
			writeViewError(c, err)
			return
		}

		c.HTML(http.StatusOK, "products.html", gin.H{
			"Products":    result.Products,
			"Page":        result.Page,
			"TotalPages":  result.TotalPages,
			"HasPrevPage": result.HasPrevPage,
			"HasNextPage": result.HasNextPage,
			"PrevPage":    result.PrevPage,
			"NextPage":    result.NextPage,
			"Query":       query,
			"Sort":        sort,
			"Limit":       result.Limit,
			"CartID":      cartID,
		})
	}
}

func productDetailViewHandler(products productService, carts cartService, sessions *scs.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.Get(c.Request.Context(), c.Param("pid"))
		if err != nil {
			writeViewError(c, err)
			return
		}
		cartID, err := sessionCartID(c, carts, sessions)
		if err != nil {
			writeViewError(c, err)
			return
		}
		c.HTML(http.StatusOK, "product_detail.html", gin.H{
			"Product": product,
			"CartID":  cartID,
		})
	}
}

func cartViewHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), c.Param("cid"))
		if err != nil {
			writeViewError(c, err)
			return
		}
		c.HTML(http.StatusOK, "cart.html", gin.H{
			"Cart": cart,
		})
	}
}

// sessionCartID returns the browser session's cart id, creating a cart on
// the first storefront visit. A stale id pointing at a wiped store is
// replaced the same way.
func sessionCartID(c *gin.Context, carts cartService, sessions *scs.SessionManager) (string, error) {
	if sessions == nil {
		return "", nil
	}
	ctx := c.Request.Context()
	if id := sessions.GetString(ctx, sessionCartKey); id != "" {
		if _, err := carts.Get(ctx, id); err == nil {
			return id, nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
	}
	cart, err := carts.Create(ctx)
	if err != nil {
		return "", err
	}
	sessions.Put(ctx, sessionCartKey, cart.ID)
	return cart.ID, nil
}
