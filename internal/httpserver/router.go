package httpserver

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"perfumeshop/internal/domain"
	productrepo "perfumeshop/internal/repository/product"
	"perfumeshop/internal/realtime"
	catalogsvc "perfumeshop/internal/service/catalog"
	"perfumeshop/web"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogService interface {
	List(ctx context.Context, q catalogsvc.ListQuery) (*domain.CatalogPage, error)
}

type productService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productrepo.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in productrepo.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type cartService interface {
	Create(ctx context.Context) (*domain.Cart, error)
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	AddProduct(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	SetQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	DecrementOne(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	RemoveEntirely(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	ReplaceAll(ctx context.Context, cartID string, items []domain.CartItem) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) (*domain.Cart, error)
}

// Deps carries the services the router wires into handlers.
type Deps struct {
	CatalogSvc  catalogService
	ProductSvc  productService
	CartSvc     cartService
	Hub         *realtime.Hub
	CORSOrigins []string
}

// buildRouter wires the JSON API, the storefront views and the websocket
// endpoint.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, sessions *scs.SessionManager, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(deps.CORSOrigins))

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(web.Templates(), "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(web.Static()))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		products := api.Group("/products")
		products.GET("", listProductsHandler(deps.CatalogSvc))
		products.GET("/:pid", getProductHandler(deps.ProductSvc))
		products.POST("", createProductHandler(deps.ProductSvc))
		products.PUT("/:pid", updateProductHandler(deps.ProductSvc))
		products.DELETE("/:pid", deleteProductHandler(deps.ProductSvc))

		carts := api.Group("/carts")
		carts.POST("", createCartHandler(deps.CartSvc))
		carts.GET("/:cid", getCartHandler(deps.CartSvc))
		carts.PUT("/:cid", replaceCartHandler(deps.CartSvc))
		carts.DELETE("/:cid", clearCartHandler(deps.CartSvc))
		carts.POST("/:cid/products/:pid", addToCartHandler(deps.CartSvc))
		carts.PUT("/:cid/products/:pid", setQuantityHandler(deps.CartSvc))
		carts.DELETE("/:cid/products/:pid", decrementHandler(deps.CartSvc))

		// Storefront form posts: remove-entirely and clear, both redirecting
		// back to the cart view.
		carts.POST("/:cid/products/:pid/delete", removeEntirelyViewHandler(deps.CartSvc))
		carts.POST("/:cid/clear", clearCartViewHandler(deps.CartSvc))
	}

	router.GET("/", homeViewHandler(deps.ProductSvc))
	router.GET("/realtimeproducts", realTimeViewHandler(deps.ProductSvc))
	router.GET("/products", productsViewHandler(deps.CatalogSvc, deps.CartSvc, sessions))
	router.GET("/products/:pid", productDetailViewHandler(deps.ProductSvc, deps.CartSvc, sessions))
	router.GET("/carts/:cid", cartViewHandler(deps.CartSvc))

	if deps.Hub != nil {
		router.GET("/ws", wsHandler(deps.Hub, deps.ProductSvc, logger))
	}

	return router, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"price": func(cents int64) string {
			return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
		},
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
