package httpserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	productrepo "perfumeshop/internal/repository/product"
	"perfumeshop/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The live products page is same-host; CORS policy is handled at the
	// HTTP layer for the JSON API.
	CheckOrigin: func(*http.Request) bool { return true },
}

type wsProductPayload struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Code        string                 `json:"code"`
	Category    string                 `json:"category"`
	PriceCents  int64                  `json:"priceCents"`
	Status      *bool                  `json:"status"`
	Stock       int                    `json:"stock"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// wsHandler upgrades the connection, delivers the current snapshot before
// any incremental push, and treats inbound create/delete events exactly
// like their JSON API counterparts (same service calls, same broadcast).
func wsHandler(hub *realtime.Hub, products productService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Printf("ws: upgrade failed: %v", err)
			return
		}

		client := realtime.NewClient(hub, conn, logger)

		// Queue the initial snapshot before registering so the viewer never
		// sees an incremental push first.
		snapshot, err := products.List(c.Request.Context())
		if err != nil {
			logger.Printf("ws: initial snapshot: %v", err)
			conn.Close()
			return
		}
		if payload, err := realtime.EncodeSnapshot(snapshot); err == nil {
			client.Send(payload)
		}
		hub.Register(client)

		ctx := c.Request.Context()
		go client.WritePump()
		client.ReadPump(func(event realtime.InboundEvent) {
			switch event.Event {
			case "createProduct":
				var req wsProductPayload
				if err := json.Unmarshal(event.Data, &req); err != nil {
					logger.Printf("ws: client %s bad createProduct payload: %v", client.ID, err)
					return
				}
				status := true
				if req.Status != nil {
					status = *req.Status
				}
				if _, err := products.Create(ctx, productrepo.CreateInput{
					Title:       req.Title,
					Description: req.Description,
					Code:        req.Code,
					Category:    req.Category,
					PriceCents:  req.PriceCents,
					Status:      status,
					Stock:       req.Stock,
					Attributes:  req.Attributes,
				}); err != nil {
					logger.Printf("ws: client %s createProduct: %v", client.ID, err)
				}
			case "deleteProduct":
				var id string
				if err := json.Unmarshal(event.Data, &id); err != nil {
					// Tolerate bare ids sent without JSON quoting.
					id = strings.Trim(string(event.Data), `"`)
				}
				if err := products.Delete(ctx, id); err != nil {
					logger.Printf("ws: client %s deleteProduct %s: %v", client.ID, id, err)
				}
			default:
				logger.Printf("ws: client %s unknown event %q", client.ID, event.Event)
			}
		})
	}
}
