package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"backoffice/internal/middleware"
	"backoffice/internal/service/search"
	pkgAuth "backoffice/pkg/auth"
	"backoffice/pkg/logger"
	"backoffice/pkg/requestid"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	typeSearch = "search"
	typeResult = "result"
	typeError  = "error"
)

type Handler struct {
	searchSvc *search.Service
}

func NewHandler(searchSvc *search.Service) *Handler {
	return &Handler{searchSvc: searchSvc}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // operator UI is served from another origin
	},
}

type message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// HandleUserSearch upgrades to a live search socket. Clients send
// {"type":"search","data":{"query":"..."}} on every keystroke and receive one
// {"type":"result"} per settled query.
func (h *Handler) HandleUserSearch(c *gin.Context) {
	token, err := getTokenFromRequest(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	claims, err := pkgAuth.ParseOperatorToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	operatorID := claims.SubjectID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	reqID := requestid.FromContext(c.Request.Context())
	logger.With(reqID).Info("New user search connection", zap.Int64("operatorID", operatorID))

	ctx, cancel := context.WithCancel(pkgAuth.WithOperator(context.WithoutCancel(c.Request.Context()), operatorID))
	defer cancel()

	cl := newClient(conn, operatorID, reqID)
	cl.session = h.searchSvc.NewSession(ctx, func(r search.Result) {
		cl.send(message{Type: typeResult, Data: r})
	})
	cl.run()
}

// getTokenFromRequest reads the token query param first, then a bearer
// Authorization header.
func getTokenFromRequest(c *gin.Context) (string, error) {
	if token := strings.TrimSpace(c.Query("token")); token != "" {
		return token, nil
	}
	token, err := middleware.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", errors.New("missing token")
	}
	return token, nil
}

type client struct {
	conn       *websocket.Conn
	operatorID int64
	log        *zap.Logger
	session    *search.Session
	outbound   chan message
	done       chan struct{}
	pingEvery  time.Duration
}

func newClient(conn *websocket.Conn, operatorID int64, reqID string) *client {
	conn.SetReadLimit(4 << 10)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	return &client{
		conn:       conn,
		operatorID: operatorID,
		log:        logger.With(reqID).With(zap.Int64("operatorID", operatorID)),
		outbound:   make(chan message, 8),
		done:       make(chan struct{}),
		pingEvery:  25 * time.Second,
	}
}

func (c *client) run() {
	go c.writePump()
	c.readPump()
}

// send queues msg for the write pump. It never blocks once the socket is gone.
func (c *client) send(msg message) {
	select {
	case c.outbound <- msg:
	case <-c.done:
	}
}

func (c *client) readPump() {
	defer func() {
		close(c.done)
		c.session.Close()
		c.conn.Close()
	}()

	for {
		mt, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.log.Info("WS read error", zap.Error(err))
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		var incoming struct {
			Type string `json:"type"`
			Data struct {
				Query string `json:"query"`
			} `json:"data"`
		}
		if err := json.Unmarshal(raw, &incoming); err != nil {
			c.send(message{Type: typeError, Data: gin.H{"message": "invalid payload"}})
			continue
		}
		switch incoming.Type {
		case typeSearch:
			c.session.Input(incoming.Data.Query)
		case "":
		default:
			c.send(message{Type: typeError, Data: gin.H{"message": "unknown message type " + incoming.Type}})
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.outbound:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Info("WS write error", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
