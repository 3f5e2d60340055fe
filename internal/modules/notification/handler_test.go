package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_PushesEventsToConnectedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	r := gin.New()
	g := r.Group("/api/v1")
	g.Use(func(c *gin.Context) {
		c.Set("user_id", c.Query("as"))
		c.Next()
	})
	NewHandler(hub, nil, nil).RegisterRoutes(g)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws?as=seeker-profile"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.IsOnline("seeker-profile") }, time.Second, 10*time.Millisecond)

	require.True(t, hub.SendToUser("seeker-profile", Event{Type: TypeBookingConfirmed, BookingID: "booking-1"}))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, TypeBookingConfirmed, got.Type)
	assert.Equal(t, "booking-1", got.BookingID)

	_ = conn.Close()
	assert.Eventually(t, func() bool { return !hub.IsOnline("seeker-profile") }, time.Second, 10*time.Millisecond)
}

func TestHandler_RejectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewHub(), nil, nil).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_OriginAllowList(t *testing.T) {
	h := NewHandler(NewHub(), []string{"https://app.example"}, nil)

	ok := httptest.NewRequest(http.MethodGet, "/ws", nil)
	ok.Header.Set("Origin", "https://app.example")
	assert.True(t, h.upgrader.CheckOrigin(ok))

	bad := httptest.NewRequest(http.MethodGet, "/ws", nil)
	bad.Header.Set("Origin", "https://evil.example")
	assert.False(t, h.upgrader.CheckOrigin(bad))
}
