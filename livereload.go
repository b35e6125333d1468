package inkpress

import (
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Dev-mode live reload: a watcher on the content directory re-imports posts
// after changes settle, then a websocket hub tells connected browsers to
// refresh. None of this runs unless the server was started with
// WithLiveReload.

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local dev server only; origin checks would reject same-host reloads
	// behind some proxies and buy nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reloadHub maintains the set of connected browsers and broadcasts reload
// notifications to them.
type reloadHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newReloadHub() *reloadHub {
	return &reloadHub{clients: make(map[*websocket.Conn]bool)}
}

func (h *reloadHub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *reloadHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *reloadHub) broadcast(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
}

func (a *App) handleLiveReload(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	a.hub.register(conn)
	defer a.hub.unregister(conn)

	// The browser never sends messages; reading just detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// watchContent watches dir and, after events settle for a debounce interval,
// runs the rebuild callback and notifies browsers. Runs until the watcher
// fails or the process exits.
func (a *App) watchContent(dir string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		a.Echo.Logger.Errorf("livereload: create watcher: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		a.Echo.Logger.Errorf("livereload: watch %s: %v", dir, err)
		return
	}

	// Editors fire bursts of writes; rebuild once per burst.
	const debounce = 250 * time.Millisecond
	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if err := a.rebuild(a); err != nil {
					a.Echo.Logger.Errorf("livereload: rebuild: %v", err)
					return
				}
				a.hub.broadcast("reload")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			a.Echo.Logger.Errorf("livereload: watcher: %v", err)
		}
	}
}
