package main

import (
	_ "embed"
	"github.com/allape/opentouch/config"
	"github.com/gorilla/websocket"
	"net/http"
	"os"
	"sync"
	"time"
)

const MonitorHTMLPath = "./ui/monitor.html"

// MonitorWriteTimeout bounds how long one client write may stall the
// caller before the client is dropped.
const MonitorWriteTimeout = 5 * time.Second

//go:embed ui/monitor.html
var MonitorHTML string

// MonitorHub fans every emitted line out to the attached websocket
// clients, one text message per line. Writes carry a deadline and a
// client that fails or stalls one is dropped, so the bridge waits on the
// monitor for MonitorWriteTimeout at most.
type MonitorHub struct {
	locker  sync.Locker
	clients map[*websocket.Conn]struct{}

	upgrader websocket.Upgrader
}

func NewMonitorHub() *MonitorHub {
	return &MonitorHub{
		locker:  &sync.Mutex{},
		clients: map[*websocket.Conn]struct{}{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *MonitorHub) Broadcast(line string) {
	h.locker.Lock()
	defer h.locker.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(MonitorWriteTimeout))
		err := conn.WriteMessage(websocket.TextMessage, []byte(line))
		if err != nil {
			log.Println("monitor write:", err)
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

func (h *MonitorHub) Count() int {
	h.locker.Lock()
	defer h.locker.Unlock()
	return len(h.clients)
}

func (h *MonitorHub) Close() error {
	h.locker.Lock()
	defer h.locker.Unlock()

	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}

	return nil
}

// ServeWS upgrades the request and keeps the client registered until it
// goes away. The monitor only pushes, but the read loop is still required
// to process control frames.
func (h *MonitorHub) ServeWS(writer http.ResponseWriter, request *http.Request) {
	conn, err := h.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	h.locker.Lock()
	h.clients[conn] = struct{}{}
	h.locker.Unlock()

	defer func() {
		h.locker.Lock()
		delete(h.clients, conn)
		h.locker.Unlock()
		_ = conn.Close()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			return
		}
	}
}

func ServeMonitorPage(writer http.ResponseWriter, request *http.Request) {
	if stat, err := os.Stat(MonitorHTMLPath); err == nil && !stat.IsDir() {
		http.ServeFile(writer, request, MonitorHTMLPath)
	} else {
		writer.Header().Add("Content-Type", "text/html; charset=utf-8")
		writer.WriteHeader(http.StatusOK)
		_, err := writer.Write([]byte(MonitorHTML))
		if err != nil {
			log.Println("response monitor.html error:", err)
		}
	}
}

// SetupMonitor serves the monitor page and websocket when an address is
// configured, nil otherwise.
func SetupMonitor(conf config.Config) *MonitorHub {
	if conf.Monitor.Addr == "" {
		return nil
	}

	hub := NewMonitorHub()

	mux := http.NewServeMux()
	mux.HandleFunc(conf.Monitor.Path, hub.ServeWS)
	mux.HandleFunc("/", ServeMonitorPage)

	go func() {
		log.Println("monitor listening on", conf.Monitor.Addr)
		err := http.ListenAndServe(conf.Monitor.Addr, mux)
		if err != nil {
			log.Println("monitor server:", err)
		}
	}()

	return hub
}
