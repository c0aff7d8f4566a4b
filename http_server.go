package signalplot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/sirupsen/logrus"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const clientBufferSize = 16

// reloadScript is injected into the served page so the browser refreshes
// itself when watch mode rebuilds the figure.
const reloadScript = `<script>
(function () {
  function connect() {
    var scheme = location.protocol === "https:" ? "wss" : "ws";
    var ws = new WebSocket(scheme + "://" + location.host + "/ws");
    ws.onmessage = function () { location.reload(); };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>`

// HttpServer is the local viewer: it serves the rendered figure on /, the
// figure metadata on /metadata, and pushes reload events on /ws.
type HttpServer struct {
	addr        string
	broadcaster *ReloadBroadcaster
	mux         *http.ServeMux
	logger      logrus.FieldLogger

	mutex    sync.RWMutex
	page     []byte
	metadata Metadata
}

func NewHttpServer(addr string, broadcaster *ReloadBroadcaster) *HttpServer {
	s := &HttpServer{
		addr:        addr,
		broadcaster: broadcaster,
		mux:         http.NewServeMux(),
		logger:      logrus.WithField("tag", "HttpServer"),
	}

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/metadata", s.handleMetadata)

	return s
}

// SetFigure renders the figure and swaps it in as the served page.
func (s *HttpServer) SetFigure(figure *charts.Line, metadata Metadata) error {
	page, err := RenderHTML(figure)
	if err != nil {
		return err
	}
	page = injectReloadScript(page)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.page = page
	s.metadata = metadata
	return nil
}

func injectReloadScript(page []byte) []byte {
	closing := []byte("</body>")
	i := bytes.LastIndex(page, closing)
	if i < 0 {
		return append(page, reloadScript...)
	}

	out := make([]byte, 0, len(page)+len(reloadScript))
	out = append(out, page[:i]...)
	out = append(out, reloadScript...)
	out = append(out, page[i:]...)
	return out
}

func (s *HttpServer) handleIndex(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}

	s.mutex.RLock()
	page := s.page
	s.mutex.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *HttpServer) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	c, err := websocket.Accept(w, req, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.WithError(err).Warn("failed to accept new websocket connection")
		return
	}

	ctx := req.Context()
	ctx = c.CloseRead(ctx) // This viewer only pushes; nothing is read back.

	channel := make(chan ReloadEvent, clientBufferSize)
	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			select {
			case event, open := <-channel:
				if !open {
					s.logger.Warn("reload channel closed, closing websocket")
					c.Close(websocket.StatusNormalClosure, "channel closed")
					return
				}

				if err := wsjson.Write(ctx, c, event); err != nil {
					s.logger.Warn("websocket write failed and closed")
					return
				}
			case <-ctx.Done():
				s.logger.Debug("client closed connection or context canceled")
				c.Close(websocket.StatusNormalClosure, "")
				return
			}
		}
	}()

	s.broadcaster.RegisterChannel(channel)

	wg.Wait()
	s.broadcaster.DeregisterChannel(channel)
	close(channel)
}

func (s *HttpServer) handleMetadata(w http.ResponseWriter, req *http.Request) {
	s.mutex.RLock()
	metadata := s.metadata
	s.mutex.RUnlock()

	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(metadata); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
	}
}

// URL returns the address clients should open.
func (s *HttpServer) URL() string {
	return fmt.Sprintf("http://%s", s.addr)
}

// Run serves until the listener fails.
func (s *HttpServer) Run() error {
	s.logger.Infof("serving figure at %s", s.URL())
	return http.ListenAndServe(s.addr, s.mux)
}
