package adapthttp

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin browser clients only carry the session cookie
		// anyway; the socket itself is open like the chat page.
		return true
	},
}

type chatInbound struct {
	Message string `json:"message"`
}

type chatError struct {
	Error string `json:"error"`
}

func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "chat.html", authViewModel{Notice: s.popFlash(w, r)})
}

// handleChatSocket upgrades the connection and joins it to the broadcast
// channel. The connection itself is anonymous; sender identity is resolved
// from the session cookie each time a message arrives, so a session that
// expires mid-connection turns into per-message errors rather than a drop
// of the whole socket.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("chat upgrade: %v", err)
		return
	}

	var token string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	sub := s.chat.Subscribe()
	defer s.chat.Unsubscribe(sub)
	defer conn.Close()

	// The broadcast pump and the read loop both write to the socket;
	// gorilla allows only one concurrent writer.
	var writeMu sync.Mutex
	write := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub {
			if err := write(msg); err != nil {
				return
			}
		}
	}()

	for {
		var in chatInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("chat read: %v", err)
			}
			break
		}

		acct, err := s.auth.ValidateSession(r.Context(), token)
		if err != nil {
			_ = write(chatError{Error: "not logged in"})
			continue
		}

		if err := s.chat.Broadcast(r.Context(), acct.ID, in.Message); err != nil {
			_ = write(chatError{Error: "message not delivered"})
		}
	}

	s.chat.Unsubscribe(sub)
	<-done
}
