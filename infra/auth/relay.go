package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CrestNiraj12/igreply/domain"
)

// Relay is the loopback endpoint the OAuth callback page posts its
// cross-window message to. It only lives for the duration of one handshake.
type Relay struct {
	srv *http.Server
	ln  net.Listener
}

// StartRelay listens on 127.0.0.1:port and forwards every well-formed
// message to deliver. Port 0 picks a free port.
func StartRelay(port int, deliver func(domain.AuthMessage)) (*Relay, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("oauth relay listen: %w", err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/message", func(w http.ResponseWriter, req *http.Request) {
		allowCrossOrigin(w)
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodOptions)
	r.HandleFunc("/message", func(w http.ResponseWriter, req *http.Request) {
		allowCrossOrigin(w)
		var msg domain.AuthMessage
		if err := json.NewDecoder(io.LimitReader(req.Body, 8<<10)).Decode(&msg); err != nil {
			http.Error(w, "invalid message", http.StatusBadRequest)
			return
		}
		relayMessage(w, msg, deliver)
	}).Methods(http.MethodPost)
	r.HandleFunc("/message", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		relayMessage(w, domain.AuthMessage{
			Type:      q.Get("type"),
			AccountID: q.Get("accountId"),
			Username:  q.Get("username"),
			Error:     q.Get("error"),
		}, deliver)
	}).Methods(http.MethodGet)

	relay := &Relay{srv: &http.Server{Handler: r}, ln: ln}
	go func() {
		if err := relay.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("oauth relay: %v", err)
		}
	}()
	return relay, nil
}

// URL returns the message endpoint the callback page should target.
func (r *Relay) URL() string {
	return "http://" + r.ln.Addr().String() + "/message"
}

// Shutdown stops the relay. Safe to call more than once.
func (r *Relay) Shutdown() {
	_ = r.srv.Shutdown(context.Background())
}

func relayMessage(w http.ResponseWriter, msg domain.AuthMessage, deliver func(domain.AuthMessage)) {
	if !msg.Terminal() {
		// Unrelated traffic is ignored, like any other window message.
		w.WriteHeader(http.StatusAccepted)
		return
	}
	deliver(msg)
	if msg.Type == domain.AuthErrorType {
		_, _ = io.WriteString(w, domain.AppTitle+" login failed. You can close this window.")
		return
	}
	_, _ = io.WriteString(w, domain.AppTitle+" login complete. You can return to the terminal.")
}

func allowCrossOrigin(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
