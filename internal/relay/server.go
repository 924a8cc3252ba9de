// Package relay exposes the assistant to a host over a websocket. Each
// connection identifies itself as one observer with a hello frame and then
// streams messages and attack checks.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"rulesaide/internal/assist"
	"rulesaide/internal/envelope"
	"rulesaide/internal/reminder"
)

const (
	handshakeTimeout = 5 * time.Second
	readTimeout      = 60 * time.Second
	pingInterval     = 25 * time.Second
	writeTimeout     = 5 * time.Second
	outQueue         = 16
)

type Server struct {
	assistant *assist.Assistant
	log       *log.Logger

	upgrader websocket.Upgrader

	// pingInterval must stay below readTimeout so idle observers are kept
	// alive by their pongs.
	readTimeout  time.Duration
	pingInterval time.Duration
}

func NewServer(a *assist.Assistant, logger *log.Logger) *Server {
	return &Server{
		assistant: a,
		log:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		readTimeout:  readTimeout,
		pingInterval: pingInterval,
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Printf("relay: upgrade: %v", err)
			return
		}
		defer conn.Close()

		observer := s.handshake(conn)
		if observer == "" {
			return
		}
		s.log.Printf("relay: observer %s connected", observer)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		})

		out := make(chan []byte, outQueue)
		done := make(chan struct{})
		go func() {
			defer close(done)
			ticker := time.NewTicker(s.pingInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
						cancel()
						return
					}
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			reply := s.dispatch(ctx, observer, msg)
			if reply == nil {
				continue
			}
			b, err := json.Marshal(reply)
			if err != nil {
				s.log.Printf("relay: encode reply: %v", err)
				continue
			}
			select {
			case out <- b:
			case <-ctx.Done():
			}
		}

		<-done
		s.log.Printf("relay: observer %s disconnected", observer)
	}
}

func (s *Server) handshake(conn *websocket.Conn) string {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return ""
	}

	v, err := envelope.Decode(msg)
	hello, ok := v.(*envelope.Hello)
	if err != nil || !ok {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected hello"), time.Now().Add(time.Second))
		return ""
	}

	if err := writeJSON(conn, envelope.Welcome{Type: envelope.TypeWelcome, Observer: hello.Observer}); err != nil {
		return ""
	}
	return hello.Observer
}

// dispatch runs one inbound frame through the assistant. A nil reply means
// nothing should be sent back.
func (s *Server) dispatch(ctx context.Context, observer string, msg []byte) any {
	v, err := envelope.Decode(msg)
	if err != nil {
		return envelope.NewError(err)
	}

	switch frame := v.(type) {
	case *envelope.Message:
		reaction, err := s.assistant.HandleMessage(ctx, frame.ToAssist(observer))
		if err != nil {
			s.log.Printf("relay: message %s: %v", frame.ID, err)
			return envelope.NewError(err)
		}
		if reaction == nil {
			return nil
		}
		return envelope.ReactionReply{Type: envelope.TypeReaction, Reaction: reaction}
	case *envelope.Attack:
		outcome, err := s.assistant.CheckAttack(ctx, frame.ToAssist())
		if err != nil {
			return envelope.NewError(err)
		}
		reply := envelope.OutcomeReply{Type: envelope.TypeOutcome, Outcome: outcome}
		if !outcome.Allowed {
			reply.Reminders = s.assistant.RemindersFor(reminder.TriggerRangeViolation)
		}
		return reply
	case *envelope.Encumbrance:
		result, err := s.assistant.UpdateEncumbrance(ctx, frame.Actor, frame.Items, frame.Capacity)
		if err != nil {
			return envelope.NewError(err)
		}
		return envelope.EncumbranceReply{Type: envelope.TypeEncumbrance, Result: result}
	case *envelope.Hello:
		return envelope.NewError(errors.New("already identified"))
	default:
		return envelope.NewError(fmt.Errorf("unsupported frame %T", v))
	}
}

// ListenAndServe serves the relay on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.Handler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok\n"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Printf("relay: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
