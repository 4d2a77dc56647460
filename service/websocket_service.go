package service

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tieubaoca/docqa-be/types"
)

// WebSocketService answers questions over a websocket connection, emitting a
// status event for each pipeline phase before the final answer.
type WebSocketService struct {
	answer   *AnswerService
	upgrader websocket.Upgrader
}

func NewWebSocketService(answer *AnswerService) *WebSocketService {
	return &WebSocketService{
		answer: answer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketAsk:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			var ask types.AskRequest
			if err := json.Unmarshal(payloadBytes, &ask); err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}

			resp, err := s.answer.AskWithProgress(r.Context(), ask, func(phase string) {
				status := types.WebSocketResponse{
					Type:    types.TypeWebsocketStatus,
					Payload: types.WebSocketStatusPayload{Phase: phase},
				}
				if err := conn.WriteJSON(status); err != nil {
					log.Println("Write error:", err)
				}
			})
			if err != nil {
				if errors.Is(err, types.ErrValidation) {
					s.writeError(conn, err.Error())
				} else {
					log.Println("Ask error:", err)
					s.writeError(conn, "failed to answer question")
				}
				continue
			}
			answer := types.WebSocketResponse{
				Type:    types.TypeWebsocketAnswer,
				Payload: resp,
			}
			if err := conn.WriteJSON(answer); err != nil {
				log.Println("Write error:", err)
			}
		case types.TypeWebsocketPing:
			pong := types.WebSocketResponse{
				Type:    types.TypeWebsocketPong,
				Payload: nil,
			}
			if err := conn.WriteJSON(pong); err != nil {
				log.Println("Write error:", err)
			}
		default:
			log.Println("Invalid message type:", req.Type)
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	res := types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketErrorPayload{Message: message},
	}
	if err := conn.WriteJSON(res); err != nil {
		log.Println("Write error:", err)
	}
}
