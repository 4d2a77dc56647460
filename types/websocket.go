package types

const (
	TypeWebsocketPing   = "ping"
	TypeWebsocketPong   = "pong"
	TypeWebsocketAsk    = "ask"
	TypeWebsocketStatus = "status"
	TypeWebsocketAnswer = "answer"
	TypeWebsocketError  = "error"
)

// Pipeline phases reported while an ask request runs.
const (
	PhaseRetrieving = "retrieving"
	PhaseScoring    = "scoring"
	PhaseGenerating = "generating"
	PhaseParsing    = "parsing"
	PhaseLogging    = "logging"
	PhaseDone       = "done"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketStatusPayload struct {
	Phase string `json:"phase"`
}

type WebSocketErrorPayload struct {
	Message string `json:"message"`
}
