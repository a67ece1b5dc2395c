package messages

import (
	"github.com/parlorgames/parlor/pkg/game"
)

// MessageType describes the kind of payload a Message envelope holds.
type MessageType uint8

const (
	MessageTypeUnspecified MessageType = iota
	MessageTypeSessionInit
	MessageTypeTurnData
	MessageTypeMoveBroadcast
	MessageTypeSessionError
	MessageTypeGameState
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeSessionInit:
		return "SessionInit"
	case MessageTypeTurnData:
		return "TurnData"
	case MessageTypeMoveBroadcast:
		return "MoveBroadcast"
	case MessageTypeSessionError:
		return "SessionError"
	case MessageTypeGameState:
		return "GameState"
	default:
		return "Unspecified"
	}
}

// Message is the envelope carried in every websocket frame.
type Message struct {
	Type    MessageType
	Payload []byte
}

// SessionInit opens a game session stream. It must be the first
// message a client sends.
type SessionInit struct {
	GameType game.Type
	GameID   uint64
	PlayerID uint64
}

// MoveBroadcast echoes an applied move to every open session stream
// of the game.
type MoveBroadcast struct {
	Player   game.PlayerID
	TurnData []byte
}

// SessionError reports a failure to the offending client only.
type SessionError struct {
	Code    uint32
	Message string
}

// GameStateUpdate is the reply frame of the turn stream.
type GameStateUpdate struct {
	Kind   int8
	Player game.PlayerID
}
