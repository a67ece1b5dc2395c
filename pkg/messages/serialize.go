package messages

import (
	"bytes"
	"fmt"
	"io"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"

	"github.com/parlorgames/parlor/flatbuffers/wire"
	"github.com/parlorgames/parlor/pkg/game"
)

// SerializeMessage encodes a message envelope as a zstd-compressed
// flatbuffer frame.
func SerializeMessage(m *Message) ([]byte, error) {
	b, err := SerializeMessageFlatbuffer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress message: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

// DeserializeMessage decodes a zstd-compressed flatbuffer frame.
func DeserializeMessage(data []byte) (*Message, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()
	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

func SerializeMessageFlatbuffer(m *Message) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)

	payload := builder.CreateByteVector(m.Payload)

	wire.MessageStart(builder)
	wire.MessageAddKind(builder, wire.MessageKind(m.Type))
	wire.MessageAddPayload(builder, payload)
	builder.Finish(wire.MessageEnd(builder))

	return builder.FinishedBytes(), nil
}

func DeserializeMessageFlatbuffer(b []byte) (m *Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("malformed message frame: %v", r)
		}
	}()
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("message frame too short")
	}
	messageFlatbuffer := wire.GetRootAsMessage(b, 0)
	return &Message{
		Type:    MessageType(messageFlatbuffer.Kind()),
		Payload: messageFlatbuffer.PayloadBytes(),
	}, nil
}

func SerializeSessionInit(init *SessionInit) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)
	wire.SessionInitStart(builder)
	wire.SessionInitAddGameType(builder, gameTypeToWire(init.GameType))
	wire.SessionInitAddGameId(builder, init.GameID)
	wire.SessionInitAddPlayerId(builder, init.PlayerID)
	builder.Finish(wire.SessionInitEnd(builder))
	return builder.FinishedBytes(), nil
}

func DeserializeSessionInit(b []byte) (init *SessionInit, err error) {
	defer func() {
		if r := recover(); r != nil {
			init, err = nil, fmt.Errorf("malformed session init payload: %v", r)
		}
	}()
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("session init payload too short")
	}
	fb := wire.GetRootAsSessionInit(b, 0)
	return &SessionInit{
		GameType: gameTypeFromWire(fb.GameType()),
		GameID:   fb.GameId(),
		PlayerID: fb.PlayerId(),
	}, nil
}

func SerializeMoveBroadcast(broadcast *MoveBroadcast) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)
	turnData := builder.CreateByteVector(broadcast.TurnData)
	wire.MoveBroadcastStart(builder)
	wire.MoveBroadcastAddPlayer(builder, uint32(broadcast.Player))
	wire.MoveBroadcastAddTurnData(builder, turnData)
	builder.Finish(wire.MoveBroadcastEnd(builder))
	return builder.FinishedBytes(), nil
}

func DeserializeMoveBroadcast(b []byte) (broadcast *MoveBroadcast, err error) {
	defer func() {
		if r := recover(); r != nil {
			broadcast, err = nil, fmt.Errorf("malformed move broadcast payload: %v", r)
		}
	}()
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("move broadcast payload too short")
	}
	fb := wire.GetRootAsMoveBroadcast(b, 0)
	return &MoveBroadcast{
		Player:   game.PlayerID(fb.Player()),
		TurnData: fb.TurnDataBytes(),
	}, nil
}

func SerializeSessionError(sessionErr *SessionError) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)
	message := builder.CreateString(sessionErr.Message)
	wire.SessionErrorStart(builder)
	wire.SessionErrorAddCode(builder, sessionErr.Code)
	wire.SessionErrorAddMessage(builder, message)
	builder.Finish(wire.SessionErrorEnd(builder))
	return builder.FinishedBytes(), nil
}

func DeserializeSessionError(b []byte) (sessionErr *SessionError, err error) {
	defer func() {
		if r := recover(); r != nil {
			sessionErr, err = nil, fmt.Errorf("malformed session error payload: %v", r)
		}
	}()
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("session error payload too short")
	}
	fb := wire.GetRootAsSessionError(b, 0)
	return &SessionError{
		Code:    fb.Code(),
		Message: string(fb.Message()),
	}, nil
}

func SerializeGameStateUpdate(update *GameStateUpdate) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)
	wire.GameStateStart(builder)
	wire.GameStateAddKind(builder, update.Kind)
	wire.GameStateAddPlayer(builder, uint32(update.Player))
	builder.Finish(wire.GameStateEnd(builder))
	return builder.FinishedBytes(), nil
}

func DeserializeGameStateUpdate(b []byte) (update *GameStateUpdate, err error) {
	defer func() {
		if r := recover(); r != nil {
			update, err = nil, fmt.Errorf("malformed game state payload: %v", r)
		}
	}()
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("game state payload too short")
	}
	fb := wire.GetRootAsGameState(b, 0)
	return &GameStateUpdate{
		Kind:   fb.Kind(),
		Player: game.PlayerID(fb.Player()),
	}, nil
}

func gameTypeToWire(t game.Type) wire.GameType {
	switch t {
	case game.TypeTicTacToe:
		return wire.GameTypeTicTacToe
	case game.TypeChess:
		return wire.GameTypeChess
	default:
		return wire.GameTypeUnspecified
	}
}

func gameTypeFromWire(t wire.GameType) game.Type {
	switch t {
	case wire.GameTypeTicTacToe:
		return game.TypeTicTacToe
	case wire.GameTypeChess:
		return game.TypeChess
	default:
		return game.TypeUnspecified
	}
}
