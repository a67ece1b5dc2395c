package game

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/parlorgames/parlor/flatbuffers/wire"
	"github.com/parlorgames/parlor/pkg/board"
)

// DecodePosition parses turn data carrying a single board coordinate.
// Malformed bytes produce a TurnDataError rather than a panic.
func DecodePosition(turnData []byte) (idx board.Index, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TurnDataError{Reason: fmt.Sprintf("malformed position payload: %v", r)}
		}
	}()
	if len(turnData) < flatbuffers.SizeUOffsetT {
		return board.Index{}, &TurnDataError{Reason: "position payload too short"}
	}
	pos := wire.GetRootAsPosition(turnData, 0)
	return board.NewIndex(int(pos.Row()), int(pos.Col())), nil
}

// EncodePosition renders a board coordinate as turn data bytes.
func EncodePosition(idx board.Index) []byte {
	builder := flatbuffers.NewBuilder(32)
	wire.PositionStart(builder)
	wire.PositionAddRow(builder, uint32(idx.Row))
	wire.PositionAddCol(builder, uint32(idx.Col))
	builder.Finish(wire.PositionEnd(builder))
	return builder.FinishedBytes()
}

// DecodePositionPair parses turn data carrying a source and destination
// coordinate. Either half missing is a TurnDataError.
func DecodePositionPair(turnData []byte) (from, to board.Index, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TurnDataError{Reason: fmt.Sprintf("malformed position pair payload: %v", r)}
		}
	}()
	if len(turnData) < flatbuffers.SizeUOffsetT {
		return board.Index{}, board.Index{}, &TurnDataError{Reason: "position pair payload too short"}
	}
	pair := wire.GetRootAsPositionPair(turnData, 0)
	fromPos := pair.From(nil)
	if fromPos == nil {
		return board.Index{}, board.Index{}, &TurnDataError{Reason: "position pair missing source"}
	}
	toPos := pair.To(nil)
	if toPos == nil {
		return board.Index{}, board.Index{}, &TurnDataError{Reason: "position pair missing destination"}
	}
	from = board.NewIndex(int(fromPos.Row()), int(fromPos.Col()))
	to = board.NewIndex(int(toPos.Row()), int(toPos.Col()))
	return from, to, nil
}

// EncodePositionPair renders a source/destination pair as turn data bytes.
func EncodePositionPair(from, to board.Index) []byte {
	builder := flatbuffers.NewBuilder(64)
	wire.PositionStart(builder)
	wire.PositionAddRow(builder, uint32(from.Row))
	wire.PositionAddCol(builder, uint32(from.Col))
	fromOffset := wire.PositionEnd(builder)
	wire.PositionStart(builder)
	wire.PositionAddRow(builder, uint32(to.Row))
	wire.PositionAddCol(builder, uint32(to.Col))
	toOffset := wire.PositionEnd(builder)
	wire.PositionPairStart(builder)
	wire.PositionPairAddFrom(builder, fromOffset)
	wire.PositionPairAddTo(builder, toOffset)
	builder.Finish(wire.PositionPairEnd(builder))
	return builder.FinishedBytes()
}
