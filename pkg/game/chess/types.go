package chess

import (
	"github.com/parlorgames/parlor/pkg/board"
	"github.com/parlorgames/parlor/pkg/game"
)

const boardSize = 8

// Team is the side a player controls. White sits on the high rows and
// moves toward row zero.
type Team int8

const (
	TeamWhite Team = iota
	TeamBlack
)

func (t Team) String() string {
	if t == TeamWhite {
		return "white"
	}
	return "black"
}

func (t Team) KingInitialPosition() board.Index {
	if t == TeamWhite {
		return board.NewIndex(boardSize-1, 4)
	}
	return board.NewIndex(0, 4)
}

func (t Team) LeftRookInitialPosition() board.Index {
	if t == TeamWhite {
		return board.NewIndex(boardSize-1, 0)
	}
	return board.NewIndex(0, 0)
}

func (t Team) RightRookInitialPosition() board.Index {
	if t == TeamWhite {
		return board.NewIndex(boardSize-1, boardSize-1)
	}
	return board.NewIndex(0, boardSize-1)
}

func (t Team) PawnInitialRow() int {
	if t == TeamWhite {
		return boardSize - 2
	}
	return 1
}

type PieceKind int8

const (
	Pawn PieceKind = iota
	Bishop
	Knight
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "unknown"
	}
}

// Piece is a chessman on the board.
type Piece struct {
	Kind  PieceKind
	Owner game.PlayerID
}

func NewPawn(owner game.PlayerID) Piece   { return Piece{Kind: Pawn, Owner: owner} }
func NewBishop(owner game.PlayerID) Piece { return Piece{Kind: Bishop, Owner: owner} }
func NewKnight(owner game.PlayerID) Piece { return Piece{Kind: Knight, Owner: owner} }
func NewRook(owner game.PlayerID) Piece   { return Piece{Kind: Rook, Owner: owner} }
func NewQueen(owner game.PlayerID) Piece  { return Piece{Kind: Queen, Owner: owner} }
func NewKing(owner game.PlayerID) Piece   { return Piece{Kind: King, Owner: owner} }

func (p Piece) IsEnemy(player game.PlayerID) bool {
	return p.Owner != player
}

type moveType int8

const (
	moveOther moveType = iota
	moveKing
	moveRook
	moveLeftCastle
	moveRightCastle
)

// CastleOptions is the per-side castle permission pair.
type CastleOptions struct {
	Left  bool
	Right bool
}

func allCastleOptions() CastleOptions {
	return CastleOptions{Left: true, Right: true}
}

func noCastleOptions() CastleOptions {
	return CastleOptions{}
}
