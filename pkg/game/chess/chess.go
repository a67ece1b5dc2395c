// Package chess implements the chess rule engine for two players.
// White occupies the two high rows and moves toward row zero.
package chess

import (
	"fmt"

	"github.com/parlorgames/parlor/pkg/board"
	"github.com/parlorgames/parlor/pkg/game"
)

type cell = board.Cell[Piece]

// Player is a seat in a chess game bound to a team.
type Player struct {
	id   game.PlayerID
	team Team
}

func (p Player) ID() game.PlayerID {
	return p.id
}

func (p Player) Team() Team {
	return p.team
}

// playerState is the auxiliary per-player state tracked alongside the
// board: castle rights, the positions currently giving check and the
// king's square.
type playerState struct {
	castle  CastleOptions
	check   []board.Index
	kingPos board.Index
}

// Game holds the live board, turn order and per-player auxiliary
// state. It is not safe for concurrent use; callers serialize access
// through the game worker.
type Game struct {
	board   *board.Grid[cell]
	players *game.Queue[Player]
	state   game.State
	extra   map[game.PlayerID]*playerState
}

// NewGame creates a game in the standard starting position with seats
// 0 (white) and 1 (black), white to move.
func NewGame() *Game {
	white := Player{id: 0, team: TeamWhite}
	black := Player{id: 1, team: TeamBlack}
	g := &Game{
		board:   initialBoard(white.id, black.id),
		players: game.NewQueue([]Player{white, black}),
		state:   game.Turn(white.id),
		extra: map[game.PlayerID]*playerState{
			white.id: {castle: allCastleOptions(), kingPos: TeamWhite.KingInitialPosition()},
			black.id: {castle: allCastleOptions(), kingPos: TeamBlack.KingInitialPosition()},
		},
	}
	return g
}

func initialBoard(white, black game.PlayerID) *board.Grid[cell] {
	g := board.NewGrid[cell](boardSize, boardSize)
	for col := 0; col < boardSize; col++ {
		g.Set(board.NewIndex(6, col), board.NewCell(NewPawn(white)))
		g.Set(board.NewIndex(1, col), board.NewCell(NewPawn(black)))
	}
	backline := []func(game.PlayerID) Piece{
		NewRook, NewKnight, NewBishop, NewQueen, NewKing, NewBishop, NewKnight, NewRook,
	}
	for col, create := range backline {
		g.Set(board.NewIndex(7, col), board.NewCell(create(white)))
		g.Set(board.NewIndex(0, col), board.NewCell(create(black)))
	}
	return g
}

func (g *Game) State() game.State {
	return g.state
}

// Update applies a move described by a (from, to) position pair. On
// any error the board, auxiliary state and game state are unchanged.
func (g *Game) Update(player game.PlayerID, turnData []byte) (game.State, error) {
	if g.state.IsFinished() {
		return g.state, game.ErrGameIsFinished
	}
	current, err := g.players.Current()
	if err != nil {
		return g.state, err
	}
	if current.ID() != player {
		return g.state, &game.NotYourTurnError{Expected: current.ID(), Found: player}
	}
	from, to, err := game.DecodePositionPair(turnData)
	if err != nil {
		return g.state, err
	}
	if !g.board.Contains(from) || !g.board.Contains(to) {
		return g.state, &game.TurnDataError{Reason: fmt.Sprintf("move %s to %s is outside the board", from, to)}
	}
	piece, ok := g.board.At(from).Get()
	if !ok {
		return g.state, &game.CellIsEmptyError{Row: from.Row, Col: from.Col}
	}
	if piece.Owner != player {
		return g.state, &game.UnauthorizedMoveError{Expected: piece.Owner, Found: player}
	}
	moves, err := g.movesFrom(from)
	if err != nil {
		return g.state, err
	}
	if !containsIndex(moves, to) {
		return g.state, &game.InvalidMoveError{Reason: fmt.Sprintf("unable to move %s to %s", from, to)}
	}

	switch g.moveType(from, to) {
	case moveLeftCastle:
		if _, err := g.movePiece(current.team.LeftRookInitialPosition(), to.Right(1)); err != nil {
			return g.state, err
		}
		g.setKingPosition(player, to)
	case moveRightCastle:
		if _, err := g.movePiece(current.team.RightRookInitialPosition(), to.Left(1)); err != nil {
			return g.state, err
		}
		g.setKingPosition(player, to)
	case moveKing:
		g.setKingPosition(player, to)
	case moveRook:
		if from == current.team.LeftRookInitialPosition() {
			g.disableLeftCastling(player)
		} else if from == current.team.RightRookInitialPosition() {
			g.disableRightCastling(player)
		}
	}
	if _, err := g.movePiece(from, to); err != nil {
		return g.state, err
	}

	return g.updateState()
}

// Board returns a row-major snapshot, nil for empty cells.
func (g *Game) Board() []*game.Occupant {
	snapshot := make([]*game.Occupant, 0, boardSize*boardSize)
	g.board.Each(func(_ board.Index, c cell) bool {
		if piece, ok := c.Get(); ok {
			snapshot = append(snapshot, &game.Occupant{Owner: piece.Owner, Piece: piece.Kind.String()})
		} else {
			snapshot = append(snapshot, nil)
		}
		return true
	})
	return snapshot
}

// setKingPosition tracks the king's square and revokes castling. Any
// king move, castling included, clears both rights for good.
func (g *Game) setKingPosition(id game.PlayerID, pos board.Index) {
	if st, ok := g.extra[id]; ok {
		st.kingPos = pos
		st.castle = noCastleOptions()
	}
}

func (g *Game) disableLeftCastling(id game.PlayerID) {
	if st, ok := g.extra[id]; ok {
		st.castle.Left = false
	}
}

func (g *Game) disableRightCastling(id game.PlayerID) {
	if st, ok := g.extra[id]; ok {
		st.castle.Right = false
	}
}

func (g *Game) kingPosition(id game.PlayerID) (board.Index, bool) {
	st, ok := g.extra[id]
	if !ok {
		return board.Index{}, false
	}
	return st.kingPos, true
}

func (g *Game) isInCheck(id game.PlayerID) bool {
	st, ok := g.extra[id]
	return ok && len(st.check) > 0
}

// movePiece relocates the piece at from and returns whatever occupied
// the destination, so provisional moves can be rolled back.
func (g *Game) movePiece(from, to board.Index) (cell, error) {
	piece, ok := g.board.At(from).Get()
	if !ok {
		return cell{}, &game.CellIsEmptyError{Row: from.Row, Col: from.Col}
	}
	old := g.board.At(to)
	g.board.Set(to, board.NewCell(piece))
	g.board.Set(from, cell{})
	return old, nil
}

func (g *Game) isEnemy(pos board.Index, player game.PlayerID) bool {
	piece, ok := g.board.At(pos).Get()
	return ok && piece.IsEnemy(player)
}

// moveType classifies a move before it is applied. A king moving two
// files along its home row from its starting square is a castle.
func (g *Game) moveType(from, to board.Index) moveType {
	piece, ok := g.board.At(from).Get()
	if !ok {
		return moveOther
	}
	switch piece.Kind {
	case King:
		initial := from == TeamWhite.KingInitialPosition() || from == TeamBlack.KingInitialPosition()
		if initial && from.Row == to.Row {
			switch {
			case to.Col == from.Col+2:
				return moveRightCastle
			case from.Col == to.Col+2:
				return moveLeftCastle
			}
		}
		return moveKing
	case Rook:
		return moveRook
	}
	return moveOther
}

// canCastle evaluates the live castle preconditions on top of the
// stored rights: the rook still stands on its home square, the king is
// not in check, the squares the king passes through are empty and
// unattacked, and for the left side the extra rook-adjacent square is
// empty. The rook check matters because a rook captured in place does
// not clear the stored right.
func (g *Game) canCastle(id game.PlayerID) (CastleOptions, error) {
	st, ok := g.extra[id]
	if !ok {
		return noCastleOptions(), game.ErrPlayerNotFound
	}
	player, found := g.players.FindByID(id)
	if !found {
		return noCastleOptions(), game.ErrPlayerNotFound
	}
	if len(st.check) > 0 {
		return noCastleOptions(), nil
	}
	opts := st.castle
	kingPos := player.team.KingInitialPosition()
	if opts.Left {
		opts.Left = g.ownRookAt(player.team.LeftRookInitialPosition(), id) &&
			g.emptyNotThreatened(g.board.LeftFrom(kingPos).Skip(1), 2, player) &&
			g.board.At(kingPos.Left(3)).IsEmpty()
	}
	if opts.Right {
		opts.Right = g.ownRookAt(player.team.RightRookInitialPosition(), id) &&
			g.emptyNotThreatened(g.board.RightFrom(kingPos).Skip(1), 2, player)
	}
	return opts, nil
}

func (g *Game) ownRookAt(pos board.Index, owner game.PlayerID) bool {
	piece, ok := g.board.At(pos).Get()
	return ok && piece.Kind == Rook && piece.Owner == owner
}

func (g *Game) emptyNotThreatened(c *board.Cursor[cell], n int, player Player) bool {
	for i := 0; i < n && c.Next(); i++ {
		if !g.board.At(c.Index()).IsEmpty() {
			return false
		}
		if len(g.attackThreats(c.Index(), player)) > 0 {
			return false
		}
	}
	return true
}

// attackThreats returns the positions of enemy pieces attacking pos.
// Each of the eight directions is probed to its first occupied cell;
// knight offsets are checked directly.
func (g *Game) attackThreats(pos board.Index, player Player) []board.Index {
	var threats []board.Index

	diagonals := []*board.Cursor[cell]{
		g.board.UpLeftFrom(pos).Skip(1),
		g.board.UpRightFrom(pos).Skip(1),
		g.board.DownRightFrom(pos).Skip(1),
		g.board.DownLeftFrom(pos).Skip(1),
	}
	for _, c := range diagonals {
		enemyPos, piece, ok := g.firstOccupied(c)
		if !ok || !piece.IsEnemy(player.id) {
			continue
		}
		switch piece.Kind {
		case Bishop, Queen:
			threats = append(threats, enemyPos)
		case King:
			if enemyPos.IsAdjacent(pos) {
				threats = append(threats, enemyPos)
			}
		case Pawn:
			if !enemyPos.IsAdjacent(pos) {
				continue
			}
			// pawns only attack in their direction of travel
			attacks := (player.team == TeamWhite && enemyPos.Row < pos.Row) ||
				(player.team == TeamBlack && enemyPos.Row > pos.Row)
			if attacks {
				threats = append(threats, enemyPos)
			}
		}
	}

	orthogonals := []*board.Cursor[cell]{
		g.board.RightFrom(pos).Skip(1),
		g.board.LeftFrom(pos).Skip(1),
		g.board.UpFrom(pos).Skip(1),
		g.board.DownFrom(pos).Skip(1),
	}
	for _, c := range orthogonals {
		enemyPos, piece, ok := g.firstOccupied(c)
		if !ok || !piece.IsEnemy(player.id) {
			continue
		}
		switch piece.Kind {
		case Rook, Queen:
			threats = append(threats, enemyPos)
		case King:
			if enemyPos.IsAdjacent(pos) {
				threats = append(threats, enemyPos)
			}
		}
	}

	for _, idx := range g.knightTargets(pos) {
		if piece, ok := g.board.At(idx).Get(); ok && piece.IsEnemy(player.id) && piece.Kind == Knight {
			threats = append(threats, idx)
		}
	}
	return threats
}

func (g *Game) firstOccupied(c *board.Cursor[cell]) (board.Index, Piece, bool) {
	for c.Next() {
		if piece, ok := c.Value().Get(); ok {
			return c.Index(), piece, true
		}
	}
	return board.Index{}, Piece{}, false
}

// knightTargets lists the in-bounds knight-offset squares around pos.
func (g *Game) knightTargets(pos board.Index) []board.Index {
	var out []board.Index
	add := func(idx board.Index) {
		if g.board.Contains(idx) {
			out = append(out, idx)
		}
	}
	for _, dRow := range []int{-2, 2} {
		mid := board.NewIndex(pos.Row+dRow, pos.Col)
		if !g.board.Contains(mid) {
			continue
		}
		add(mid.Right(1))
		add(mid.Left(1))
	}
	for _, dCol := range []int{-2, 2} {
		mid := board.NewIndex(pos.Row, pos.Col+dCol)
		if !g.board.Contains(mid) {
			continue
		}
		add(mid.Up(1))
		add(mid.Down(1))
	}
	return out
}

// slide walks a direction collecting empty squares, including the
// first occupied square only when it holds an enemy piece.
func (g *Game) slide(c *board.Cursor[cell], owner game.PlayerID) []board.Index {
	var out []board.Index
	for c.Next() {
		piece, occupied := g.board.At(c.Index()).Get()
		if !occupied {
			out = append(out, c.Index())
			continue
		}
		if piece.IsEnemy(owner) {
			out = append(out, c.Index())
		}
		break
	}
	return out
}

// movesFrom computes the legal destinations for the piece at pos,
// including castle hops, with moves that leave the mover's own king
// attacked filtered out.
func (g *Game) movesFrom(pos board.Index) ([]board.Index, error) {
	piece, ok := g.board.At(pos).Get()
	if !ok {
		return nil, &game.CellIsEmptyError{Row: pos.Row, Col: pos.Col}
	}
	player, found := g.players.FindByID(piece.Owner)
	if !found {
		return nil, game.ErrPlayerNotFound
	}

	emptyOrEnemy := func(idx board.Index) bool {
		target, occupied := g.board.At(idx).Get()
		return !occupied || target.IsEnemy(piece.Owner)
	}

	var res []board.Index
	switch piece.Kind {
	case Pawn:
		advance := func(from board.Index) (board.Index, bool) {
			var c *board.Cursor[cell]
			if player.team == TeamWhite {
				c = g.board.UpFrom(from).Skip(1)
			} else {
				c = g.board.DownFrom(from).Skip(1)
			}
			if c.Next() {
				return c.Index(), true
			}
			return board.Index{}, false
		}
		if idx, ok := advance(pos); ok {
			if g.board.At(idx).IsEmpty() {
				res = append(res, idx)
				// an unmoved pawn may advance one extra row
				if pos.Row == player.team.PawnInitialRow() {
					if idx2, ok := advance(idx); ok && g.board.At(idx2).IsEmpty() {
						res = append(res, idx2)
					}
				}
			}
			for _, capture := range []board.Index{idx.Right(1), idx.Left(1)} {
				if g.board.Contains(capture) && g.isEnemy(capture, piece.Owner) {
					res = append(res, capture)
				}
			}
		}
	case Bishop:
		for _, c := range g.diagonalCursors(pos) {
			res = append(res, g.slide(c, piece.Owner)...)
		}
	case Knight:
		for _, idx := range g.knightTargets(pos) {
			if emptyOrEnemy(idx) {
				res = append(res, idx)
			}
		}
	case Rook:
		for _, c := range g.orthogonalCursors(pos) {
			res = append(res, g.slide(c, piece.Owner)...)
		}
	case Queen:
		for _, c := range g.diagonalCursors(pos) {
			res = append(res, g.slide(c, piece.Owner)...)
		}
		for _, c := range g.orthogonalCursors(pos) {
			res = append(res, g.slide(c, piece.Owner)...)
		}
	case King:
		cursors := append(g.diagonalCursors(pos), g.orthogonalCursors(pos)...)
		for _, c := range cursors {
			if c.Next() && emptyOrEnemy(c.Index()) {
				res = append(res, c.Index())
			}
		}
		if pos == player.team.KingInitialPosition() {
			castle, err := g.canCastle(piece.Owner)
			if err != nil {
				return nil, err
			}
			if castle.Left {
				res = append(res, pos.Left(2))
			}
			if castle.Right {
				res = append(res, pos.Right(2))
			}
		}
	}

	kingPos, ok := g.kingPosition(player.id)
	if !ok {
		return nil, game.ErrPlayerNotFound
	}
	// provisionally apply each candidate and drop those that leave the
	// mover's king attacked
	filtered := res[:0]
	for _, idx := range res {
		backup, err := g.movePiece(pos, idx)
		if err != nil {
			continue
		}
		kp := kingPos
		if piece.Kind == King {
			kp = idx
		}
		safe := len(g.attackThreats(kp, player)) == 0
		if _, err := g.movePiece(idx, pos); err != nil {
			continue
		}
		g.board.Set(idx, backup)
		if safe {
			filtered = append(filtered, idx)
		}
	}
	return filtered, nil
}

func (g *Game) diagonalCursors(pos board.Index) []*board.Cursor[cell] {
	return []*board.Cursor[cell]{
		g.board.UpLeftFrom(pos).Skip(1),
		g.board.UpRightFrom(pos).Skip(1),
		g.board.DownRightFrom(pos).Skip(1),
		g.board.DownLeftFrom(pos).Skip(1),
	}
}

func (g *Game) orthogonalCursors(pos board.Index) []*board.Cursor[cell] {
	return []*board.Cursor[cell]{
		g.board.RightFrom(pos).Skip(1),
		g.board.LeftFrom(pos).Skip(1),
		g.board.UpFrom(pos).Skip(1),
		g.board.DownFrom(pos).Skip(1),
	}
}

func (g *Game) piecePositions(id game.PlayerID) []board.Index {
	var out []board.Index
	g.board.Each(func(idx board.Index, c cell) bool {
		if piece, ok := c.Get(); ok && !piece.IsEnemy(id) {
			out = append(out, idx)
		}
		return true
	})
	return out
}

func (g *Game) enemyPlayer() (Player, error) {
	current, err := g.players.Current()
	if err != nil {
		return Player{}, err
	}
	enemy, ok := g.players.Find(func(p Player) bool { return p.id != current.id })
	if !ok {
		return Player{}, game.ErrPlayerNotFound
	}
	return enemy, nil
}

func (g *Game) updateCheck(player Player) {
	kingPos, ok := g.kingPosition(player.id)
	if !ok {
		return
	}
	threats := g.attackThreats(kingPos, player)
	if st, ok := g.extra[player.id]; ok {
		st.check = threats
	}
}

// updateState finishes a turn: the mover cannot have ended in check so
// their check set is cleared, the opponent's is recomputed, and mate
// or stalemate is detected by probing every opposing piece for a
// legal reply.
func (g *Game) updateState() (game.State, error) {
	current, err := g.players.Current()
	if err != nil {
		return g.state, err
	}
	if st, ok := g.extra[current.id]; ok {
		st.check = nil
	}
	enemy, err := g.enemyPlayer()
	if err != nil {
		return g.state, err
	}
	g.updateCheck(enemy)

	hasMove := false
	for _, pos := range g.piecePositions(enemy.id) {
		moves, err := g.movesFrom(pos)
		if err != nil {
			continue
		}
		if len(moves) > 0 {
			hasMove = true
			break
		}
	}
	if !hasMove {
		if g.isInCheck(enemy.id) {
			g.state = game.Win(current.id)
		} else {
			g.state = game.Draw()
		}
		return g.state, nil
	}

	next, err := g.players.Advance()
	if err != nil {
		return g.state, err
	}
	g.state = game.Turn(next.ID())
	return g.state, nil
}

func containsIndex(indices []board.Index, idx board.Index) bool {
	for _, i := range indices {
		if i == idx {
			return true
		}
	}
	return false
}
