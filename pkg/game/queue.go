package game

// WithID is implemented by anything stored in a Queue.
type WithID interface {
	ID() PlayerID
}

// Queue is a cyclic rotation over a fixed list of players. The cursor
// marks the player whose turn it is; Advance rotates it by one with
// wrap-around. A Queue over an empty list is corrupted by construction
// and every operation on it fails with ErrPlayerPoolCorrupted.
type Queue[T WithID] struct {
	players []T
	cursor  int
}

func NewQueue[T WithID](players []T) *Queue[T] {
	return &Queue[T]{players: players}
}

// Players returns the queue contents in seating order, unaffected by
// cursor position.
func (q *Queue[T]) Players() []T {
	return q.players
}

// Current returns the player at the cursor without advancing.
func (q *Queue[T]) Current() (T, error) {
	var zero T
	if len(q.players) == 0 {
		return zero, ErrPlayerPoolCorrupted
	}
	return q.players[q.cursor], nil
}

// Advance rotates the cursor forward one position and returns the new
// current player.
func (q *Queue[T]) Advance() (T, error) {
	var zero T
	if len(q.players) == 0 {
		return zero, ErrPlayerPoolCorrupted
	}
	q.cursor = (q.cursor + 1) % len(q.players)
	return q.players[q.cursor], nil
}

// FindByID scans for the player with the given id.
func (q *Queue[T]) FindByID(id PlayerID) (T, bool) {
	return q.Find(func(p T) bool { return p.ID() == id })
}

// Find scans for the first player matching the predicate.
func (q *Queue[T]) Find(pred func(T) bool) (T, bool) {
	for _, p := range q.players {
		if pred(p) {
			return p, true
		}
	}
	var zero T
	return zero, false
}
