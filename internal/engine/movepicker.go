package engine

import "github.com/corvidchess/corvid/internal/board"

// pickerStage is where a MovePicker is in its staged walk of a move list.
type pickerStage int

const (
	stageTTMove pickerStage = iota
	stageGoodTactics
	stageQuiets
	stageBadTactics
	stageFinished
)

// MovePicker yields moves from an already-generated, already-scored move
// list in the staged order spec.md §4.6 calls for: the TT move first, then
// good tactics (captures/promotions with SEE >= 0), then quiet moves, and
// finally bad tactics (captures with SEE < 0) deferred to the very end.
// Selection within a stage is linear max-by-score then swap-remove.
type MovePicker struct {
	moves  *board.MoveList
	scores []int
	ttMove board.Move

	stage pickerStage

	goodTactics []int
	quiets      []int
	badTactics  []int

	skipQuiets     bool
	skipBadTactics bool
}

// NewMovePicker partitions moves into tactical/quiet buckets up front. The
// TT move (if present in the list) is excluded from every bucket so it is
// never yielded twice.
func NewMovePicker(pos *board.Position, moves *board.MoveList, scores []int, ttMove board.Move) *MovePicker {
	mp := &MovePicker{
		moves:  moves,
		scores: scores,
		ttMove: ttMove,
		stage:  stageTTMove,
	}

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m == ttMove {
			continue
		}
		if m.IsCapture(pos) || m.IsPromotion() {
			if SEE(pos, m) >= 0 {
				mp.goodTactics = append(mp.goodTactics, i)
			} else {
				mp.badTactics = append(mp.badTactics, i)
			}
		} else {
			mp.quiets = append(mp.quiets, i)
		}
	}

	return mp
}

// SkipQuiets tells the picker to stop yielding quiet moves once the current
// stage (or any earlier stage) finishes, for pruning that has decided no
// further quiet moves at this node are worth searching.
func (mp *MovePicker) SkipQuiets() {
	mp.skipQuiets = true
}

// SkipBadTactics tells the picker to stop yielding losing captures.
func (mp *MovePicker) SkipBadTactics() {
	mp.skipBadTactics = true
}

// Next returns the next move in staged order, or (NoMove, false) once every
// bucket is exhausted or skipped.
func (mp *MovePicker) Next() (board.Move, bool) {
	for {
		switch mp.stage {
		case stageTTMove:
			mp.stage = stageGoodTactics
			if mp.ttMove != board.NoMove {
				return mp.ttMove, true
			}

		case stageGoodTactics:
			if len(mp.goodTactics) == 0 {
				mp.stage = stageQuiets
				continue
			}
			moveIdx, rest := popBest(mp.scores, mp.goodTactics)
			mp.goodTactics = rest
			return mp.moves.Get(moveIdx), true

		case stageQuiets:
			if mp.skipQuiets || len(mp.quiets) == 0 {
				mp.stage = stageBadTactics
				continue
			}
			moveIdx, rest := popBest(mp.scores, mp.quiets)
			mp.quiets = rest
			return mp.moves.Get(moveIdx), true

		case stageBadTactics:
			if mp.skipBadTactics || len(mp.badTactics) == 0 {
				mp.stage = stageFinished
				continue
			}
			moveIdx, rest := popBest(mp.scores, mp.badTactics)
			mp.badTactics = rest
			return mp.moves.Get(moveIdx), true

		case stageFinished:
			return board.NoMove, false
		}
	}
}

// popBest finds the highest-scoring entry in bucket, swap-removes it, and
// returns its move-list index along with the shrunk bucket.
func popBest(scores []int, bucket []int) (int, []int) {
	best := 0
	for i := 1; i < len(bucket); i++ {
		if scores[bucket[i]] > scores[bucket[best]] {
			best = i
		}
	}
	moveIdx := bucket[best]
	last := len(bucket) - 1
	bucket[best] = bucket[last]
	return moveIdx, bucket[:last]
}
