package engine

import (
	"github.com/corvidchess/corvid/internal/board"
)

// Move ordering priorities
const (
	TTMoveScore     = 10000000 // TT move gets highest priority
	GoodCaptureBase = 1000000  // Base score for good captures
	KillerScore1    = 900000   // First killer move
	KillerScore2    = 800000   // Second killer move
	BadCaptureBase  = -100000  // Losing captures
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores
// Higher score = search first
// Score = victimValue * 10 - attackerValue
var mvvLva = [6][6]int{
	//       P    N    B    R    Q    K  (attacker)
	/* P */ {15, 14, 14, 13, 12, 11}, // Pawn victim
	/* N */ {25, 24, 24, 23, 22, 21}, // Knight victim
	/* B */ {35, 34, 34, 33, 32, 31}, // Bishop victim
	/* R */ {45, 44, 44, 43, 42, 41}, // Rook victim
	/* Q */ {55, 54, 54, 53, 52, 51}, // Queen victim
	/* K */ {0, 0, 0, 0, 0, 0},       // King can't be captured
}

// lowPlyHistorySize is how many root-adjacent plies keep their own quiet
// history table, per Stockfish's LowPlyHistory: move ordering this close to
// the root is worth a dedicated signal since butterfly history hasn't
// accumulated enough samples yet at the start of a search.
const lowPlyHistorySize = 4

// MAX_HISTORY bounds every saturating history update (spec.md §4.5): a
// single bonus/malus never pushes an entry past this magnitude.
const maxHistory = 16384

// PieceToHistory is the continuation-history table consulted "if the move
// played `plyBack` plies ago was `anchorPiece` to `anchorTo`, how good is
// piece-to-square `[piece][to]` now" (spec.md §4.5's continuation tables).
// A *PieceToHistory is what SearchStack.continuationHistory points at.
type PieceToHistory [12][64]int32

// continuationWeight scales the bonus applied at each ply-back distance:
// the immediately-preceding move (1-ply, "counter-move") is the strongest
// signal, the 2-ply ("follow-up") and 3-ply ("counter-2") anchors weaker.
var continuationWeight = [4]int{0, 100, 80, 60}

// MoveOrderer handles move ordering for the search.
type MoveOrderer struct {
	// Killer moves (quiet moves that caused beta cutoffs)
	killers [MaxPly][2]board.Move

	// History heuristic (indexed by [from][to])
	history [64][64]int

	// Low-ply history: separate butterfly table for the first few plies,
	// indexed by [ply][from][to].
	lowPlyHistory [lowPlyHistorySize][64][64]int

	// Counter move heuristic (indexed by [piece][to]) — remembers the best
	// reply move itself, not a score; used by the move picker's counter
	// stage to fast-path a likely-good quiet before scoring the rest.
	counterMoves [12][64]board.Move

	// Capture history (indexed by [attackerPiece][toSquare][capturedPieceType])
	captureHistory [12][64][6]int

	// Continuation history: one PieceToHistory sub-table per anchor move
	// [anchorPiece][anchorTo]. The same physical table backs the 1-ply
	// (counter-move), 2-ply (follow-up), and 3-ply (counter-2) tables the
	// spec calls for — which ply-back distance is in play is determined by
	// which SearchStack slot's anchor a caller reads, not by a separate
	// array per distance (this mirrors how Stockfish's ContinuationHistory
	// is addressed).
	continuationHistory [12][64]PieceToHistory
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear resets the move orderer for a new search.
func (mo *MoveOrderer) Clear() {
	// Clear killers
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}

	// Age history scores (divide by 2 to prevent overflow)
	for i := range mo.history {
		for j := range mo.history[i] {
			mo.history[i][j] /= 2
		}
	}

	// Age low-ply history
	for p := range mo.lowPlyHistory {
		for i := range mo.lowPlyHistory[p] {
			for j := range mo.lowPlyHistory[p][i] {
				mo.lowPlyHistory[p][i][j] /= 2
			}
		}
	}

	// Clear counter moves
	for i := range mo.counterMoves {
		for j := range mo.counterMoves[i] {
			mo.counterMoves[i][j] = board.NoMove
		}
	}

	// Age capture history
	for i := range mo.captureHistory {
		for j := range mo.captureHistory[i] {
			for k := range mo.captureHistory[i][j] {
				mo.captureHistory[i][j][k] /= 2
			}
		}
	}

	// Age continuation history
	for i := range mo.continuationHistory {
		for j := range mo.continuationHistory[i] {
			for k := range mo.continuationHistory[i][j] {
				for l := range mo.continuationHistory[i][j][k] {
					mo.continuationHistory[i][j][k][l] /= 2
				}
			}
		}
	}
}

// ScoreMoves assigns scores to moves for ordering.
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		scores[i] = mo.scoreMove(pos, move, ply, ttMove)
	}

	return scores
}

// ScoreMovesWithCounter assigns scores including counter-move and CMH bonus.
func (mo *MoveOrderer) ScoreMovesWithCounter(pos *board.Position, moves *board.MoveList, ply int, ttMove, prevMove board.Move) []int {
	scores := make([]int, moves.Len())
	counterMove := mo.GetCounterMove(prevMove, pos)

	// Get previous piece for CMH lookup
	var prevPiece board.Piece = board.NoPiece
	if prevMove != board.NoMove {
		prevPiece = pos.PieceAt(prevMove.To())
	}

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		if !move.IsCapture(pos) && !move.IsPromotion() && move != ttMove {
			scores[i] = mo.scoreQuietMove(pos, move, ttMove, prevMove, prevPiece, counterMove, ply)
		} else {
			scores[i] = mo.scoreMove(pos, move, ply, ttMove)
		}
	}

	return scores
}

// scoreQuietMove scores a single quiet move, layering counter-move,
// countermove-history, and low-ply history bonuses on top of the base
// killer/butterfly-history score from scoreMove.
func (mo *MoveOrderer) scoreQuietMove(pos *board.Position, m, ttMove, prevMove board.Move, prevPiece board.Piece, counterMove board.Move, ply int) int {
	score := mo.scoreMove(pos, m, ply, ttMove)

	if m == counterMove && score < KillerScore2 {
		score = KillerScore2 - 10000 // Just below second killer
	}

	movePiece := pos.PieceAt(m.From())
	cmhScore := mo.GetCountermoveHistoryScore(prevMove, prevPiece, movePiece, m.To())
	score += cmhScore / 2 // Scale down to not dominate

	if ply < lowPlyHistorySize {
		score += mo.GetLowPlyHistoryScore(m, ply)
	}

	return score
}

// scoreMove returns the ordering score for a single move.
func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove board.Move) int {
	// TT move gets highest priority
	if m == ttMove {
		return TTMoveScore
	}

	from := m.From()
	to := m.To()

	// Captures: MVV-LVA
	if m.IsCapture(pos) {
		attackerPiece := pos.PieceAt(from)
		if attackerPiece == board.NoPiece {
			return GoodCaptureBase // Safety check
		}
		attacker := attackerPiece.Type()

		var victim board.PieceType
		if m.IsEnPassant() {
			victim = board.Pawn
		} else {
			capturedPiece := pos.PieceAt(to)
			if capturedPiece == board.NoPiece {
				// Safety check - shouldn't happen but prevents panic
				return GoodCaptureBase
			}
			victim = capturedPiece.Type()
		}

		// Bounds check for safety (victim should be < King for captures)
		if victim >= board.King || attacker > board.King {
			return GoodCaptureBase
		}

		// Check if it's a winning capture using MVV-LVA
		score := GoodCaptureBase + mvvLva[victim][attacker]*1000

		// Add capture history bonus
		captureHistScore := mo.GetCaptureHistoryScore(attackerPiece, to, victim)
		score += captureHistScore / 4 // Scale appropriately

		// Bonus for capturing with a less valuable piece
		if pieceValues[attacker] < pieceValues[victim] {
			score += 10000 // Clearly winning capture
		}

		return score
	}

	// Promotions (non-capture)
	if m.IsPromotion() {
		return GoodCaptureBase - 1000 + int(m.Promotion())*100
	}

	// Killer moves
	if m == mo.killers[ply][0] {
		return KillerScore1
	}
	if m == mo.killers[ply][1] {
		return KillerScore2
	}

	// History heuristic for quiet moves
	return mo.history[from][to]
}

// SortMoves sorts moves by their scores (descending).
func SortMoves(moves *board.MoveList, scores []int) {
	// Simple selection sort (sufficient for ~40 moves)
	n := moves.Len()
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			// Swap moves
			moves.Swap(i, best)
			// Swap scores
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// PickMove selects the best remaining move and moves it to position index.
// This allows lazy move sorting (only sort as much as needed).
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers adds a killer move at the given ply.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	// Ignore plies beyond the killer table
	if ply >= MaxPly {
		return
	}

	// Don't store if it's already the first killer
	if mo.killers[ply][0] == m {
		return
	}

	// Shift killers
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory updates the history score for a move.
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int, isGood bool) {
	from := m.From()
	to := m.To()

	bonus := depth * depth
	if isGood {
		mo.history[from][to] += bonus
		// Prevent overflow
		if mo.history[from][to] > 400000 {
			// Scale down all history scores
			for i := range mo.history {
				for j := range mo.history[i] {
					mo.history[i][j] /= 2
				}
			}
		}
	} else {
		mo.history[from][to] -= bonus
		if mo.history[from][to] < -400000 {
			mo.history[from][to] = -400000
		}
	}
}

// UpdateLowPlyHistory updates the dedicated near-root history table for
// moves played within the first lowPlyHistorySize plies.
func (mo *MoveOrderer) UpdateLowPlyHistory(m board.Move, ply, depth int, isGood bool) {
	if ply >= lowPlyHistorySize {
		return
	}

	from, to := m.From(), m.To()
	bonus := depth * depth
	if isGood {
		mo.lowPlyHistory[ply][from][to] += bonus
		if mo.lowPlyHistory[ply][from][to] > 400000 {
			for i := range mo.lowPlyHistory {
				for j := range mo.lowPlyHistory[i] {
					for k := range mo.lowPlyHistory[i][j] {
						mo.lowPlyHistory[i][j][k] /= 2
					}
				}
			}
		}
	} else {
		mo.lowPlyHistory[ply][from][to] -= bonus
		if mo.lowPlyHistory[ply][from][to] < -400000 {
			mo.lowPlyHistory[ply][from][to] = -400000
		}
	}
}

// GetLowPlyHistoryScore returns the near-root history bonus for a move at
// the given ply, or 0 once ply is beyond lowPlyHistorySize.
func (mo *MoveOrderer) GetLowPlyHistoryScore(m board.Move, ply int) int {
	if ply >= lowPlyHistorySize {
		return 0
	}
	return mo.lowPlyHistory[ply][m.From()][m.To()] / 2
}

// UpdateCounterMove updates the counter move table.
func (mo *MoveOrderer) UpdateCounterMove(prevMove, counterMove board.Move, pos *board.Position) {
	if prevMove == board.NoMove {
		return
	}

	piece := pos.PieceAt(prevMove.To())
	if piece == board.NoPiece {
		return
	}

	mo.counterMoves[piece][prevMove.To()] = counterMove
}

// GetCounterMove returns the counter move for a previous move.
func (mo *MoveOrderer) GetCounterMove(prevMove board.Move, pos *board.Position) board.Move {
	if prevMove == board.NoMove {
		return board.NoMove
	}

	piece := pos.PieceAt(prevMove.To())
	if piece == board.NoPiece {
		return board.NoMove
	}

	return mo.counterMoves[piece][prevMove.To()]
}

// GetHistoryScore returns the history score for a move.
// Used for history pruning in search.
func (mo *MoveOrderer) GetHistoryScore(m board.Move) int {
	return mo.history[m.From()][m.To()]
}

// UpdateCaptureHistory updates the capture history for a move.
func (mo *MoveOrderer) UpdateCaptureHistory(attackerPiece board.Piece, toSq board.Square, capturedType board.PieceType, depth int, isGood bool) {
	if attackerPiece == board.NoPiece || capturedType >= board.King {
		return
	}

	bonus := depth * depth
	if isGood {
		mo.captureHistory[attackerPiece][toSq][capturedType] += bonus
		if mo.captureHistory[attackerPiece][toSq][capturedType] > 400000 {
			mo.scaleCaptureHistory()
		}
	} else {
		mo.captureHistory[attackerPiece][toSq][capturedType] -= bonus
		if mo.captureHistory[attackerPiece][toSq][capturedType] < -400000 {
			mo.captureHistory[attackerPiece][toSq][capturedType] = -400000
		}
	}
}

func (mo *MoveOrderer) scaleCaptureHistory() {
	for i := range mo.captureHistory {
		for j := range mo.captureHistory[i] {
			for k := range mo.captureHistory[i][j] {
				mo.captureHistory[i][j][k] /= 2
			}
		}
	}
}

// GetCaptureHistoryScore returns the capture history score for a capture move.
func (mo *MoveOrderer) GetCaptureHistoryScore(attackerPiece board.Piece, toSq board.Square, capturedType board.PieceType) int {
	if attackerPiece == board.NoPiece || capturedType >= board.King {
		return 0
	}
	return mo.captureHistory[attackerPiece][toSq][capturedType]
}

// UpdateCountermoveHistory updates the 1-ply continuation history for a
// quiet move given the move played immediately before it.
func (mo *MoveOrderer) UpdateCountermoveHistory(prevMove, goodMove board.Move, prevPiece, movePiece board.Piece, depth int, isGood bool) {
	if prevMove == board.NoMove || prevPiece == board.NoPiece || movePiece == board.NoPiece {
		return
	}
	mo.updateContinuation(prevPiece, prevMove.To(), movePiece, goodMove.To(), depth, 1, isGood)
}

// GetCountermoveHistoryScore returns the 1-ply continuation score for a move
// given the previous move (the "counter-move history").
func (mo *MoveOrderer) GetCountermoveHistoryScore(prevMove board.Move, prevPiece, movePiece board.Piece, moveTo board.Square) int {
	if prevMove == board.NoMove || prevPiece == board.NoPiece || movePiece == board.NoPiece {
		return 0
	}
	return int(mo.continuationHistory[prevPiece][prevMove.To()][movePiece][moveTo])
}

// GetContinuationHistoryTable returns the continuation sub-table anchored on
// a move by anchorPiece to anchorTo, for the search stack to cache and
// later index by the piece/to of whatever move follows it.
func (mo *MoveOrderer) GetContinuationHistoryTable(anchorPiece board.Piece, anchorTo board.Square) *PieceToHistory {
	if anchorPiece == board.NoPiece {
		return nil
	}
	return &mo.continuationHistory[anchorPiece][anchorTo]
}

// UpdateContinuationHistory applies a plyBack-weighted saturating update
// (spec.md §4.5: value += delta - value*|delta|/MAX_HISTORY) to the
// continuation entry for anchorPiece/anchorTo -> piece/to. plyBack selects
// the bonus weight only (1 = counter-move, 2 = follow-up, 3 = counter-2);
// all three read and write the same physical table, addressed by whichever
// SearchStack anchor the caller consulted.
func (mo *MoveOrderer) UpdateContinuationHistory(anchorPiece board.Piece, anchorTo board.Square, piece board.Piece, to board.Square, depth, plyBack int, isGood bool) {
	if anchorPiece == board.NoPiece || piece == board.NoPiece || plyBack < 1 || plyBack > 3 {
		return
	}
	mo.updateContinuation(anchorPiece, anchorTo, piece, to, depth, plyBack, isGood)
}

func (mo *MoveOrderer) updateContinuation(anchorPiece board.Piece, anchorTo board.Square, piece board.Piece, to board.Square, depth, plyBack int, isGood bool) {
	bonus := (depth*depth + 2*depth) * continuationWeight[plyBack] / 100
	if !isGood {
		bonus = -bonus
	}

	entry := &mo.continuationHistory[anchorPiece][anchorTo][piece][to]
	d := int32(bonus)
	*entry += d - *entry*abs32(d)/maxHistory
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
