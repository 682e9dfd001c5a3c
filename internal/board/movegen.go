package board

import "fmt"

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures generates all capture moves.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return p.filterLegalMoves(ml)
}

// generateAllMoves generates all pseudo-legal moves.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	enemies := p.Occupied[them]

	// Pawn moves
	p.generatePawnMoves(ml, us, enemies, occupied)

	// Knight moves
	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}

	// Bishop moves
	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}

	// Rook moves
	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}

	// Queen moves
	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}

	// King moves
	p.generateKingMoves(ml, us)

	// Castling
	p.generateCastlingMoves(ml, us)
}

// generatePawnMoves generates all pawn moves.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	// Single pushes (non-promotion)
	nonPromo := push1 & ^promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		from := Square(int(to) - pushDir)
		ml.Add(NewMove(from, to))
	}

	// Double pushes
	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) - 2*pushDir)
		ml.Add(NewMove(from, to))
	}

	// Captures (non-promotion)
	nonPromoL := attackL & ^promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewMove(from, to))
	}

	nonPromoR := attackR & ^promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewMove(from, to))
	}

	// Promotions
	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, from, to)
	}

	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		addPromotions(ml, from, to)
	}

	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		addPromotions(ml, from, to)
	}

	// En passant
	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			ml.Add(NewEnPassant(from, p.EnPassant))
		}
	}
}

// addPromotions adds all four promotion moves.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// generateKingMoves generates king moves (non-castling).
func (p *Position) generateKingMoves(ml *MoveList, us Color) {
	from := p.KingSquare[us]
	attacks := KingAttacks(from) & ^p.Occupied[us]

	for attacks != 0 {
		to := attacks.PopLSB()
		ml.Add(NewMove(from, to))
	}
}

// generateCastlingMoves generates castling moves. The logic is written to
// cover Chess960/DFRC starting arrangements (rook on any file) as well as
// orthodox chess, which is just the special case where the rook files are
// the board's corners.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	kingFrom := p.KingSquare[us]
	cr := p.CastlingRights

	if cr.Short[us] != NoCastleFile {
		rookFrom := NewSquare(int(cr.Short[us]), kingFrom.Rank())
		p.tryCastle(ml, us, kingFrom, rookFrom, 6, 5)
	}
	if cr.Long[us] != NoCastleFile {
		rookFrom := NewSquare(int(cr.Long[us]), kingFrom.Rank())
		p.tryCastle(ml, us, kingFrom, rookFrom, 2, 3)
	}
}

// tryCastle adds the castling move king@kingFrom/rook@rookFrom to ml if
// legal: the span the king and rook travel (inclusive of both destinations)
// must be empty but for the castling rook itself, and every square the king
// passes through (including its start and destination) must be free of
// attack.
func (p *Position) tryCastle(ml *MoveList, us Color, kingFrom, rookFrom Square, kingDestFile, rookDestFile int) {
	them := us.Other()
	backRank := kingFrom.Rank()

	loFile, hiFile := int(kingFrom.File()), kingDestFile
	if loFile > hiFile {
		loFile, hiFile = hiFile, loFile
	}
	rLo, rHi := int(rookFrom.File()), rookDestFile
	if rLo > rHi {
		rLo, rHi = rHi, rLo
	}
	if rLo < loFile {
		loFile = rLo
	}
	if rHi > hiFile {
		hiFile = rHi
	}

	for f := loFile; f <= hiFile; f++ {
		sq := NewSquare(f, backRank)
		if sq == kingFrom || sq == rookFrom {
			continue
		}
		if !p.IsEmpty(sq) {
			return
		}
	}

	// Check detection along the king's travel treats both the king and the
	// castling rook as already having vacated their origin squares.
	occ := p.AllOccupied &^ SquareBB(kingFrom) &^ SquareBB(rookFrom)
	kLo, kHi := int(kingFrom.File()), kingDestFile
	if kLo > kHi {
		kLo, kHi = kHi, kLo
	}
	for f := kLo; f <= kHi; f++ {
		sq := NewSquare(f, backRank)
		if p.AttackersByColor(sq, them, occ) != 0 {
			return
		}
	}

	ml.Add(NewCastling(kingFrom, rookFrom))
}

// generateCaptures generates capture moves only.
func (p *Position) generateCaptures(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemies := p.Occupied[them]
	occupied := p.AllOccupied

	// Pawn captures
	pawns := p.Pieces[us][Pawn]
	var attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	// Non-promotion captures
	nonPromoL := attackL & ^promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewMove(from, to))
	}

	nonPromoR := attackR & ^promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewMove(from, to))
	}

	// Promotion captures
	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		addPromotions(ml, from, to)
	}

	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		addPromotions(ml, from, to)
	}

	// Pawn push promotions (technically not captures but important for quiescence)
	empty := ^occupied
	var push1 Bitboard
	if us == White {
		push1 = pawns.North() & empty & Rank8
	} else {
		push1 = pawns.South() & empty & Rank1
	}
	for push1 != 0 {
		to := push1.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, from, to)
	}

	// En passant
	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			ml.Add(NewEnPassant(from, p.EnPassant))
		}
	}

	// Knight captures
	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & enemies
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}

	// Bishop captures
	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & enemies
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}

	// Rook captures
	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & enemies
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}

	// Queen captures
	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & enemies
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to))
		}
	}

	// King captures
	from := p.KingSquare[us]
	attacks := KingAttacks(from) & enemies
	for attacks != 0 {
		to := attacks.PopLSB()
		ml.Add(NewMove(from, to))
	}
}

// filterLegalMoves filters out illegal moves (those that leave king in check).
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.IsLegal(m) {
			result.Add(m)
		}
	}

	return result
}

// IsLegal returns true if the move is legal (doesn't leave king in check).
// Uses make/unmake for guaranteed correctness.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	ksq := p.KingSquare[us]

	// For king moves, check if destination is attacked
	if from == ksq {
		if m.IsCastling() {
			return true // Already validated in generation
		}
		// King moves: temporarily remove king and check destination
		occ := p.AllOccupied &^ SquareBB(from)
		return p.AttackersByColor(m.To(), them, occ) == 0
	}

	// For all other moves: actually make the move and check
	undo := p.MakeMove(m)
	if !undo.Valid {
		return false
	}

	// Check if OUR king is now attacked
	// After MakeMove, SideToMove is flipped, so "them" is now "us"
	attacked := p.IsSquareAttacked(ksq, them)

	// DEBUG: Log rejected moves
	if attacked {
		fmt.Printf("DEBUG: Move %v rejected - king on %v attacked by %v after move\n",
			m, ksq, them)
		// Show what's attacking the king
		attackers := p.AttackersByColor(ksq, them, p.AllOccupied)
		fmt.Printf("DEBUG: Attackers bitboard:\n%s\n", attackers.String())
	}

	p.UnmakeMove(m, undo)

	return !attacked
}

// MakeMove applies a move to the position and returns undo information.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
		PawnKey:        p.PawnKey,
		MinorKey:       p.MinorKey,
		MajorKey:       p.MajorKey,
		Checkers:       p.Checkers,
		Valid:          false,
	}

	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	piece := p.PieceAt(from)

	// Safety check - if no piece at from square, return without modifying position
	if piece == NoPiece {
		return undo
	}

	// Mark as valid since we have a piece and will apply the move
	undo.Valid = true
	pt := piece.Type()

	// Update hash for side to move
	p.Hash ^= zobristSideToMove

	// Update hash for castling rights (will be updated again below if they change)
	p.Hash ^= ZobristCastling(p.CastlingRights)

	// Update hash for en passant
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	// Clear en passant
	p.EnPassant = NoSquare

	if m.IsCastling() {
		p.makeCastle(us, from, to)
	} else {
		// Handle captures
		if m.IsEnPassant() {
			// En passant capture
			var capturedSq Square
			if us == White {
				capturedSq = to - 8
			} else {
				capturedSq = to + 8
			}
			undo.CapturedPiece = p.removePiece(capturedSq)
			p.Hash ^= zobristPiece[them][Pawn][capturedSq]
			p.toggleAuxKey(them, Pawn, capturedSq)
		} else if captured := p.PieceAt(to); captured != NoPiece {
			// Normal capture
			undo.CapturedPiece = captured
			p.removePiece(to)
			p.Hash ^= zobristPiece[them][captured.Type()][to]
			p.toggleAuxKey(them, captured.Type(), to)
		}

		// Move the piece
		p.movePiece(from, to)
		p.Hash ^= zobristPiece[us][pt][from]
		p.Hash ^= zobristPiece[us][pt][to]
		p.toggleAuxKey(us, pt, from)
		p.toggleAuxKey(us, pt, to)

		// Handle promotion
		if m.IsPromotion() {
			promoPt := m.Promotion()
			// Remove pawn, add promoted piece
			p.Pieces[us][Pawn] &^= SquareBB(to)
			p.Pieces[us][promoPt] |= SquareBB(to)
			p.Hash ^= zobristPiece[us][Pawn][to]
			p.Hash ^= zobristPiece[us][promoPt][to]
			// pt==Pawn above already toggled PawnKey for the pawn's arrival
			// at `to`; undo that and fold in the promoted piece instead.
			p.toggleAuxKey(us, Pawn, to)
			p.toggleAuxKey(us, promoPt, to)
		}
	}

	// Update castling rights. A king move loses both rights for its color;
	// a rook moving off (or being captured on) one of the recorded rook
	// files loses that specific right, covering both orthodox rook moves
	// and the castling move itself.
	if pt == King {
		p.CastlingRights.Short[us] = NoCastleFile
		p.CastlingRights.Long[us] = NoCastleFile
	}
	p.clearCastlingRightsAt(from)
	p.clearCastlingRightsAt(to)

	// Update hash for new castling rights
	p.Hash ^= ZobristCastling(p.CastlingRights)

	// Set en passant square for double pawn push
	if pt == Pawn && !m.IsCastling() && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.Hash ^= zobristEnPassant[epSquare.File()]
	}

	// Update half-move clock
	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	// Update full-move number
	if us == Black {
		p.FullMoveNumber++
	}

	// Switch side to move
	p.SideToMove = them

	// Update checkers
	p.UpdateCheckers()

	return undo
}

// makeCastle performs a castling move given as king-captures-rook: kingFrom
// is the king's square, rookFrom is the castling rook's square. Both pieces
// are lifted off the board before either is placed, so destinations that
// coincide with the pieces' own origin squares (common in Chess960) are
// handled correctly.
func (p *Position) makeCastle(us Color, kingFrom, rookFrom Square) {
	backRank := kingFrom.Rank()
	kingDestFile, rookDestFile := 2, 3
	if rookFrom.File() > kingFrom.File() {
		kingDestFile, rookDestFile = 6, 5
	}
	kingDest := NewSquare(kingDestFile, backRank)
	rookDest := NewSquare(rookDestFile, backRank)

	p.removePiece(kingFrom)
	p.removePiece(rookFrom)
	p.setPiece(NewPiece(King, us), kingDest)
	p.setPiece(NewPiece(Rook, us), rookDest)

	p.Hash ^= zobristPiece[us][King][kingFrom]
	p.Hash ^= zobristPiece[us][King][kingDest]
	p.Hash ^= zobristPiece[us][Rook][rookFrom]
	p.Hash ^= zobristPiece[us][Rook][rookDest]

	p.toggleAuxKey(us, King, kingFrom)
	p.toggleAuxKey(us, King, kingDest)
	p.toggleAuxKey(us, Rook, rookFrom)
	p.toggleAuxKey(us, Rook, rookDest)
}

// toggleAuxKey folds a piece placement/removal at sq into whichever of
// PawnKey/MinorKey/MajorKey the piece type contributes to. King squares
// fold into both minor and major keys (spec.md §3).
func (p *Position) toggleAuxKey(c Color, pt PieceType, sq Square) {
	switch pt {
	case Pawn:
		p.PawnKey ^= zobristPiece[c][Pawn][sq]
	case Knight, Bishop:
		p.MinorKey ^= zobristPiece[c][pt][sq]
	case Rook, Queen:
		p.MajorKey ^= zobristPiece[c][pt][sq]
	case King:
		p.MinorKey ^= zobristPiece[c][King][sq]
		p.MajorKey ^= zobristPiece[c][King][sq]
	}
}

// unmakeCastle reverses makeCastle. Hash is restored wholesale by the
// caller from undo information, so no hash bookkeeping is needed here.
func (p *Position) unmakeCastle(us Color, kingFrom, rookFrom Square) {
	backRank := kingFrom.Rank()
	kingDestFile, rookDestFile := 2, 3
	if rookFrom.File() > kingFrom.File() {
		kingDestFile, rookDestFile = 6, 5
	}
	kingDest := NewSquare(kingDestFile, backRank)
	rookDest := NewSquare(rookDestFile, backRank)

	p.removePiece(kingDest)
	p.removePiece(rookDest)
	p.setPiece(NewPiece(King, us), kingFrom)
	p.setPiece(NewPiece(Rook, us), rookFrom)
}

// clearCastlingRightsAt drops any castling right whose rook file matches
// sq, used when a rook moves off or is captured on its recorded square.
func (p *Position) clearCastlingRightsAt(sq Square) {
	file := int8(sq.File())
	switch sq.Rank() {
	case 0:
		if p.CastlingRights.Short[White] == file {
			p.CastlingRights.Short[White] = NoCastleFile
		}
		if p.CastlingRights.Long[White] == file {
			p.CastlingRights.Long[White] = NoCastleFile
		}
	case 7:
		if p.CastlingRights.Short[Black] == file {
			p.CastlingRights.Short[Black] = NoCastleFile
		}
		if p.CastlingRights.Long[Black] == file {
			p.CastlingRights.Long[Black] = NoCastleFile
		}
	}
}

// UnmakeMove undoes a move using the stored undo information.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	them := p.SideToMove
	us := them.Other()
	from := m.From()
	to := m.To()

	// Restore state
	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.PawnKey = undo.PawnKey
	p.MinorKey = undo.MinorKey
	p.MajorKey = undo.MajorKey
	p.Checkers = undo.Checkers
	p.SideToMove = us

	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsCastling() {
		p.unmakeCastle(us, from, to)
		return
	}

	// Handle promotion first (before moving piece back)
	if m.IsPromotion() {
		promoPt := m.Promotion()
		// Remove promoted piece, restore pawn
		p.Pieces[us][promoPt] &^= SquareBB(to)
		p.Pieces[us][Pawn] |= SquareBB(to)
	}

	// Move piece back
	p.movePiece(to, from)

	// Restore captured piece
	if undo.CapturedPiece != NoPiece {
		if m.IsEnPassant() {
			var capturedSq Square
			if us == White {
				capturedSq = to - 8
			} else {
				capturedSq = to + 8
			}
			p.setPiece(undo.CapturedPiece, capturedSq)
		} else {
			p.setPiece(undo.CapturedPiece, to)
		}
	}
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw returns true if the position is a draw (stalemate, 50-move, insufficient material).
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.HalfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	// If there are any pawns, rooks, or queens, sufficient material
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	// Count minor pieces
	wKnights := p.Pieces[White][Knight].PopCount()
	wBishops := p.Pieces[White][Bishop].PopCount()
	bKnights := p.Pieces[Black][Knight].PopCount()
	bBishops := p.Pieces[Black][Bishop].PopCount()

	// K vs K
	if wKnights+wBishops+bKnights+bBishops == 0 {
		return true
	}

	// K+minor vs K
	if wKnights+wBishops <= 1 && bKnights+bBishops == 0 {
		return true
	}
	if bKnights+bBishops <= 1 && wKnights+wBishops == 0 {
		return true
	}

	return false
}
