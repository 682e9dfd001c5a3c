package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	pos := &Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		pos.EnPassant = sq
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("invalid half-move clock: %s", parts[4])
		}
		pos.HalfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, fmt.Errorf("invalid full-move number: %s", parts[5])
		}
		pos.FullMoveNumber = fmn
	}

	// Update derived state
	pos.updateOccupied()
	pos.findKings()
	pos.Hash = pos.ComputeHash()
	pos.PawnKey = pos.ComputePawnKey()
	pos.MinorKey = pos.ComputeMinorKey()
	pos.MajorKey = pos.ComputeMajorKey()

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				// Skip empty squares
				file += int(c - '0')
			} else {
				// Place a piece
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return fmt.Errorf("invalid piece character: %c", c)
				}
				sq := NewSquare(file, rank)
				pos.setPiece(piece, sq)
				file++
			}
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
// Accepts both orthodox KQkq (resolved against the outermost rook on each
// side of the king) and Shredder-FEN file letters (AHah), the latter
// required to express Chess960/DFRC starts unambiguously.
func parseCastlingRights(pos *Position, castling string) error {
	pos.CastlingRights = NoCastling
	if castling == "-" {
		return nil
	}

	whiteKingFile := int8(pos.Pieces[White][King].LSB().File())
	blackKingFile := int8(pos.Pieces[Black][King].LSB().File())

	for _, c := range castling {
		switch {
		case c == 'K':
			file, ok := outermostRookFile(pos, White, 0, whiteKingFile, true)
			if !ok {
				return fmt.Errorf("no White kingside rook found for castling right K")
			}
			pos.CastlingRights.Short[White] = file
		case c == 'Q':
			file, ok := outermostRookFile(pos, White, 0, whiteKingFile, false)
			if !ok {
				return fmt.Errorf("no White queenside rook found for castling right Q")
			}
			pos.CastlingRights.Long[White] = file
		case c == 'k':
			file, ok := outermostRookFile(pos, Black, 7, blackKingFile, true)
			if !ok {
				return fmt.Errorf("no Black kingside rook found for castling right k")
			}
			pos.CastlingRights.Short[Black] = file
		case c == 'q':
			file, ok := outermostRookFile(pos, Black, 7, blackKingFile, false)
			if !ok {
				return fmt.Errorf("no Black queenside rook found for castling right q")
			}
			pos.CastlingRights.Long[Black] = file
		case c >= 'A' && c <= 'H':
			file := int8(c - 'A')
			if file > whiteKingFile {
				pos.CastlingRights.Short[White] = file
			} else {
				pos.CastlingRights.Long[White] = file
			}
		case c >= 'a' && c <= 'h':
			file := int8(c - 'a')
			if file > blackKingFile {
				pos.CastlingRights.Short[Black] = file
			} else {
				pos.CastlingRights.Long[Black] = file
			}
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}
	}

	return nil
}

// outermostRookFile finds the rook farthest from the king on the requested
// side (short = kingside), used to resolve orthodox KQkq notation against
// a back rank that might not be the classic orthodox layout.
func outermostRookFile(pos *Position, c Color, rank int, kingFile int8, short bool) (int8, bool) {
	rooks := pos.Pieces[c][Rook]
	found := false
	var best int8

	for rooks != 0 {
		sq := rooks.PopLSB()
		if sq.Rank() != rank {
			continue
		}
		file := int8(sq.File())
		if short && file > kingFile {
			if !found || file > best {
				best, found = file, true
			}
		} else if !short && file < kingFile {
			if !found || file < best {
				best, found = file, true
			}
		}
	}

	return best, found
}

// ToFEN returns the FEN representation of the position. Castling rights are
// written in Shredder notation (rook files) when chess960 is true, matching
// what a Chess960-aware GUI expects back, and rewritten to classic KQkq
// otherwise; ShredderToKQkq falls back to Shredder form if the rights don't
// resolve to corner rooks (a non-orthodox position reached while
// UCI_Chess960 is off).
func (p *Position) ToFEN(chess960 bool) string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteString(piece.String())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	if chess960 {
		sb.WriteString(p.CastlingRights.String())
	} else {
		sb.WriteString(ShredderToKQkq(p.CastlingRights))
	}

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}

// ComputeHash computes the Zobrist hash for the position from scratch,
// using the key tables initialized in zobrist.go.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	// Hash pieces
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= zobristPiece[c][pt][sq]
			}
		}
	}

	// Hash side to move
	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	// Hash castling rights
	hash ^= ZobristCastling(p.CastlingRights)

	// Hash en passant
	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	return hash
}

// ComputePawnKey computes the pawn hash key from scratch.
// Only includes pawn positions for pawn structure caching.
func (p *Position) ComputePawnKey() uint64 {
	var key uint64

	for c := White; c <= Black; c++ {
		bb := p.Pieces[c][Pawn]
		for bb != 0 {
			sq := bb.PopLSB()
			key ^= zobristPiece[c][Pawn][sq]
		}
	}

	return key
}

// ComputeMinorKey computes the minor-piece hash key from scratch: knights,
// bishops, and kings (spec.md §3's "minor (knights+bishops+king)" fold).
func (p *Position) ComputeMinorKey() uint64 {
	var key uint64

	for c := White; c <= Black; c++ {
		for _, pt := range [...]PieceType{Knight, Bishop, King} {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				key ^= zobristPiece[c][pt][sq]
			}
		}
	}

	return key
}

// ComputeMajorKey computes the major-piece hash key from scratch: rooks,
// queens, and kings (spec.md §3's "major (rooks+queens+king)" fold).
func (p *Position) ComputeMajorKey() uint64 {
	var key uint64

	for c := White; c <= Black; c++ {
		for _, pt := range [...]PieceType{Rook, Queen, King} {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				key ^= zobristPiece[c][pt][sq]
			}
		}
	}

	return key
}
