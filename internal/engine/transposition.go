package engine

import (
	"sync/atomic"

	"github.com/corvidchess/corvid/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// Packed layout of a TT entry's data word: depth(8) | staticEval(16) |
// score(16) | move(16) | flag(2) | pv(1) | age(5) = 64 bits.
const (
	ttDepthShift  = 0
	ttEvalShift   = 8
	ttScoreShift  = 24
	ttMoveShift   = 40
	ttFlagShift   = 56
	ttPVShift     = 58
	ttAgeShift    = 59
	ttDepthMask   = 0xFF
	ttEvalMask    = 0xFFFF
	ttScoreMask   = 0xFFFF
	ttMoveMask    = 0xFFFF
	ttFlagMask    = 0x3
	ttPVMask      = 0x1
	ttAgeMask     = 0x1F
)

func packTTData(depth int8, staticEval, score int16, move board.Move, flag TTFlag, pv bool, age uint8) uint64 {
	var pvBit uint64
	if pv {
		pvBit = 1
	}
	return uint64(uint8(depth))<<ttDepthShift |
		uint64(uint16(staticEval))<<ttEvalShift |
		uint64(uint16(score))<<ttScoreShift |
		uint64(uint16(move))<<ttMoveShift |
		uint64(flag)<<ttFlagShift |
		pvBit<<ttPVShift |
		uint64(age&ttAgeMask)<<ttAgeShift
}

// TTEntry is the value read back from a Probe: the unpacked contents of one
// transposition table slot.
type TTEntry struct {
	BestMove   board.Move
	StaticEval int16
	Score      int16
	Depth      int8
	Flag       TTFlag
	Age        uint8
	IsPV       bool
}

func unpackTTEntry(data uint64) TTEntry {
	return TTEntry{
		Depth:      int8((data >> ttDepthShift) & ttDepthMask),
		StaticEval: int16((data >> ttEvalShift) & ttEvalMask),
		Score:      int16((data >> ttScoreShift) & ttScoreMask),
		BestMove:   board.Move((data >> ttMoveShift) & ttMoveMask),
		Flag:       TTFlag((data >> ttFlagShift) & ttFlagMask),
		IsPV:       (data>>ttPVShift)&ttPVMask != 0,
		Age:        uint8((data >> ttAgeShift) & ttAgeMask),
	}
}

// ttSlot is one lock-free transposition table entry: two 64-bit words, the
// packed data and the hash XORed with that data. A reader reconstructs the
// hash by XORing the two words back together; any torn read from a
// concurrent writer fails the comparison against the probed hash with
// overwhelming probability and is treated as a miss rather than corrupted
// data. This is the classic "XOR trick" for lock-free hash tables and is
// what lets every worker share one TT without a mutex.
type ttSlot struct {
	keyXorData atomic.Uint64
	data       atomic.Uint64
}

// TranspositionTable is a lock-free hash table for storing search results,
// shared by every search worker (spec.md §4.4/§5).
type TranspositionTable struct {
	entries []ttSlot
	size    uint64
	mask    uint64
	age     atomic.Uint32

	// Statistics (approximate under concurrent access; used only for UCI info)
	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	entrySize := uint64(16) // two 64-bit words per slot
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize

	numEntries = roundDownToPowerOf2(numEntries)
	if numEntries == 0 {
		numEntries = 1
	}

	return &TranspositionTable{
		entries: make([]ttSlot, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position in the transposition table. Returns the entry
// and true if found, otherwise returns an empty entry and false. Lock-free:
// both words are loaded with relaxed atomics and verified by XOR.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes.Add(1)

	idx := hash & tt.mask
	slot := &tt.entries[idx]

	data := slot.data.Load()
	keyXorData := slot.keyXorData.Load()

	if keyXorData^data != hash {
		return TTEntry{}, false
	}

	tt.hits.Add(1)
	return unpackTTEntry(data), true
}

// Store saves a position in the transposition table. isPV marks whether the
// node that produced this result was searched with an open window.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move, isPV bool) {
	tt.StoreWithEval(hash, depth, 0, score, flag, bestMove, isPV)
}

// StoreWithEval is Store plus the node's static evaluation, packed into the
// entry so a later probe can reuse it without recomputing (spec.md §4.4).
func (tt *TranspositionTable) StoreWithEval(hash uint64, depth, staticEval, score int, flag TTFlag, bestMove board.Move, isPV bool) {
	idx := hash & tt.mask
	slot := &tt.entries[idx]

	age := uint8(tt.age.Load() & ttAgeMask)

	// Replacement: keep the slot only if it already holds this position from
	// the current search at a greater depth; an empty slot, a stale entry, or
	// an entry for a different position is always overwritten.
	old := slot.data.Load()
	oldKeyXor := slot.keyXorData.Load()
	if oldKeyXor^old == hash {
		existing := unpackTTEntry(old)
		if existing.Age == age && depth < int(existing.Depth) {
			return
		}
	}

	data := packTTData(int8(depth), int16(staticEval), int16(score), bestMove, flag, isPV, age)
	slot.data.Store(data)
	slot.keyXorData.Store(hash ^ data)
}

// NewSearch increments the age counter for a new search.
// This helps with replacement decisions.
func (tt *TranspositionTable) NewSearch() {
	tt.age.Add(1)
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i].data.Store(0)
		tt.entries[i].keyXorData.Store(0)
	}
	tt.age.Store(0)
	tt.hits.Store(0)
	tt.probes.Store(0)
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (tt *TranspositionTable) HashFull() int {
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}

	age := uint8(tt.age.Load() & ttAgeMask)
	for i := 0; i < sampleSize; i++ {
		data := tt.entries[i].data.Load()
		if data == 0 {
			continue
		}
		entry := unpackTTEntry(data)
		if entry.Depth > 0 && entry.Age == age {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	probes := tt.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(tt.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// AdjustScoreFromTT adjusts a score read from the transposition table.
// Mate scores need to be adjusted based on ply distance.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a score for storage in the transposition table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
