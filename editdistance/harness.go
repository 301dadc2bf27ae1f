package editdistance

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// Buffer and locale-set limits. Chosen to hold the expected output of
// folding a BCP47-like locale tag or display name (e.g. "en-US" /
// "English (United States)").
const (
	MaxBufSize       = 256
	MaxLocales       = 200
	MaxTagCodeUnits  = 12
	MaxNameCodeUnits = 40
	MaxCodeUnits     = MaxNameCodeUnits

	// tagBufCodeUnits accommodates the synthetic script-subtag insertion
	// LoadLocale performs for tags that lack one ("\x00\x00\x00\x00-" is
	// five code units longer than the original tag).
	tagBufCodeUnits = MaxTagCodeUnits + 5
)

type userLocale struct {
	tag     [tagBufCodeUnits]uint16
	name    [MaxNameCodeUnits]uint16
	tagLen  uint8
	nameLen uint8
}

// Harness scores a query string against a fixed set of loaded locales by
// edit distance, using a 256-byte bidirectional buffer the same way the
// original WebAssembly module's embedder does: pack UTF-16LE code units
// in, call a method, read u8 results back out of the same buffer.
//
// It is not safe for concurrent use — like the original, one Harness
// serves one caller at a time.
type Harness struct {
	buf     [MaxBufSize]byte
	locales [MaxLocales]userLocale
	idxs    [MaxCodeUnits]uint8
	count   int

	memoValid   bool
	memoKey     uint64
	memoResults []uint8
}

// NewHarness creates an empty Harness.
func NewHarness() *Harness {
	return &Harness{}
}

// GetBufPtr returns the bidirectional buffer callers pack UTF-16LE data
// into (and, after RunQuery, read u8 scores back out of). On first call it
// lazily builds the reusable all-BMP index map shared by every loaded
// locale's tag and display name.
func (h *Harness) GetBufPtr() []byte {
	if h.idxs[0] == 0 {
		for i := range h.idxs {
			h.idxs[i] = uint8(i + 1)
		}
	}
	return h.buf[:]
}

// Reset clears the loaded locale set.
func (h *Harness) Reset() {
	h.count = 0
	h.invalidateMemo()
}

func hasScriptSubtag(buf []byte, tagLen uint8) bool {
	hyphens := 0
	for i := uint8(0); i < tagLen; i++ {
		if buf[2*i] == '-' && buf[2*i+1] == 0 {
			hyphens++
		}
	}
	return hyphens > 1
}

// LoadLocale loads the locale tag and display name currently packed into
// the buffer (tagLen and nameLen code units respectively, tag first) as
// the next locale to score against future queries.
//
// Locale tags lacking a script subtag (e.g. "az-AZ") can score
// problematically close to queries compared to tags that have one (e.g.
// "az-Cyrl-AZ"); a synthetic "\x00\x00\x00\x00-" subtag is inserted into
// such tags before scoring to correct for this.
func (h *Harness) LoadLocale(tagLen, nameLen uint8) {
	locale := &h.locales[h.count]
	h.count++

	offset := int(tagLen) * 2
	buf := h.buf[:]

	if hasScriptSubtag(buf, tagLen) {
		for i := 0; i < int(tagLen); i++ {
			locale.tag[i] = binary.LittleEndian.Uint16(buf[2*i:])
		}
	} else {
		ti := 0
		for i := 0; i < int(tagLen); i++ {
			lo := uint16(buf[2*i])
			hi := uint16(buf[2*i+1])
			locale.tag[ti] = (hi << 8) | lo
			ti++
			if lo == '-' && hi == 0 {
				for j := 0; j < 4; j++ {
					locale.tag[ti] = 0
					ti++
				}
				locale.tag[ti] = '-'
				ti++
			}
		}
		tagLen += 5
	}

	for i := 0; i < int(nameLen); i++ {
		locale.name[i] = binary.LittleEndian.Uint16(buf[offset+2*i:])
	}

	locale.tagLen = tagLen
	locale.nameLen = nameLen

	h.invalidateMemo()
}

func (h *Harness) invalidateMemo() {
	h.memoValid = false
}

func (h *Harness) memoKeyFor(queryBytes []byte) uint64 {
	d := xxhash.New()
	d.Write(queryBytes)
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], uint64(h.count))
	d.Write(countBuf[:])
	return d.Sum64()
}

// RunQuery scores the query string currently packed into the buffer
// (length code units) against every loaded locale, writing the lesser of
// editdistance(query, tag) and editdistance(query, name) for each locale,
// in load order, back into the buffer as u8 and returning that slice.
//
// Repeating the identical query against an unchanged locale set skips
// recomputation entirely via a small memo keyed on the query bytes and
// locale count; LoadLocale and Reset invalidate it.
func (h *Harness) RunQuery(length uint8) []uint8 {
	var query [MaxCodeUnits]uint16
	for i := 0; i < int(length); i++ {
		query[i] = binary.LittleEndian.Uint16(h.buf[2*i:])
	}

	key := h.memoKeyFor(h.buf[:2*int(length)])
	if h.memoValid && h.memoKey == key {
		copy(h.buf[:h.count], h.memoResults)
		return h.buf[:h.count]
	}

	var queryIdxs [MaxCodeUnits]uint8
	queryLen := MakeIdxs(query[:length], length, queryIdxs[:])

	for i := 0; i < h.count; i++ {
		locale := &h.locales[i]
		tagScore := Calc(query[:queryLen], queryIdxs[:queryLen], int(queryLen),
			locale.tag[:locale.tagLen], h.idxs[:], int(locale.tagLen))
		nameScore := Calc(query[:queryLen], queryIdxs[:queryLen], int(queryLen),
			locale.name[:locale.nameLen], h.idxs[:], int(locale.nameLen))
		h.buf[i] = min8(tagScore, nameScore)
	}

	h.memoKey = key
	h.memoValid = true
	h.memoResults = append(h.memoResults[:0], h.buf[:h.count]...)

	return h.buf[:h.count]
}
