package dbase

import (
	"encoding/binary"
	"io"
	"time"
)

// Header is the fixed 32-byte prologue of a dBase-family table: dialect
// signature, last-modified date, record count, and the two offsets that
// let the field descriptor table and record scanner find their data.
// https://docs.microsoft.com/en-us/previous-versions/visualstudio/foxpro/st4a0s68(v=vs.80)
type Header struct {
	Dialect      Dialect
	Signature    byte
	Year         uint8 // last-modified year, stored as year-1900
	Month        uint8
	Day          uint8
	RecordCount  uint32
	HeaderLength uint16 // offset of the first record, i.e. bytes consumed by header + descriptors + terminator
	RecordLength uint16 // bytes per record, including the leading deletion-mark byte
	TableFlags   byte
	CodePage     byte
}

// rawHeader mirrors the on-disk layout byte for byte so it can be read with
// a single binary.Read instead of twelve individual reads.
type rawHeader struct {
	Signature    byte
	Year         uint8
	Month        uint8
	Day          uint8
	RecordCount  uint32
	HeaderLength uint16
	RecordLength uint16
	Reserved     [16]byte
	TableFlags   byte
	CodePage     byte
	Reserved2    [2]byte
}

// decodeHeader reads the 32-byte prologue from the start of r and classifies
// its dialect. Returns an *UnsupportedVersionError if the signature byte is
// not recognized.
func decodeHeader(r io.ReadSeeker) (*Header, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, wrapf("dbase-header-decode-1", err)
	}
	var raw rawHeader
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, wrapf("dbase-header-decode-2", ErrIncomplete)
		}
		return nil, wrapf("dbase-header-decode-2", err)
	}

	dialect, ok := ClassifyDialect(raw.Signature)
	if !ok {
		return nil, &UnsupportedVersionError{Byte: raw.Signature}
	}

	return &Header{
		Dialect:      dialect,
		Signature:    raw.Signature,
		Year:         raw.Year,
		Month:        raw.Month,
		Day:          raw.Day,
		RecordCount:  raw.RecordCount,
		HeaderLength: raw.HeaderLength,
		RecordLength: raw.RecordLength,
		TableFlags:   raw.TableFlags,
		CodePage:     raw.CodePage,
	}, nil
}

// Modified returns the last-modified date as a time.Time. The on-disk year
// is stored relative to a base century; callers decide the base (spec
// leaves behavior beyond the 1900+255 wrap boundary undefined) by passing
// it as base, and a base of 0 means 1900.
func (h *Header) Modified(base int) time.Time {
	if base == 0 {
		base = 1900
	}
	return time.Date(base+int(h.Year), time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.UTC)
}

// HasMemo reports whether the table flags claim an associated memo file.
func (h *Header) HasMemo() bool {
	return h.TableFlags&byte(MemoFlag) != 0
}

// TableFlag mirrors the flag byte stored in the header, indicating the
// presence of structural, memo, or database-container features.
type TableFlag byte

const (
	StructuralFlag TableFlag = 0x01
	MemoFlag       TableFlag = 0x02
	DatabaseFlag   TableFlag = 0x04
)

// MemoHeader is the fixed prologue of a .dbt/.fpt side file.
type MemoHeader struct {
	NextFree  uint32
	BlockSize uint16
}
