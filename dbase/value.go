package dbase

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/carlosjhr64/jd"
)

// ValueKind tags which variant of Value is populated.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindCharacter
	KindDate
	KindTimestamp
	KindNumeric
	KindFloat
	KindInteger
	KindLogical
	KindMemo
	KindBinary
	KindGeneral
)

func (k ValueKind) String() string {
	switch k {
	case KindCharacter:
		return "Character"
	case KindDate:
		return "Date"
	case KindTimestamp:
		return "Timestamp"
	case KindNumeric:
		return "Numeric"
	case KindFloat:
		return "Float"
	case KindInteger:
		return "Integer"
	case KindLogical:
		return "Logical"
	case KindMemo:
		return "Memo"
	case KindBinary:
		return "Binary"
	case KindGeneral:
		return "General"
	default:
		return "Null"
	}
}

// Date is a calendar date with no time-of-day component.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

// Timestamp is a date plus a time-of-day with whole-second resolution.
// Visual FoxPro stores sub-second milliseconds on disk; per the format's
// documented fidelity loss those are discarded here, matching the source
// this decoder is based on.
type Timestamp struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// Value is a closed tagged union over every field value a record can hold.
// Only the field selected by Kind is meaningful; the accessor methods below
// are the supported way to read it.
type Value struct {
	Kind  ValueKind
	str   string
	f64   float64
	i32   int32
	b     bool
	bytes []byte
	date  Date
	ts    Timestamp
}

func nullValue() Value { return Value{Kind: KindNull} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// String returns the value's text for Character and Memo variants, and
// ok=false for anything else (Date and Timestamp included).
func (v Value) String() (string, bool) {
	switch v.Kind {
	case KindCharacter, KindMemo:
		return v.str, true
	default:
		return "", false
	}
}

func (v Value) Float64() (float64, bool) {
	if v.Kind == KindNumeric || v.Kind == KindFloat {
		return v.f64, true
	}
	return 0, false
}

func (v Value) Int32() (int32, bool) {
	if v.Kind == KindInteger {
		return v.i32, true
	}
	return 0, false
}

func (v Value) Bool() (bool, bool) {
	if v.Kind == KindLogical {
		return v.b, true
	}
	return false, false
}

func (v Value) Bytes() ([]byte, bool) {
	if v.Kind == KindBinary || v.Kind == KindGeneral {
		return v.bytes, true
	}
	return nil, false
}

func (v Value) Date() (Date, bool) {
	if v.Kind == KindDate {
		return v.date, true
	}
	return Date{}, false
}

func (v Value) Timestamp() (Timestamp, bool) {
	if v.Kind == KindTimestamp {
		return v.ts, true
	}
	return Timestamp{}, false
}

// memoSource resolves a memo block index to its payload bytes; whether they
// are treated as text (Memo) or raw bytes (Binary/General) is decided by
// decodeMemo from the field type. Implemented by *MemoReader.
type memoSource interface {
	Read(index uint32) (data []byte, err error)
}

// decodeValue decodes one field from raw, the descriptor's slice of the
// current record buffer. memo may be nil, in which case Memo/Binary/General
// fields decode to Null unless opts.StrictMemo is set.
func decodeValue(d Descriptor, raw []byte, memo memoSource, opts Options) (Value, error) {
	if isBlank(raw) {
		return nullValue(), nil
	}

	switch d.Type {
	case Logical:
		return decodeLogical(raw), nil
	case Character:
		return decodeCharacter(raw), nil
	case Numeric:
		return decodeDecimal(d, raw, KindNumeric)
	case Float:
		return decodeDecimal(d, raw, KindFloat)
	case Integer:
		return decodeInteger(d, raw)
	case Date:
		return decodeDate(d, raw)
	case Timestamp:
		return decodeTimestamp(d, raw)
	case Memo:
		return decodeMemo(d, raw, memo, opts, true, KindMemo)
	case Binary:
		return decodeMemo(d, raw, memo, opts, false, KindBinary)
	case General:
		return decodeMemo(d, raw, memo, opts, false, KindGeneral)
	default:
		return Value{}, &UnsupportedFieldTypeError{Type: byte(d.Type)}
	}
}

// isBlank implements the null-detection rule: the descriptor's byte range
// is entirely ASCII spaces or entirely nul.
func isBlank(raw []byte) bool {
	if len(raw) == 0 {
		return true
	}
	allSpace, allNul := true, true
	for _, b := range raw {
		if b != 0x20 {
			allSpace = false
		}
		if b != 0x00 {
			allNul = false
		}
		if !allSpace && !allNul {
			return false
		}
	}
	return true
}

func decodeLogical(raw []byte) Value {
	switch raw[0] {
	case 'T', 't', 'Y', 'y':
		return Value{Kind: KindLogical, b: true}
	case 'F', 'f', 'N', 'n':
		return Value{Kind: KindLogical, b: false}
	default:
		return nullValue()
	}
}

func decodeCharacter(raw []byte) Value {
	s := strings.TrimSpace(toUTF8(raw))
	return Value{Kind: KindCharacter, str: s}
}

func toUTF8(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "�")
}

func decodeDecimal(d Descriptor, raw []byte, kind ValueKind) (Value, error) {
	trimmed := strings.TrimSpace(toUTF8(raw))
	if trimmed == "" {
		return nullValue(), nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Value{}, &FieldParseError{Field: d.Name, Type: d.Type, Cause: err}
	}
	return Value{Kind: kind, f64: f}, nil
}

func decodeInteger(d Descriptor, raw []byte) (Value, error) {
	if len(raw) != 4 {
		return Value{}, &FieldParseError{Field: d.Name, Type: d.Type, Cause: ErrIncomplete}
	}
	u := binary.BigEndian.Uint32(raw)
	return Value{Kind: KindInteger, i32: int32(u)}, nil
}

func decodeDate(d Descriptor, raw []byte) (Value, error) {
	if len(raw) != 8 {
		return Value{}, &FieldParseError{Field: d.Name, Type: d.Type, Cause: ErrIncomplete}
	}
	y, err := strconv.Atoi(string(raw[0:4]))
	if err != nil {
		return Value{}, &FieldParseError{Field: d.Name, Type: d.Type, Cause: err}
	}
	m, err := strconv.Atoi(string(raw[4:6]))
	if err != nil {
		return Value{}, &FieldParseError{Field: d.Name, Type: d.Type, Cause: err}
	}
	day, err := strconv.Atoi(string(raw[6:8]))
	if err != nil {
		return Value{}, &FieldParseError{Field: d.Name, Type: d.Type, Cause: err}
	}
	return Value{Kind: KindDate, date: Date{Year: uint16(y), Month: uint8(m), Day: uint8(day)}}, nil
}

func decodeTimestamp(d Descriptor, raw []byte) (Value, error) {
	if len(raw) != 8 {
		return Value{}, &FieldParseError{Field: d.Name, Type: d.Type, Cause: ErrIncomplete}
	}
	jdn := int(binary.LittleEndian.Uint32(raw[0:4]))
	msec := int(binary.LittleEndian.Uint32(raw[4:8]))

	y, m, day := jd.J2YMD(jdn)

	hour := msec / 3_600_000
	msec -= hour * 3_600_000
	minute := msec / 60_000
	msec -= minute * 60_000
	second := msec / 1_000

	return Value{Kind: KindTimestamp, ts: Timestamp{
		Year: uint16(y), Month: uint8(m), Day: uint8(day),
		Hour: uint8(hour), Minute: uint8(minute), Second: uint8(second),
	}}, nil
}

func decodeMemo(d Descriptor, raw []byte, memo memoSource, opts Options, text bool, kind ValueKind) (Value, error) {
	index, err := memoIndex(raw)
	if err != nil {
		return Value{}, &FieldParseError{Field: d.Name, Type: d.Type, Cause: err}
	}

	if memo == nil {
		if opts.StrictMemo {
			return Value{}, ErrMissingMemoFile
		}
		return nullValue(), nil
	}

	data, err := memo.Read(index)
	if err != nil {
		return Value{}, &FieldParseError{Field: d.Name, Type: d.Type, Cause: err}
	}

	if text && kind == KindMemo {
		return Value{Kind: KindMemo, str: toUTF8(data)}, nil
	}
	return Value{Kind: kind, bytes: data}, nil
}

// memoIndex parses a memo field's raw bytes into a block index. Per the
// format, the range is either exactly 4 bytes (little-endian uint32) or
// longer (ASCII decimal, possibly space-padded).
func memoIndex(raw []byte) (uint32, error) {
	if len(raw) == 4 {
		return binary.LittleEndian.Uint32(raw), nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
