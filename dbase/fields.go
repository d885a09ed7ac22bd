package dbase

import (
	"bytes"
	"io"
)

// Descriptor describes one field of the table: its name, declared type,
// length in bytes, and its offset within a record frame. Offset is a
// running sum over preceding descriptors, starting at 1 to account for the
// leading deletion-mark byte that occupies offset 0.
type Descriptor struct {
	Name     string
	Type     FieldType
	Length   uint8
	Decimals uint8
	Flags    byte
	Offset   uint16
}

// Hidden reports whether this descriptor is a bookkeeping column (such as
// Visual FoxPro's "_NullFlags") rather than user data.
func (d Descriptor) Hidden() bool {
	return ColumnFlag(d.Flags).Has(HiddenFlag) || d.Name == "_NullFlags"
}

// decodeFields reads the descriptor table starting at offset 32, bounded to
// exactly headerLength-32 bytes (the span spec.md §4.3 names), stopping
// early if a descriptor begins with the 0x0D terminator. A descriptor whose
// type character is unrecognized only fails the whole table open with
// *UnsupportedFieldTypeError when the descriptor also isn't a hidden/system
// column (by name or flag); a hidden column with a non-standard type byte is
// kept as-is and skipped by callers via Descriptor.Hidden, mirroring the
// teacher's name-check-first handling of "_NullFlags".
func decodeFields(r io.ReadSeeker, headerLength uint16) ([]Descriptor, error) {
	if _, err := r.Seek(32, io.SeekStart); err != nil {
		return nil, wrapf("dbase-fields-decode-1", err)
	}
	lr := &io.LimitedReader{R: r, N: int64(headerLength) - 32}

	var descriptors []Descriptor
	buf := make([]byte, 32)
	var offset uint16 = 1

	for {
		n, err := io.ReadFull(lr, buf[:1])
		if err != nil || n == 0 {
			if err == io.EOF {
				break
			}
			return nil, wrapf("dbase-fields-decode-2", err)
		}
		if buf[0] == byte(DescriptorEnd) {
			break
		}
		if _, err := io.ReadFull(lr, buf[1:]); err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				break
			}
			return nil, wrapf("dbase-fields-decode-3", err)
		}

		name := string(bytes.TrimRight(buf[0:11], "\x00"))
		length := buf[16]
		decimals := buf[17]
		flags := buf[18]
		hidden := ColumnFlag(flags).Has(HiddenFlag) || name == "_NullFlags"

		fieldType, ok := ParseFieldType(buf[11])
		if !ok {
			if !hidden {
				return nil, &UnsupportedFieldTypeError{Type: buf[11]}
			}
			fieldType = FieldType(buf[11])
		}

		descriptors = append(descriptors, Descriptor{
			Name:     name,
			Type:     fieldType,
			Length:   length,
			Decimals: decimals,
			Flags:    flags,
			Offset:   offset,
		})
		offset += uint16(length)
	}

	return descriptors, nil
}

// RecordLength returns 1 + the sum of every descriptor's length, i.e. the
// expected header.RecordLength for a well-formed table (invariant 1 of the
// format's testable properties).
func RecordLength(descriptors []Descriptor) uint16 {
	var total uint16 = 1
	for _, d := range descriptors {
		total += uint16(d.Length)
	}
	return total
}
