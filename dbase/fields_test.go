package dbase

import (
	"bytes"
	"testing"
)

// buildDescriptor encodes one 32-byte field descriptor record.
func buildDescriptor(name string, typ byte, length, decimals byte) []byte {
	buf := make([]byte, 32)
	copy(buf[0:11], name)
	buf[11] = typ
	buf[16] = length
	buf[17] = decimals
	return buf
}

// buildDescriptorFlagged is buildDescriptor plus an explicit column flags byte.
func buildDescriptorFlagged(name string, typ byte, length, decimals, flags byte) []byte {
	buf := buildDescriptor(name, typ, length, decimals)
	buf[18] = flags
	return buf
}

func TestDecodeFields(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 32)) // header prologue, unread by decodeFields
	buf.Write(buildDescriptor("NAME", 'C', 20, 0))
	buf.Write(buildDescriptor("AMOUNT", 'N', 10, 2))
	buf.WriteByte(byte(DescriptorEnd))

	fields, err := decodeFields(bytes.NewReader(buf.Bytes()), 32+32*2+1)
	if err != nil {
		t.Fatalf("[TEST] decodeFields failed #1 - Error: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("[TEST] decodeFields failed #2 - expected 2 fields, got %d", len(fields))
	}
	if fields[0].Name != "NAME" || fields[0].Type != Character || fields[0].Length != 20 {
		t.Errorf("[TEST] decodeFields failed #3 - got %+v", fields[0])
	}
	if fields[0].Offset != 1 {
		t.Errorf("[TEST] decodeFields failed #4 - expected offset 1, got %d", fields[0].Offset)
	}
	if fields[1].Offset != 21 {
		t.Errorf("[TEST] decodeFields failed #5 - expected offset 21, got %d", fields[1].Offset)
	}
	if got := RecordLength(fields); got != 31 {
		t.Errorf("[TEST] RecordLength failed - expected 31, got %d", got)
	}
}

func TestDecodeFieldsUnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 32))
	buf.Write(buildDescriptor("BAD", 'X', 5, 0))
	buf.WriteByte(byte(DescriptorEnd))

	_, err := decodeFields(bytes.NewReader(buf.Bytes()), 32+32+1)
	if _, ok := err.(*UnsupportedFieldTypeError); !ok {
		t.Fatalf("[TEST] decodeFields failed - expected *UnsupportedFieldTypeError, got %v (%T)", err, err)
	}
}

func TestDecodeFieldsHiddenColumnSurvivesUnknownType(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 32))
	buf.Write(buildDescriptor("NAME", 'C', 20, 0))
	buf.Write(buildDescriptor("_NullFlags", 0x00, 1, 0)) // system column, non-letter type tag
	buf.WriteByte(byte(DescriptorEnd))

	fields, err := decodeFields(bytes.NewReader(buf.Bytes()), 32+32*2+1)
	if err != nil {
		t.Fatalf("[TEST] decodeFields failed #1 - expected success for hidden column, Error: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("[TEST] decodeFields failed #2 - expected 2 fields, got %d", len(fields))
	}
	if !fields[1].Hidden() {
		t.Errorf("[TEST] decodeFields failed #3 - expected _NullFlags descriptor to report Hidden()")
	}
}

func TestDecodeFieldsHiddenFlagSurvivesUnknownType(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 32))
	buf.Write(buildDescriptorFlagged("SYS", 0x00, 1, 0, byte(HiddenFlag)))
	buf.WriteByte(byte(DescriptorEnd))

	fields, err := decodeFields(bytes.NewReader(buf.Bytes()), 32+32+1)
	if err != nil {
		t.Fatalf("[TEST] decodeFields failed #1 - expected success for hidden-flagged column, Error: %v", err)
	}
	if len(fields) != 1 || !fields[0].Hidden() {
		t.Fatalf("[TEST] decodeFields failed #2 - expected one Hidden() descriptor, got %+v", fields)
	}
}

func TestDecodeFieldsBoundedByHeaderLength(t *testing.T) {
	// A corrupt header claims the descriptor table ends right after the
	// first descriptor, well before the real 0x0D terminator. decodeFields
	// must stop at that bound rather than scanning on into record bytes
	// looking for a terminator.
	var buf bytes.Buffer
	buf.Write(make([]byte, 32))
	buf.Write(buildDescriptor("NAME", 'C', 20, 0))
	buf.Write(buildDescriptor("AMOUNT", 'N', 10, 2))
	buf.WriteByte(byte(DescriptorEnd))

	fields, err := decodeFields(bytes.NewReader(buf.Bytes()), 32+32+1)
	if err != nil {
		t.Fatalf("[TEST] decodeFields failed #1 - Error: %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("[TEST] decodeFields failed #2 - expected scan bounded to 1 descriptor, got %d", len(fields))
	}
}
