package dbase

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
)

// MemoReader resolves memo block indices to payloads from a side file
// (.dbt for dBase III, .fpt for everything else). It owns the side file's
// handle and seek position exclusively; a record is fully decoded
// (including any memo resolution it requires) before the next record frame
// is read, because resolving a memo mutates this reader's seek position.
type MemoReader struct {
	r         io.ReadSeeker
	dialect   Dialect
	blockSize uint32
}

// newMemoReader determines the side file's block size per dialect and
// constructs a reader over it.
func newMemoReader(r io.ReadSeeker, dialect Dialect) (*MemoReader, error) {
	blockSize, err := memoBlockSize(r, dialect)
	if err != nil {
		return nil, err
	}
	return &MemoReader{r: r, dialect: dialect, blockSize: blockSize}, nil
}

// memoBlockSize reads the side file's header and determines the block size
// using the dialect-specific rule in §4.5 of the format.
func memoBlockSize(r io.ReadSeeker, dialect Dialect) (uint32, error) {
	switch dialect {
	case DBase3:
		return 512, nil
	case DBase4:
		if _, err := r.Seek(4, io.SeekStart); err != nil {
			return 0, wrapf("dbase-memo-blocksize-1", err)
		}
		var size uint16
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return 0, wrapf("dbase-memo-blocksize-2", err)
		}
		if size == 0 {
			return 512, nil
		}
		return uint32(size), nil
	default: // FoxBase, FoxPro2, VisualFoxPro
		if _, err := r.Seek(8, io.SeekStart); err != nil {
			return 0, wrapf("dbase-memo-blocksize-3", err)
		}
		var size uint16
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return 0, wrapf("dbase-memo-blocksize-4", err)
		}
		return uint32(size), nil
	}
}

// Read resolves the memo at block index and returns its payload. The
// returned bytes are text for Memo fields or raw for Binary/General fields;
// the caller (decodeValue) decides which based on the field's declared
// type, not on anything in the side file itself, except for DBase3 where
// the payload is always text.
func (m *MemoReader) Read(index uint32) ([]byte, error) {
	switch m.dialect {
	case DBase3:
		return m.readDBase3(index)
	case DBase4:
		return m.readLengthPrefixed(index, binary.LittleEndian)
	default:
		return m.readLengthPrefixed(index, binary.BigEndian)
	}
}

// readDBase3 reads forward in block-sized chunks from the given block index
// until the 0x1A terminator appears; there is no explicit length prefix.
func (m *MemoReader) readDBase3(index uint32) ([]byte, error) {
	if _, err := m.r.Seek(int64(index)*int64(m.blockSize), io.SeekStart); err != nil {
		return nil, wrapf("dbase-memo-read-dbase3-1", err)
	}

	br := bufio.NewReader(m.r)
	var buf bytes.Buffer
	chunk := make([]byte, m.blockSize)
	for {
		n, err := br.Read(chunk)
		if n > 0 {
			if i := bytes.IndexByte(chunk[:n], byte(EOFMarker)); i >= 0 {
				buf.Write(chunk[:i])
				return buf.Bytes(), nil
			}
			buf.Write(chunk[:n])
		}
		if err != nil {
			if err == io.EOF {
				return buf.Bytes(), nil
			}
			return nil, wrapf("dbase-memo-read-dbase3-2", err)
		}
	}
}

// readLengthPrefixed handles the DBase4 (little-endian) and
// FoxBase/FoxPro2/VisualFoxPro (big-endian) layouts: 4 reserved bytes
// (a type tag the core does not interpret) followed by a 32-bit length and
// exactly that many payload bytes.
func (m *MemoReader) readLengthPrefixed(index uint32, order binary.ByteOrder) ([]byte, error) {
	if _, err := m.r.Seek(int64(index)*int64(m.blockSize), io.SeekStart); err != nil {
		return nil, wrapf("dbase-memo-read-lp-1", err)
	}

	var head [8]byte
	if _, err := io.ReadFull(m.r, head[:]); err != nil {
		return nil, wrapf("dbase-memo-read-lp-2", ErrIncomplete)
	}
	length := order.Uint32(head[4:8])
	if length == 0 {
		return []byte{}, nil
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(m.r, data); err != nil {
		return nil, wrapf("dbase-memo-read-lp-3", ErrIncomplete)
	}
	return data, nil
}
