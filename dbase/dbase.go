// Package dbase reads legacy dBase-family tabular files: the .dbf format
// used by dBase III/IV, FoxBase, FoxPro 2, and Visual FoxPro, together with
// their associated memo side-files (.dbt/.fpt). It exposes rows either as a
// dynamic name-to-value stream (ReadValues) or bound into a caller-supplied
// struct shape (ReadTyped).
//
// The package is read-only: it does not write tables, memo files, or index
// files, and it does not manage concurrent access to a single handle beyond
// the advisory exclusive lock offered by WithExclusive.
package dbase

import (
	"os"
	"strings"
)

// Table is an opened dBase table: its header, field descriptors, and
// (optionally) its memo side file. Table owns its file handles exclusively
// for the life of the reader.
type Table struct {
	file     *os.File
	memoFile *os.File
	header   *Header
	fields   []Descriptor
	memo     *MemoReader
	scanner  *Scanner
	opts     Options
}

// Open parses the header and field descriptor table at tablePath and, if
// memoPath is non-empty, opens the memo side file alongside it. If the
// table references Memo/Binary/General fields but memoPath is empty, those
// fields decode to Null unless WithStrictMemo is set.
func Open(tablePath, memoPath string, opts ...Option) (*Table, error) {
	options := newOptions(opts...)

	f, err := os.Open(tablePath)
	if err != nil {
		return nil, wrapf("dbase-open-1", err)
	}

	header, err := decodeHeader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	fields, err := decodeFields(f, header.HeaderLength)
	if err != nil {
		f.Close()
		return nil, err
	}

	table := &Table{file: f, header: header, fields: fields, opts: options}

	if options.Exclusive {
		if err := lockExclusive(f); err != nil {
			table.Close()
			return nil, err
		}
	}

	if memoPath != "" {
		mf, err := os.Open(memoPath)
		if err != nil {
			table.Close()
			return nil, wrapf("dbase-open-2", err)
		}
		memo, err := newMemoReader(mf, header.Dialect)
		if err != nil {
			mf.Close()
			table.Close()
			return nil, err
		}
		table.memoFile = mf
		table.memo = memo
	}

	scanner, err := newScanner(f, header, fields)
	if err != nil {
		table.Close()
		return nil, err
	}
	table.scanner = scanner

	debugf("dbase: opened %s: dialect=%s records=%d fields=%d", tablePath, header.Dialect, header.RecordCount, len(fields))
	return table, nil
}

// Close releases the table's file handles, including the memo side file and
// any exclusive lock held on the table file.
func (t *Table) Close() error {
	var firstErr error
	if t.opts.Exclusive && t.file != nil {
		if err := unlockExclusive(t.file); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if t.memoFile != nil {
		if err := t.memoFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if t.file != nil {
		if err := t.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *Table) Header() *Header { return t.header }

func (t *Table) Fields() []Descriptor { return t.fields }

func (t *Table) RecordCount() uint32 { return t.header.RecordCount }

func (t *Table) Dialect() Dialect { return t.header.Dialect }

func (t *Table) memoSource() memoSource {
	if t.memo == nil {
		return nil
	}
	return t.memo
}

func (t *Table) fieldByName(name string) (Descriptor, bool) {
	for _, d := range t.fields {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Descriptor{}, false
}
