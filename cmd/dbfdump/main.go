// Command dbfdump prints the header, fields, and rows of a dBase-family
// table to stdout, as a minimal demonstration of the dbase package's
// dynamic-mode (ReadValues) entry point.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kjhughes/dbfkit/dbase"
)

func main() {
	var (
		table   = flag.String("table", "", "path to the .dbf table file")
		memo    = flag.String("memo", "", "path to the associated .dbt/.fpt memo file (optional)")
		strict  = flag.Bool("strict-memo", false, "fail instead of decoding Null when a memo field has no memo file attached")
		debug   = flag.Bool("debug", false, "enable package debug logging to stderr")
		exclude = flag.Bool("exclusive", false, "hold an advisory exclusive lock on the table file while reading")
	)
	flag.Parse()

	if *table == "" {
		fmt.Fprintln(os.Stderr, "dbfdump: -table is required")
		os.Exit(2)
	}

	if *debug {
		dbase.Debug(true, os.Stderr)
	}

	var opts []dbase.Option
	if *strict {
		opts = append(opts, dbase.WithStrictMemo())
	}
	if *exclude {
		opts = append(opts, dbase.WithExclusive())
	}

	stream, err := dbase.ReadValues(*table, *memo, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dbfdump:", err)
		os.Exit(1)
	}
	defer stream.Close()

	header := stream.Table().Header()
	fmt.Printf("dialect=%s modified=%s records=%d fields=%d\n",
		stream.Table().Dialect(), header.Modified(0).Format("2006-01-02"), header.RecordCount, len(stream.Table().Fields()))

	for _, f := range stream.Table().Fields() {
		if f.Hidden() {
			continue
		}
		fmt.Printf("  %-11s %s(%d,%d)\n", f.Name, f.Type, f.Length, f.Decimals)
	}

	for stream.Next() {
		row, err := stream.Record()
		if err != nil {
			fmt.Fprintln(os.Stderr, "dbfdump:", err)
			os.Exit(1)
		}
		printRow(os.Stdout, row)
	}
	if err := stream.Err(); err != nil && err != io.EOF {
		fmt.Fprintln(os.Stderr, "dbfdump:", err)
		os.Exit(1)
	}
}

func printRow(w io.Writer, row dbase.Row) {
	for i, name := range row.Names() {
		v := row.Values()[i]
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		if v.IsNull() {
			fmt.Fprintf(w, "%s=<null>", name)
			continue
		}
		fmt.Fprintf(w, "%s=%v", name, renderValue(v))
	}
	fmt.Fprintln(w)
}

func renderValue(v dbase.Value) interface{} {
	if s, ok := v.String(); ok {
		return s
	}
	if f, ok := v.Float64(); ok {
		return f
	}
	if n, ok := v.Int32(); ok {
		return n
	}
	if b, ok := v.Bool(); ok {
		return b
	}
	if d, ok := v.Date(); ok {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	if ts, ok := v.Timestamp(); ok {
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second)
	}
	if b, ok := v.Bytes(); ok {
		return fmt.Sprintf("%d bytes", len(b))
	}
	return v.Kind
}
