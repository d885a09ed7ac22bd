package dbase

import "testing"

func TestClassifyDialect(t *testing.T) {
	cases := []struct {
		sig     byte
		want    Dialect
		wantOk  bool
	}{
		{0x02, FoxBase, true},
		{0x03, DBase3, true},
		{0x83, DBase3, true},
		{0x30, VisualFoxPro, true},
		{0x31, VisualFoxPro, true},
		{0x32, VisualFoxPro, true},
		{0x43, DBase4, true},
		{0x63, DBase4, true},
		{0x8B, DBase4, true},
		{0xCB, DBase4, true},
		{0xF5, FoxPro2, true},
		{0xFB, FoxPro2, true},
		{0x99, DialectUnknown, false},
	}

	for i, c := range cases {
		got, ok := ClassifyDialect(c.sig)
		if got != c.want || ok != c.wantOk {
			t.Errorf("[TEST] ClassifyDialect failed #%d - got (%v, %v), want (%v, %v)", i, got, ok, c.want, c.wantOk)
		}
	}
}

func TestParseFieldType(t *testing.T) {
	cases := []struct {
		b      byte
		want   FieldType
		wantOk bool
	}{
		{'C', Character, true},
		{'D', Date, true},
		{'F', Float, true},
		{'G', General, true},
		{'I', Integer, true},
		{'L', Logical, true},
		{'M', Memo, true},
		{'N', Numeric, true},
		{'T', Timestamp, true},
		{'B', Binary, true},
		{'X', 0, false},
	}

	for i, c := range cases {
		got, ok := ParseFieldType(c.b)
		if got != c.want || ok != c.wantOk {
			t.Errorf("[TEST] ParseFieldType failed #%d - got (%v, %v), want (%v, %v)", i, got, ok, c.want, c.wantOk)
		}
	}
}

func TestColumnFlagHas(t *testing.T) {
	f := ColumnFlag(HiddenFlag) | ColumnFlag(NullableFlag)
	if !f.Has(HiddenFlag) {
		t.Error("[TEST] ColumnFlag.Has failed - expected HiddenFlag to be set")
	}
	if f.Has(BinaryFlag) {
		t.Error("[TEST] ColumnFlag.Has failed - did not expect BinaryFlag to be set")
	}
}
