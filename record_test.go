package godbf

import (
	"bytes"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dosage int16

func TestRenderValue(t *testing.T) {
	day := time.Date(2024, time.February, 29, 13, 45, 0, 0, time.UTC)
	tests := []struct {
		name      string
		fieldType FieldType
		value     any
		text      string
		pad       byte
	}{
		{"logical true", FieldLogical, true, "T", NUL},
		{"logical false", FieldLogical, false, "F", NUL},
		{"logical text", FieldLogical, "True", "T", NUL},
		{"logical digit", FieldLogical, "0", "F", NUL},
		{"numeric int", FieldNumeric, int32(-5), "-5", NUL},
		{"numeric named int", FieldNumeric, dosage(25), "25", NUL},
		{"numeric uint", FieldNumeric, uint64(math.MaxUint64), "18446744073709551615", NUL},
		{"numeric decimal", FieldNumeric, decimal.RequireFromString("12.50"), "12.5", NUL},
		{"numeric text", FieldNumeric, " 007 ", "7", NUL},
		{"numeric text fraction", FieldNumeric, "-1.25", "-1.25", NUL},
		{"numeric float", FieldNumeric, 2.5, "2.5", NUL},
		{"float64", FieldFloat, 3.25, "3.25", NUL},
		{"float32", FieldFloat, float32(0.1), "0.1", NUL},
		{"float int", FieldFloat, 7, "7", NUL},
		{"float text", FieldFloat, "2.5e3", "2500", NUL},
		{"float decimal", FieldFloat, decimal.RequireFromString("0.125"), "0.125", NUL},
		{"date time", FieldDate, day, "20240229", NUL},
		{"date iso text", FieldDate, "2024-03-15", "20240315", NUL},
		{"date dotted text", FieldDate, "15.03.2024", "20240315", NUL},
		{"date timestamp text", FieldDate, "2024-03-15T10:11:12Z", "20240315", NUL},
		{"date empty", FieldDate, "", "", SPACE},
		{"date nil", FieldDate, nil, "", SPACE},
		{"character", FieldCharacter, "  hi  ", "hi", SPACE},
		{"character nil", FieldCharacter, nil, "", SPACE},
		{"character number", FieldCharacter, 42, "42", SPACE},
		{"character bool", FieldCharacter, true, "True", SPACE},
		{"character bytes", FieldCharacter, []byte{0xCA, 0xFE}, "cafe", SPACE},
		{"character duration", FieldCharacter, 90 * time.Second, "1m30s", SPACE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, pad, err := renderValue(tt.fieldType, tt.value, false)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.pad, pad)
		})
	}
}

func TestRenderValue_Errors(t *testing.T) {
	tests := []struct {
		name      string
		fieldType FieldType
		value     any
		target    error
	}{
		{"logical empty", FieldLogical, nil, ErrEmptyValue},
		{"numeric empty", FieldNumeric, "", ErrEmptyValue},
		{"float empty", FieldFloat, nil, ErrEmptyValue},
		{"float nan", FieldFloat, math.NaN(), ErrNonFiniteFloat},
		{"float inf text", FieldFloat, "+Inf", ErrNonFiniteFloat},
		{"numeric inf", FieldNumeric, math.Inf(-1), ErrNonFiniteFloat},
		{"logical text", FieldLogical, "maybe", strconv.ErrSyntax},
		{"float text", FieldFloat, "1,5", strconv.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := renderValue(tt.fieldType, tt.value, false)
			require.ErrorIs(t, err, tt.target)
		})
	}

	_, _, err := renderValue(FieldNumeric, "twelve", false)
	require.Error(t, err)
	_, _, err = renderValue(FieldDate, "yesterday", false)
	require.Error(t, err)
}

func TestRenderValue_BlankEmptyValues(t *testing.T) {
	for _, fieldType := range []FieldType{FieldLogical, FieldNumeric, FieldFloat} {
		text, pad, err := renderValue(fieldType, nil, true)
		require.NoError(t, err)
		assert.Equal(t, "", text)
		assert.Equal(t, byte(NUL), pad)
	}
}

func TestAppendFitted(t *testing.T) {
	assert.Equal(t, []byte("AB   "), appendFitted(nil, []byte("AB"), 5, SPACE))
	assert.Equal(t, []byte("-5\x00\x00"), appendFitted(nil, []byte("-5"), 4, NUL))
	assert.Equal(t, []byte("ABC"), appendFitted(nil, []byte("ABCDE"), 3, SPACE))
	assert.Equal(t, []byte("xAB"), appendFitted([]byte("x"), []byte("AB"), 2, SPACE))
}

func TestRecordEncoder(t *testing.T) {
	table := NewTable(
		Column{Name: "id", Type: ColumnInt32},
		Column{Name: "name", Type: ColumnText},
		Column{Name: "active", Type: ColumnBoolean},
		Column{Name: "born", Type: ColumnDateTime},
		Column{Name: "tiny", Type: ColumnUint8},
	)
	born := time.Date(1987, time.July, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, table.AddRow(int32(1000000), "Иван", true, born, uint8(200)))
	require.NoError(t, table.AddRow(int32(-5), "Ann", false, nil, uint8(7)))

	cp := testCodepage(t)
	schema, err := InferSchema(table, cp, DowngradeUnsupported)
	require.NoError(t, err)

	var buf bytes.Buffer
	encoder := newRecordEncoder(schema, cp, false)
	for i, row := range table.Rows {
		require.NoError(t, encoder.encode(&buf, i, row))
	}

	recordLength := int(schema.RecordLength())
	require.Equal(t, 2*recordLength, buf.Len())

	first := buf.Bytes()[:recordLength]
	expected := []byte{SPACE}
	expected = append(expected, "1000000\x00\x00\x00\x00"...)
	expected = append(expected, 0x88, 0xA2, 0xA0, 0xAD) // Иван
	expected = append(expected, 'T')
	expected = append(expected, "19870703"...)
	// three digits do not fit into the single byte of an 8 bit field
	expected = append(expected, '2')
	assert.Equal(t, expected, first)

	second := buf.Bytes()[recordLength:]
	expected = []byte{SPACE}
	expected = append(expected, "-5\x00\x00\x00\x00\x00\x00\x00\x00\x00"...)
	expected = append(expected, "Ann "...)
	expected = append(expected, 'F')
	expected = append(expected, "        "...)
	expected = append(expected, '7')
	assert.Equal(t, expected, second)
}

func TestRecordEncoder_ParseError(t *testing.T) {
	table := NewTable(
		Column{Name: "name", Type: ColumnText},
		Column{Name: "amount", Type: ColumnDecimal},
	)
	require.NoError(t, table.AddRow("a", "1.5"))
	require.NoError(t, table.AddRow("b", "one and a half"))

	cp := testCodepage(t)
	schema, err := InferSchema(table, cp, DowngradeUnsupported)
	require.NoError(t, err)

	var buf bytes.Buffer
	encoder := newRecordEncoder(schema, cp, false)
	require.NoError(t, encoder.encode(&buf, 0, table.Rows[0]))
	err = encoder.encode(&buf, 1, table.Rows[1])

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Row)
	assert.Equal(t, "amount", parseErr.Column)
	assert.Equal(t, FieldNumeric, parseErr.Type)
	assert.Equal(t, "one and a half", parseErr.Value)
	// nothing of the failed record reaches the writer
	assert.Equal(t, int(schema.RecordLength()), buf.Len())
}
