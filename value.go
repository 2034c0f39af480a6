package godbf

import (
	"encoding/hex"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const dateLayout = "20060102"

// dateLayouts are tried in order when a date cell holds text.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	dateLayout,
	"2006/01/02",
	"02.01.2006 15:04:05",
	"02.01.2006",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// valueText is the plain text form of a cell, "" for absent values.
func valueText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return hex.EncodeToString(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return v.String()
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return lo.Ternary(rv.Bool(), "True", "False")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return valueText(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}

// renderValue converts a cell into the text stored in a field of type t and
// returns the byte used to pad that text to the field width.
func renderValue(t FieldType, value any, blankEmpty bool) (string, byte, error) {
	text := valueText(value)
	if text == "" {
		switch t {
		case FieldCharacter, FieldDate:
			return "", SPACE, nil
		}
		if blankEmpty {
			return "", NUL, nil
		}
		return "", NUL, ErrEmptyValue
	}

	var (
		rendered string
		err      error
	)
	switch t {
	case FieldLogical:
		rendered, err = renderLogical(value, text)
	case FieldNumeric:
		rendered, err = renderNumeric(value, text)
	case FieldFloat:
		rendered, err = renderFloat(value, text)
	case FieldDate:
		rendered, err = renderDate(value, text)
	default:
		return strings.TrimSpace(text), SPACE, nil
	}
	return rendered, NUL, err
}

func renderLogical(value any, text string) (string, error) {
	b, ok := value.(bool)
	if !ok {
		var err error
		if b, err = strconv.ParseBool(strings.TrimSpace(text)); err != nil {
			return "", err
		}
	}
	return lo.Ternary(b, "T", "F"), nil
}

func renderNumeric(value any, text string) (string, error) {
	if d, ok := value.(decimal.Decimal); ok {
		return d.String(), nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		if math.IsNaN(rv.Float()) || math.IsInf(rv.Float(), 0) {
			return "", ErrNonFiniteFloat
		}
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func renderFloat(value any, text string) (string, error) {
	var (
		f       float64
		bitSize = 64
	)
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32:
		f, bitSize = rv.Float(), 32
	case reflect.Float64:
		f = rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f = float64(rv.Uint())
	default:
		if d, ok := value.(decimal.Decimal); ok {
			f = d.InexactFloat64()
			break
		}
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil {
			return "", err
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ErrNonFiniteFloat
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize), nil
}

func renderDate(value any, text string) (string, error) {
	if t, ok := value.(time.Time); ok {
		return t.Format(dateLayout), nil
	}
	t, err := parseDate(strings.TrimSpace(text))
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

func parseDate(text string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
