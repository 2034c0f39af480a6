package godbf

import "time"

// DefaultCodepage is MS-DOS Cyrillic.
const DefaultCodepage = 866

// UnsupportedTypePolicy decides what happens to columns whose type has no
// DBF field mapping.
type UnsupportedTypePolicy int

const (
	// DowngradeUnsupported stores such columns as 50 byte character fields.
	DowngradeUnsupported UnsupportedTypePolicy = iota
	// RejectUnsupported fails schema inference with ErrUnsupportedColumnType.
	RejectUnsupported
)

func (p UnsupportedTypePolicy) String() string {
	if p == RejectUnsupported {
		return "reject"
	}
	return "downgrade"
}

// Options configures a DBFWriter.
type Options struct {
	// Codepage used for text values and field names; 0 selects DefaultCodepage.
	Codepage int
	// UnsupportedTypes is applied to columns without a DBF mapping.
	UnsupportedTypes UnsupportedTypePolicy
	// BlankEmptyValues writes empty logical, numeric and float cells as zero
	// bytes instead of failing with ErrEmptyValue.
	BlankEmptyValues bool
	// LastUpdate is stored in the header date bytes. The zero value keeps the
	// fixed placeholder date so that repeated writes are byte identical.
	LastUpdate time.Time
}

func (o Options) codepage() int {
	if o.Codepage == 0 {
		return DefaultCodepage
	}
	return o.Codepage
}
