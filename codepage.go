package godbf

import (
	"sort"

	"github.com/axgle/mahonia"
	"github.com/go-errors/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Codepage converts text into a single byte character set.
type Codepage struct {
	Number int
	// LanguageDriverID is stored in byte 29 of the table header.
	LanguageDriverID byte
	Name             string

	mahoniaEncoder mahonia.Encoder
	mahoniaDecoder mahonia.Decoder
	charmap        *charmap.Charmap
}

type codepageEntry struct {
	aliases          []string
	charmap          *charmap.Charmap
	languageDriverID byte
}

var codepages = map[int]codepageEntry{
	437:  {[]string{"cp437", "ibm437"}, charmap.CodePage437, 0x01},
	850:  {[]string{"cp850", "ibm850"}, charmap.CodePage850, 0x02},
	852:  {[]string{"cp852", "ibm852"}, charmap.CodePage852, 0x64},
	865:  {[]string{"cp865", "ibm865"}, charmap.CodePage865, 0x66},
	866:  {[]string{"cp866", "ibm866"}, charmap.CodePage866, 0x26},
	1250: {[]string{"windows-1250", "cp1250"}, charmap.Windows1250, 0xC8},
	1251: {[]string{"windows-1251", "cp1251"}, charmap.Windows1251, 0xC9},
	1252: {[]string{"windows-1252", "cp1252"}, charmap.Windows1252, 0x03},
	1253: {[]string{"windows-1253", "cp1253"}, charmap.Windows1253, 0xCB},
	1254: {[]string{"windows-1254", "cp1254"}, charmap.Windows1254, 0xCA},
}

// LookupCodepage returns the encoder for a codepage number. Mahonia charsets
// are preferred, the x/text charmaps cover the ones mahonia does not know.
func LookupCodepage(number int) (*Codepage, error) {
	entry, ok := codepages[number]
	if !ok {
		return nil, errors.Errorf("codepage %d: %w", number, ErrUnknownCodepage)
	}
	cp := &Codepage{
		Number:           number,
		LanguageDriverID: entry.languageDriverID,
	}
	for _, alias := range entry.aliases {
		if mahonia.GetCharset(alias) != nil {
			cp.Name = alias
			cp.mahoniaEncoder = mahonia.NewEncoder(alias)
			cp.mahoniaDecoder = mahonia.NewDecoder(alias)
			return cp, nil
		}
	}
	cp.Name = entry.charmap.String()
	cp.charmap = entry.charmap
	return cp, nil
}

// Encode converts s to codepage bytes, one byte per rune. Runes outside the
// codepage are replaced.
func (c *Codepage) Encode(s string) []byte {
	if c.mahoniaEncoder != nil {
		return []byte(c.mahoniaEncoder.ConvertString(s))
	}
	b, err := encoding.ReplaceUnsupported(c.charmap.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		// unreachable with ReplaceUnsupported, keep width anyway
		return make([]byte, len([]rune(s)))
	}
	return b
}

// Decode converts codepage bytes back to text.
func (c *Codepage) Decode(b []byte) string {
	if c.mahoniaDecoder != nil {
		return c.mahoniaDecoder.ConvertString(string(b))
	}
	s, err := c.charmap.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// SupportedCodepages lists the codepage numbers LookupCodepage accepts.
func SupportedCodepages() []int {
	numbers := make([]int, 0, len(codepages))
	for n := range codepages {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}
