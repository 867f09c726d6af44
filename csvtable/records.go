package csvtable

import "strings"

// field is one raw CSV field together with whether it was double-quoted
// in the source text — unquoted fields get whitespace-trimmed, quoted
// fields keep their content verbatim.
type field struct {
	text   string
	quoted bool
}

// value returns the field's text with the trimming rule applied.
func (f field) value() string {
	if f.quoted {
		return f.text
	}
	return strings.TrimSpace(f.text)
}

// splitRecords tokenizes raw CSV text into records of fields. A record
// ends at an unquoted line break; a quoted field may itself contain
// commas and line breaks, with "" decoding to a literal ".
func splitRecords(data string) [][]field {
	var records [][]field
	var fields []field
	var text strings.Builder
	inQuotes := false
	quoted := false
	started := false
	i := 0
	n := len(data)

	endField := func() {
		fields = append(fields, field{text: text.String(), quoted: quoted})
		text.Reset()
		quoted = false
		started = false
	}
	endRecord := func() {
		endField()
		records = append(records, fields)
		fields = nil
	}

	for i < n {
		c := data[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < n && data[i+1] == '"' {
					text.WriteByte('"')
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			text.WriteByte(c)
			i++
		case c == '"' && !started:
			quoted = true
			inQuotes = true
			started = true
			i++
		case c == ',':
			endField()
			i++
		case c == '\r':
			if i+1 < n && data[i+1] == '\n' {
				i++
			}
			endRecord()
			i++
		case c == '\n':
			endRecord()
			i++
		default:
			started = true
			text.WriteByte(c)
			i++
		}
	}

	if text.Len() > 0 || len(fields) > 0 {
		endRecord()
	}

	out := records[:0]
	for _, rec := range records {
		if len(rec) == 1 && rec[0].text == "" && !rec[0].quoted {
			continue
		}
		out = append(out, rec)
	}
	return out
}
