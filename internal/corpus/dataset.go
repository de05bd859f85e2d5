package corpus

// Record is one row of the recommendation corpus after column selection.
// Target holds the coerced label: "1" for a "Yes" recommendation, "0" for
// "No", and the raw source value (possibly empty for a missing field) for
// anything else.
type Record struct {
	Text   string
	Target string
}

// Dataset is an ordered sequence of records; the positional index is the
// slice index and reflects insertion order from the source.
type Dataset []Record

// CoerceTarget maps the raw recommend_to_a_friend value onto a binary
// label. Values other than "Yes"/"No" pass through unchanged.
func CoerceTarget(raw string) string {
	switch raw {
	case "Yes":
		return "1"
	case "No":
		return "0"
	default:
		return raw
	}
}

// DropNA returns the dataset without records that have a missing text or
// target field.
func (d Dataset) DropNA() Dataset {
	out := make(Dataset, 0, len(d))
	for _, r := range d {
		if r.Text == "" || r.Target == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
