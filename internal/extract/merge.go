package extract

import "exportdocs/internal/model"

// BookingClaims are the fields the booking document owns. For these the
// booking value replaces the packing-list value; every other field keeps the
// packing-list value and only falls back to the booking one when the PL lacks it.
var BookingClaims = map[string]bool{
	model.FieldDescription: true,
}

// Merge combines the PL and BOOKING records of one invoice. Neither input is modified.
func Merge(pl, booking model.FieldRecord) model.FieldRecord {
	out := pl.Clone()
	for k, v := range booking {
		if v == "" {
			continue
		}
		if _, have := out.Get(k); !have || BookingClaims[k] {
			out[k] = v
		}
	}
	derive(out)
	return out
}
