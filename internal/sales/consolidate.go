package sales

// Consolidate merges entries that refer to the same medication. The result
// has one entry per medication in first-seen order; its quantity is the sum
// of all matching entries and its price and name come from the first one.
func Consolidate(entries []LineEntry) []LineEntry {
	out := make([]LineEntry, 0, len(entries))
	index := make(map[int64]int, len(entries))

	for _, e := range entries {
		if i, ok := index[e.MedicationID]; ok {
			out[i].Quantity += e.Quantity
			continue
		}

		index[e.MedicationID] = len(out)
		out = append(out, e)
	}

	return out
}

// PriceConflicts lists, in first-seen order, the medications whose entries
// do not all carry the same unit price. Consolidate keeps the first price.
func PriceConflicts(entries []LineEntry) []int64 {
	first := make(map[int64]LineEntry, len(entries))
	flagged := make(map[int64]bool)

	var conflicts []int64
	for _, e := range entries {
		f, ok := first[e.MedicationID]
		if !ok {
			first[e.MedicationID] = e
			continue
		}

		if !f.UnitPrice.Equal(e.UnitPrice) && !flagged[e.MedicationID] {
			flagged[e.MedicationID] = true
			conflicts = append(conflicts, e.MedicationID)
		}
	}

	return conflicts
}
