package dataset

// Flatten collapses nested mappings into a single-level mapping with
// dotted key paths. Recursion stops once depth reaches maxDepth; values
// at the boundary, sequences, and scalars are returned unchanged. Keys
// are visited in sorted order, so when two paths collapse to the same
// dotted name the later key wins deterministically.
func Flatten(value any, prefix string, maxDepth, depth int) any {
	if depth >= maxDepth {
		return value
	}
	if IsSequence(value) {
		return value
	}
	rec, ok := AsRecord(value)
	if !ok {
		return value
	}

	flat := make(Record, len(rec))
	for _, key := range Keys(rec) {
		v := rec[key]
		newKey := key
		if prefix != "" {
			newKey = prefix + "." + key
		}

		if sub, isMapping := AsRecord(v); isMapping {
			merged := Flatten(sub, newKey, maxDepth, depth+1)
			if mergedRec, isRec := AsRecord(merged); isRec {
				for _, k := range Keys(mergedRec) {
					flat[k] = mergedRec[k]
				}
				continue
			}
		}

		flat[newKey] = v
	}
	return flat
}

// FlattenRecord flattens a record's nested mappings into dotted key
// paths, descending at most maxDepth levels. A maxDepth of zero leaves
// the record untouched.
func FlattenRecord(rec Record, maxDepth int) Record {
	if flat, ok := AsRecord(Flatten(rec, "", maxDepth, 0)); ok {
		return flat
	}
	return rec
}
