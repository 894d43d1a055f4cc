package scan

// aggregateInfo merges the per-system metadata into one output record.
//
// The first (baseline) system's metadata is adopted wholesale; every
// system contributes a letter-keyed diagnostic entry for traceability.
// A table-shaped pair list is normalized here, exactly once, into the
// struct-of-arrays form; no later consumer observes the table shape.
func aggregateInfo(records []*SystemRecord) Metadata {
	meta := records[0].Meta

	if meta.Pairs.Len() == 0 && len(meta.PairRows) > 0 {
		meta.Pairs = pairsFromRows(meta.PairRows)
	}
	meta.PairRows = nil

	meta.Diag = make(map[string]SystemDiag, len(records))
	for _, rec := range records {
		meta.Diag[rec.Letter] = rec.diag()
	}
	return meta
}
