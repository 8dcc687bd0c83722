package engine

// DiffTableSets produces one AdditionalTable per name in t1 absent from t2
// (labeled A), then one per name in t2 absent from t1 (labeled B). Input
// order is preserved within each half; the configured case mode applies to
// both directions uniformly.
func DiffTableSets(t1, t2 []string, opts Options) []AdditionalTable {
	opts = opts.withDefaults()

	keys1 := make(map[string]bool, len(t1))
	for _, name := range t1 {
		keys1[opts.nameKey(name)] = true
	}
	keys2 := make(map[string]bool, len(t2))
	for _, name := range t2 {
		keys2[opts.nameKey(name)] = true
	}

	var out []AdditionalTable
	for _, name := range t1 {
		if !keys2[opts.nameKey(name)] {
			out = append(out, AdditionalTable{Source: SourceA, Table: name})
		}
	}
	for _, name := range t2 {
		if !keys1[opts.nameKey(name)] {
			out = append(out, AdditionalTable{Source: SourceB, Table: name})
		}
	}
	return out
}

// CommonTables returns the names present in both lists, in t1's order,
// excluding reserved system tables. The same exclusion applies to schema
// diff, data diff, and search.
func CommonTables(t1, t2 []string, opts Options) []string {
	opts = opts.withDefaults()

	keys2 := make(map[string]bool, len(t2))
	for _, name := range t2 {
		keys2[opts.nameKey(name)] = true
	}

	var out []string
	for _, name := range t1 {
		if opts.isReserved(name) {
			continue
		}
		if keys2[opts.nameKey(name)] {
			out = append(out, name)
		}
	}
	return out
}
