package metrics

// Descriptions maps a fully qualified metric name to its help text.
// A nil Descriptions is an empty table.
type Descriptions map[string]string

// NewDescriptions builds a table from raw entries, normalizing every key so
// that "MyApp.Sessions-Handled" and "myapp_sessions_handled" hit the same
// entry. When two raw keys collide the lexically smaller raw key wins.
func NewDescriptions(entries map[string]string) Descriptions {
	d := make(Descriptions, len(entries))
	owner := make(map[string]string, len(entries))
	for raw, help := range entries {
		key := NormalizeName(raw)
		if prev, ok := owner[key]; ok && prev < raw {
			continue
		}
		owner[key] = raw
		d[key] = help
	}
	return d
}

// Lookup returns the help text for the qualified name key.
func (d Descriptions) Lookup(key string) (string, bool) {
	help, ok := d[key]
	return help, ok
}

// ResolveDescription picks the help text for a metric. Precedence: the
// first non-empty explicit description, then the table entry for lookupKey,
// then fallback.
func ResolveDescription(explicit []string, lookupKey, fallback string, table Descriptions) string {
	for _, desc := range explicit {
		if desc != "" {
			return desc
		}
	}
	if help, ok := table.Lookup(lookupKey); ok && help != "" {
		return help
	}
	return fallback
}
