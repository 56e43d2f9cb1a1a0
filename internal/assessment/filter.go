package assessment

// Tabs are the raw type values the tabbed assessment list offers.
var Tabs = []string{"assignment", "quiz", "mid", "final"}

// IsTab reports whether s is one of Tabs.
func IsTab(s string) bool {
	for _, t := range Tabs {
		if t == s {
			return true
		}
	}
	return false
}

// FilterByCategory keeps records whose raw type equals tab exactly. Unlike
// ClassifyCategory this is case-sensitive and does no substring matching:
// "Assignment" is not listed under "assignment".
func FilterByCategory(records []Record, tab string) []Record {
	out := make([]Record, 0)
	if !IsTab(tab) {
		return out
	}
	for _, rec := range records {
		if rec.Type == tab {
			out = append(out, rec)
		}
	}
	return out
}
