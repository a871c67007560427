package mcpsearch

// SearchLogsArgs defines arguments for the search_logs tool, the MCP
// analogue of the TUI's query line (spec §4.D): a positive pattern, an
// ordered list of negative patterns, and an optional level filter.
type SearchLogsArgs struct {
	Filter    string   `json:"filter,omitempty" description:"Regex applied to the merged record stream, wrapped as .*<filter>.* the same way the TUI's query line is (empty matches everything)"`
	NotFilter []string `json:"not_filter,omitempty" description:"Ordered list of regex patterns to exclude, same semantics as the TUI's !token query syntax"`
	Levels    []string `json:"levels,omitempty" description:"Level names to include (INFO, WARN, ERROR, DEBUG). Leave empty for every level."`
	Lines     int      `json:"lines,omitempty" description:"Maximum records to return (default 100, max 10000)"`
}

// ListSourcesArgs defines arguments for the list_sources tool.
type ListSourcesArgs struct {
	KindFilter string `json:"kind_filter,omitempty" description:"Restrict to \"pod\" or \"topic\" sources. Leave empty for both."`
}

// ToggleLevelArgs defines arguments for the toggle_level tool.
type ToggleLevelArgs struct {
	Level string `json:"level" description:"Level name to toggle in the live view's mask (INFO, WARN, ERROR, DEBUG)"`
}
