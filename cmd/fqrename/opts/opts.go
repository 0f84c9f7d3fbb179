package opts

// RootOpts contains the flag values shared by all commands
type RootOpts struct {
	Root       string // Directory to walk
	ConfigFile string // Optional yaml/json/hcl config; built-in table when empty
	DryRun     bool   // Print diffs instead of writing
	Jobs       int    // Files rewritten at once
	Debug      bool   // Enable debug diagnostics
	Summary    bool   // Print totals after the run
}
