package domain

import "runtime"

// Config holds the tunable settings of a symbol run.
type Config struct {
	Tool       string
	HeaderFlag string
	Suffix     string
	Jobs       int
	Ignore     []string
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Tool:       DefaultToolPath,
		HeaderFlag: DefaultHeaderFlag,
		Suffix:     DefaultBundleSuffix,
		Jobs:       runtime.NumCPU(),
		Ignore:     []string{".git"},
	}
}

// DumpTool returns the dumper invocation described by the config.
func (c Config) DumpTool() Tool {
	return Tool{Path: c.Tool, HeaderFlag: c.HeaderFlag}
}

// ScanOptions returns the locator settings described by the config.
func (c Config) ScanOptions() ScanOptions {
	return ScanOptions{Suffix: c.Suffix, Ignore: c.Ignore}
}
