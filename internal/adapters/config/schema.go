package config

// Symfile represents the structure of the symcache.yaml configuration file.
// Unset fields keep their defaults.
type Symfile struct {
	Tool       *string  `yaml:"tool"`
	HeaderFlag *string  `yaml:"header_flag"`
	Suffix     *string  `yaml:"suffix"`
	Jobs       *int     `yaml:"jobs"`
	Ignore     []string `yaml:"ignore"`
}
