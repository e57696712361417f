package bookmarkfile

// Entry is one bookmark definition in the YAML file.
type Entry struct {
	Type       string            `yaml:"type"`  // "url" or "conference"
	Name       string            `yaml:"name"`  // display label
	Value      string            `yaml:"value"` // URL or room JID
	Global     bool              `yaml:"global"`
	Users      []string          `yaml:"users"`
	Groups     []string          `yaml:"groups"`
	Properties map[string]string `yaml:"properties"`
}

// Config is the root structure of bookmarks.yaml
type Config struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}
