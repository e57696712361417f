package bookmarkfile

import (
	"fmt"

	"github.com/sharemark/sharemark/internal/domain"
)

// Mapper converts file entries to domain bookmarks
type Mapper struct{}

// NewMapper creates a bookmark mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts a Config to domain bookmarks. Entries with an unknown type
// or an empty value are skipped; an entirely empty result is an error so a
// broken file does not silently wipe the served set.
func (m *Mapper) Map(config *Config) ([]*domain.Bookmark, error) {
	bookmarks := make([]*domain.Bookmark, 0, len(config.Bookmarks))

	for _, entry := range config.Bookmarks {
		var typ domain.Type
		switch entry.Type {
		case "url":
			typ = domain.TypeURL
		case "conference":
			typ = domain.TypeConference
		default:
			continue
		}

		if entry.Value == "" {
			continue
		}

		bookmarks = append(bookmarks, &domain.Bookmark{
			Type:       typ,
			Name:       entry.Name,
			Value:      entry.Value,
			Global:     entry.Global,
			Users:      entry.Users,
			Groups:     entry.Groups,
			Properties: entry.Properties,
		})
	}

	if len(bookmarks) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in config")
	}

	return bookmarks, nil
}
