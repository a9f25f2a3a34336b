package certify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	MinTemplateID = 1
	MaxTemplateID = 7
)

var (
	ErrInvalidTemplateID = errors.New("invalid template id, must be between 1 and 7")
	ErrTemplateNotFound  = errors.New("template file not found")
)

// TemplateInfo describes one of the fixed certificate designs.
type TemplateInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TemplateStore loads raw certificate HTML from a directory of fixed
// template files (template1.html .. template7.html).
type TemplateStore struct {
	dir string
}

func NewTemplateStore(dir string) *TemplateStore {
	if dir == "" {
		dir = "templates"
	}
	return &TemplateStore{dir: dir}
}

// Load returns the raw template text for a template id.
func (s *TemplateStore) Load(templateId int) (string, error) {
	if templateId < MinTemplateID || templateId > MaxTemplateID {
		return "", fmt.Errorf("%w: got %d", ErrInvalidTemplateID, templateId)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("template%d.html", templateId))
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: template%d.html", ErrTemplateNotFound, templateId)
		}
		return "", err
	}

	return string(raw), nil
}

// Templates lists the seven fixed designs.
func Templates() []TemplateInfo {
	return []TemplateInfo{
		{ID: 1, Name: "Classic Formal", Description: "Traditional academic style"},
		{ID: 2, Name: "Modern Minimal", Description: "Sleek dark design"},
		{ID: 3, Name: "Royal Blue", Description: "Clean white body with blue header"},
		{ID: 4, Name: "Emerald Tech", Description: "Green split panel"},
		{ID: 5, Name: "Vintage Parchment", Description: "Old-world heritage style"},
		{ID: 6, Name: "Vibrant Purple", Description: "Contemporary gradient"},
		{ID: 7, Name: "Sunrise Orange", Description: "Energetic warm design"},
	}
}
