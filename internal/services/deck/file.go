package deck

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/flashpuzzle/internal/model"
)

// File is the on-disk deck format. JSON decks parse too, being valid YAML.
type File struct {
	Name  string     `yaml:"name" json:"name"`
	Cards []CardFile `yaml:"cards" json:"cards"`
}

// CardFile is a single card in a deck file
type CardFile struct {
	ID    string `yaml:"id,omitempty" json:"id,omitempty"`
	Front string `yaml:"front" json:"front"`
	Back  string `yaml:"back" json:"back"`
}

// Flashcards converts the file's cards to model cards. Missing IDs are left
// empty for the service to fill in.
func (f *File) Flashcards() []model.Flashcard {
	cards := make([]model.Flashcard, len(f.Cards))
	for i, c := range f.Cards {
		cards[i] = model.Flashcard{
			ID:           c.ID,
			FrontContent: c.Front,
			BackContent:  c.Back,
		}
	}
	return cards
}

// Parse reads a YAML or JSON deck
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshaling deck: %w", err)
	}
	return &f, nil
}

// ReadFile parses the deck file at path
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}
	defer fh.Close()

	return Parse(fh)
}
