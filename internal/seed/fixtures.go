package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"socialfeed/internal/service"

	"gopkg.in/yaml.v3"
)

// Fixtures is the YAML document accepted by cmd/seed -fixtures.
//
//	posts:
//	  - username: ana
//	    content: hello
//	    comments:
//	      - content: first!
type Fixtures struct {
	Posts []FixturePost `yaml:"posts"`
}

type FixturePost struct {
	Username     *string          `yaml:"username"`
	UserImageURL *string          `yaml:"userImageUrl"`
	Content      *string          `yaml:"content"`
	ImageURL     *string          `yaml:"imageUrl"`
	VideoURL     *string          `yaml:"videoUrl"`
	Comments     []FixtureComment `yaml:"comments"`
}

type FixtureComment struct {
	Username     *string `yaml:"username"`
	UserImageURL *string `yaml:"userImageUrl"`
	Content      *string `yaml:"content"`
	ImageURL     *string `yaml:"imageUrl"`
	VideoURL     *string `yaml:"videoUrl"`
}

// LoadFixtures reads and parses a fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(raw)
}

// ParseFixtures decodes a fixture document, rejecting unknown keys.
func ParseFixtures(raw []byte) (*Fixtures, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fx, nil
}

func (p FixturePost) input() service.CreatePostInput {
	return service.CreatePostInput{
		Username:     p.Username,
		UserImageURL: p.UserImageURL,
		Content:      p.Content,
		ImageURL:     p.ImageURL,
		VideoURL:     p.VideoURL,
	}
}

func (c FixtureComment) input(postID uint) service.CreateCommentInput {
	return service.CreateCommentInput{
		PostID:       postID,
		Username:     c.Username,
		UserImageURL: c.UserImageURL,
		Content:      c.Content,
		ImageURL:     c.ImageURL,
		VideoURL:     c.VideoURL,
	}
}
