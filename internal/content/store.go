// Package content holds the portfolio's read-only records. A Store is built
// once from a YAML document and is safe to share between goroutines because
// nothing mutates it after Load returns.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/portfolio.yaml
var defaultDocument []byte

// ErrDuplicateTitle is returned when two records of one dataset share a display key.
var ErrDuplicateTitle = errors.New("duplicate title")

// Store is the immutable content collection every section reads from.
type Store struct {
	personal       PersonalInfo
	about          string
	heroMetrics    []Metric
	skills         []SkillCategory
	experience     []Experience
	projects       []Project
	education      []Education
	certifications []Certification
	posts          []Post
}

// Default loads the document compiled into the binary.
func Default() (*Store, error) {
	return Load(bytes.NewReader(defaultDocument))
}

// LoadFile loads a content document from disk.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening content %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML content document, checks key uniqueness per dataset and
// pre-renders post bodies.
func Load(r io.Reader) (*Store, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding content: %w", err)
	}

	if err := unique("projects", doc.Projects); err != nil {
		return nil, err
	}
	if err := unique("certifications", doc.Certifications); err != nil {
		return nil, err
	}
	if err := unique("posts", doc.Posts); err != nil {
		return nil, err
	}
	if err := unique("experience", doc.Experience); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(doc.Skills))
	for _, sc := range doc.Skills {
		if seen[sc.Name] {
			return nil, fmt.Errorf("skills: %w: %q", ErrDuplicateTitle, sc.Name)
		}
		seen[sc.Name] = true
	}

	for i := range doc.Posts {
		html, err := renderMarkdown(doc.Posts[i].Body)
		if err != nil {
			return nil, fmt.Errorf("rendering post %q: %w", doc.Posts[i].Title, err)
		}
		doc.Posts[i].HTML = html
	}

	return &Store{
		personal:       doc.Personal,
		about:          doc.About,
		heroMetrics:    doc.HeroMetrics,
		skills:         doc.Skills,
		experience:     doc.Experience,
		projects:       doc.Projects,
		education:      doc.Education,
		certifications: doc.Certifications,
		posts:          doc.Posts,
	}, nil
}

type keyed interface{ Key() string }

func unique[T keyed](dataset string, items []T) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		k := it.Key()
		if seen[k] {
			return fmt.Errorf("%s: %w: %q", dataset, ErrDuplicateTitle, k)
		}
		seen[k] = true
	}
	return nil
}

func (s *Store) Personal() PersonalInfo { return s.personal }
func (s *Store) About() string          { return s.about }

func (s *Store) HeroMetrics() []Metric           { return clone(s.heroMetrics) }
func (s *Store) Skills() []SkillCategory         { return cloneEach(s.skills, SkillCategory.clone) }
func (s *Store) Experience() []Experience        { return cloneEach(s.experience, Experience.clone) }
func (s *Store) Projects() []Project             { return cloneEach(s.projects, Project.clone) }
func (s *Store) Education() []Education          { return clone(s.education) }
func (s *Store) Certifications() []Certification { return cloneEach(s.certifications, Certification.clone) }
func (s *Store) Posts() []Post                   { return cloneEach(s.posts, Post.clone) }

// Technologies is the number of skills across every category.
func (s *Store) Technologies() int {
	n := 0
	for _, sc := range s.skills {
		n += len(sc.Skills)
	}
	return n
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// cloneEach copies s and runs each element through c, so slices nested in
// records are not shared with the store either.
func cloneEach[T any](s []T, c func(T) T) []T {
	out := clone(s)
	for i := range out {
		out[i] = c(out[i])
	}
	return out
}

func (sc SkillCategory) clone() SkillCategory {
	sc.Skills = clone(sc.Skills)
	return sc
}

func (e Experience) clone() Experience {
	e.Tech = clone(e.Tech)
	e.Description = clone(e.Description)
	return e
}

func (p Project) clone() Project {
	p.Tech = clone(p.Tech)
	p.Highlights = clone(p.Highlights)
	p.Metrics = clone(p.Metrics)
	return p
}

func (c Certification) clone() Certification {
	c.Skills = clone(c.Skills)
	return c
}

func (p Post) clone() Post {
	p.Tags = clone(p.Tags)
	return p
}
