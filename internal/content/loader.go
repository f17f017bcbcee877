// Package content loads the question content that drives the declaration
// wizard and draft service summaries.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var ErrNotLoaded = errors.New("content not loaded")

// Messages are framework-specific strings such as key dates.
type Messages map[string]string

type manifestSection struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Editable    *bool    `yaml:"editable"`
	Questions   []string `yaml:"questions"`
}

// Loader reads content from frameworks/{framework}/ under an fs.FS.
type Loader struct {
	fsys      fs.FS
	mu        sync.RWMutex
	manifests map[string]*Manifest
	questions map[string]*Question
	messages  map[string]Messages
}

func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:      fsys,
		manifests: make(map[string]*Manifest),
		questions: make(map[string]*Question),
		messages:  make(map[string]Messages),
	}
}

// LoadManifest reads manifests/{name}.yml and resolves its questions from
// questions/{questionSet}/.
func (l *Loader) LoadManifest(framework, questionSet, name string) error {
	file := path.Join("frameworks", framework, "manifests", name+".yml")
	raw, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return fmt.Errorf("read manifest %s: %w", file, err)
	}
	var rawSections []manifestSection
	if err := yaml.Unmarshal(raw, &rawSections); err != nil {
		return fmt.Errorf("parse manifest %s: %w", file, err)
	}

	sections := make([]*Section, 0, len(rawSections))
	for _, rs := range rawSections {
		section := &Section{
			ID:          rs.ID,
			Name:        rs.Name,
			Description: rs.Description,
			Editable:    rs.Editable == nil || *rs.Editable,
		}
		if section.ID == "" {
			section.ID = Slugify(rs.Name)
		}
		for _, id := range rs.Questions {
			q, err := l.loadQuestion(framework, questionSet, id)
			if err != nil {
				return fmt.Errorf("manifest %s: %w", file, err)
			}
			section.Questions = append(section.Questions, q)
		}
		sections = append(sections, section)
	}

	manifest, err := newManifest(sections)
	if err != nil {
		return fmt.Errorf("manifest %s: %w", file, err)
	}
	l.mu.Lock()
	l.manifests[framework+"/"+name] = manifest
	l.mu.Unlock()
	return nil
}

// LoadMessages reads messages/{name}.yml for each name.
func (l *Loader) LoadMessages(framework string, names ...string) error {
	for _, name := range names {
		file := path.Join("frameworks", framework, "messages", name+".yml")
		raw, err := fs.ReadFile(l.fsys, file)
		if err != nil {
			return fmt.Errorf("read messages %s: %w", file, err)
		}
		var msgs Messages
		if err := yaml.Unmarshal(raw, &msgs); err != nil {
			return fmt.Errorf("parse messages %s: %w", file, err)
		}
		l.mu.Lock()
		l.messages[framework+"/"+name] = msgs
		l.mu.Unlock()
	}
	return nil
}

func (l *Loader) Manifest(framework, name string) (*Manifest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.manifests[framework+"/"+name]
	if !ok {
		return nil, fmt.Errorf("manifest %s/%s: %w", framework, name, ErrNotLoaded)
	}
	return m, nil
}

func (l *Loader) Message(framework, name string) (Messages, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	msgs, ok := l.messages[framework+"/"+name]
	if !ok {
		return nil, fmt.Errorf("messages %s/%s: %w", framework, name, ErrNotLoaded)
	}
	return msgs, nil
}

// Question returns a single question, reading it on first use.
func (l *Loader) Question(framework, questionSet, id string) (*Question, error) {
	return l.loadQuestion(framework, questionSet, id)
}

func (l *Loader) loadQuestion(framework, questionSet, id string) (*Question, error) {
	cacheKey := strings.Join([]string{framework, questionSet, id}, "/")
	l.mu.RLock()
	q, ok := l.questions[cacheKey]
	l.mu.RUnlock()
	if ok {
		return q, nil
	}

	file := path.Join("frameworks", framework, "questions", questionSet, id+".yml")
	raw, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read question %s: %w", file, err)
	}
	q = &Question{}
	if err := yaml.Unmarshal(raw, q); err != nil {
		return nil, fmt.Errorf("parse question %s: %w", file, err)
	}
	q.ID = id
	if q.Type == "" {
		q.Type = TypeText
	}

	l.mu.Lock()
	l.questions[cacheKey] = q
	l.mu.Unlock()
	return q, nil
}
