// Package annotation manages the user-editable list of annotation classes
// (one per topic theme) shown next to the topic panels.
package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned for an unknown annotation id.
	ErrNotFound = errors.New("annotation not found")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("invalid annotation")
)

// DefaultColor is used when Add is called without a color.
const DefaultColor = "#6366f1"

var validate = validator.New()

// Annotation is one annotation class.
type Annotation struct {
	ID           int    `json:"id"`
	Name         string `json:"name" validate:"required,max=80"`
	Color        string `json:"color" validate:"required,hexcolor,len=7"`
	Count        int    `json:"count" validate:"gte=0"`
	OriginalName string `json:"original_name"`
}

// Defaults returns the seed classes of the dashboard.
func Defaults() []Annotation {
	return []Annotation{
		{ID: 1, Name: "Administratif", Color: "#3b82f6", Count: 125, OriginalName: "Thème 1: administratif & gestion & procédures"},
		{ID: 2, Name: "Technique", Color: "#ef4444", Count: 87, OriginalName: "Thème 2: technique & matériel & équipement"},
		{ID: 3, Name: "Financier", Color: "#10b981", Count: 64, OriginalName: "Thème 3: finance & budget & économie"},
		{ID: 4, Name: "Juridique", Color: "#f59e0b", Count: 42, OriginalName: "Thème 4: juridique & légal & droit"},
		{ID: 5, Name: "Marketing", Color: "#8b5cf6", Count: 31, OriginalName: "Thème 5: marketing & communication & promotion"},
	}
}

// Store is an insertion-ordered collection of annotations keyed by id.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	order   []int
	byID    map[int]*Annotation
	nextID  int
	skipped int

	// saveMu orders snapshots with their writes so a later Save never loses
	// to an earlier one.
	saveMu sync.Mutex
}

// NewStore creates a store holding items in the given order. Items with a
// non-positive or repeated id, or that fail validation, are skipped.
func NewStore(items []Annotation) *Store {
	s := &Store{byID: make(map[int]*Annotation), nextID: 1}
	for _, a := range items {
		if _, dup := s.byID[a.ID]; dup || a.ID <= 0 || check(a) != nil {
			s.skipped++
			continue
		}
		a := a
		s.byID[a.ID] = &a
		s.order = append(s.order, a.ID)
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	return s
}

// List returns a copy of all annotations in insertion order.
func (s *Store) List() []Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Annotation, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out
}

// Get returns the annotation with the given id.
func (s *Store) Get(id int) (Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return Annotation{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return *a, nil
}

// Add appends a new class with a zero count.
func (s *Store) Add(name, color string) (Annotation, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := Annotation{
		ID:           s.nextID,
		Name:         name,
		Color:        strings.ToLower(color),
		OriginalName: fmt.Sprintf("Thème %d: %s", s.nextID, name),
	}
	if err := check(a); err != nil {
		return Annotation{}, err
	}

	s.byID[a.ID] = &a
	s.order = append(s.order, a.ID)
	s.nextID++
	return a, nil
}

// Rename changes the display name of an annotation.
func (s *Store) Rename(id int, name string) (Annotation, error) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return Annotation{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	updated := *a
	updated.Name = name
	if err := check(updated); err != nil {
		return Annotation{}, err
	}
	*a = updated
	return *a, nil
}

// Reset restores the name from the part of OriginalName after ": ".
func (s *Store) Reset(id int) (Annotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return Annotation{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if _, rest, found := strings.Cut(a.OriginalName, ": "); found && rest != "" {
		a.Name = rest
	}
	return *a, nil
}

// Remove deletes an annotation.
func (s *Store) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Skipped returns how many items NewStore or Load dropped.
func (s *Store) Skipped() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipped
}

// Len returns the number of annotations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func check(a Annotation) error {
	if err := validate.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalid, strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ─── Storage ───

// Path returns the annotations file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, "annotations.json")
}

// Load reads annotations from path. A missing file yields the defaults;
// entries that fail validation are dropped and counted in Skipped.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(Defaults()), nil
		}
		return nil, err
	}

	var items []Annotation
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("annotations parse: %w", err)
	}
	return NewStore(items), nil
}

// Save writes the store to path through a temp file and rename, so readers
// never see a partial file.
func (s *Store) Save(path string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	data, err := json.MarshalIndent(s.List(), "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".annotations-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
