package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/mchmarny/ngwp/pkg/menu"
	"github.com/mchmarny/ngwp/pkg/widget"
)

var (
	// ErrNotFound is returned when a menu or location does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotLoaded is returned before a snapshot has been loaded.
	ErrNotLoaded = errors.New("site snapshot not loaded")
)

// Store serves site state from a YAML snapshot file.
// It is safe for concurrent use; Reload swaps the snapshot atomically.
type Store struct {
	path string

	mu       sync.RWMutex
	snap     *Snapshot
	loadedAt time.Time
}

// Open loads the snapshot at path.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStore returns a Store serving an in-memory snapshot.
func NewStore(snap *Snapshot) *Store {
	return &Store{snap: snap, loadedAt: time.Now()}
}

// Reload re-reads the snapshot file. On failure the previous snapshot stays in place.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read site snapshot %s: %w", s.path, err)
	}

	snap, err := Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse site snapshot %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.snap = snap
	s.loadedAt = time.Now()
	s.mu.Unlock()

	slog.Info("site snapshot loaded",
		"path", s.path,
		"menus", len(snap.Menus),
		"widgets", len(snap.Widgets),
		"sidebars", len(snap.Sidebars))

	return nil
}

// Parse decodes a YAML snapshot.
func Parse(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil, ErrNotLoaded
	}
	return s.snap, nil
}

// Ready returns nil once a snapshot is loaded.
func (s *Store) Ready(_ context.Context) error {
	_, err := s.current()
	return err
}

// LoadedAt returns when the current snapshot was loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Menus returns all menus without their items.
func (s *Store) Menus(_ context.Context) ([]menu.Menu, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	out := make([]menu.Menu, 0, len(snap.Menus))
	for i := range snap.Menus {
		out = append(out, snap.Menus[i].menu())
	}
	return out, nil
}

// Menu returns the menu and its flat items in menu order.
func (s *Store) Menu(_ context.Context, id int64) (menu.Menu, []menu.Item, error) {
	snap, err := s.current()
	if err != nil {
		return menu.Menu{}, nil, err
	}

	rec, ok := snap.findMenu(id)
	if !ok {
		return menu.Menu{}, nil, fmt.Errorf("menu %d: %w", id, ErrNotFound)
	}
	return rec.menu(), rec.items(), nil
}

// Locations returns the locations that have a menu assigned.
func (s *Store) Locations(_ context.Context) ([]menu.Location, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	out := make([]menu.Location, 0, len(snap.Locations))
	for _, l := range snap.Locations {
		if l.Menu == 0 {
			continue
		}
		out = append(out, menu.Location{Slug: l.Slug, MenuID: l.Menu, Label: l.Label})
	}
	return out, nil
}

// LocationItems returns the flat items of the menu assigned to the location.
func (s *Store) LocationItems(ctx context.Context, slug string) ([]menu.Item, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	for _, l := range snap.Locations {
		if l.Slug != slug || l.Menu == 0 {
			continue
		}
		_, items, err := s.Menu(ctx, l.Menu)
		return items, err
	}
	return nil, fmt.Errorf("menu location %s: %w", slug, ErrNotFound)
}

// WidgetState returns the registered widgets and sidebars.
func (s *Store) WidgetState(_ context.Context) (*widget.State, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.widgetState(), nil
}
