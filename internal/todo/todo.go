// Package todo is the flat-file todo list: a single CSV rewritten whole on
// every mutation.
package todo

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const fileName = "todos.csv"

var header = []string{"name", "due_date", "completed"}

type Item struct {
	Name      string
	DueDate   string // YYYY-MM-DD
	Completed bool
}

type Store struct {
	path string
	now  func() time.Time
}

// DefaultDir is <user config dir>/DARS/todos.
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "DARS", "todos"), nil
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create todo dir: %w", err)
	}
	return &Store{
		path: filepath.Join(dir, fileName),
		now:  time.Now,
	}, nil
}

// ResolveDue turns a due-date phrase into YYYY-MM-DD. The literals "today",
// "tomorrow" and "next week" resolve against the clock; anything else is
// tried as a strict date and falls back to today.
func (s *Store) ResolveDue(text string) string {
	now := s.now()
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "today", "":
		return now.Format("2006-01-02")
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	case "next week":
		return now.AddDate(0, 0, 7).Format("2006-01-02")
	}
	if d, err := time.Parse("2006-01-02", strings.TrimSpace(text)); err == nil {
		return d.Format("2006-01-02")
	}
	return now.Format("2006-01-02")
}

// Add appends a new item with the resolved due date.
func (s *Store) Add(name, due string) (Item, error) {
	if strings.TrimSpace(name) == "" {
		return Item{}, fmt.Errorf("no item name provided")
	}
	items, err := s.load()
	if err != nil {
		return Item{}, err
	}
	item := Item{Name: name, DueDate: s.ResolveDue(due)}
	items = append(items, item)
	return item, s.save(items)
}

// List returns every item in file order.
func (s *Store) List() ([]Item, error) {
	return s.load()
}

// Complete flips the completed flag of the first item whose name contains
// the query, case-insensitively. Other rows are untouched.
func (s *Store) Complete(query string) (Item, error) {
	return s.update(query, func(it *Item) { it.Completed = true })
}

// Remove deletes the first item whose name contains the query.
func (s *Store) Remove(query string) (Item, error) {
	if strings.TrimSpace(query) == "" {
		return Item{}, fmt.Errorf("no item name provided")
	}
	items, err := s.load()
	if err != nil {
		return Item{}, err
	}
	for i, it := range items {
		if matches(it, query) {
			items = append(items[:i], items[i+1:]...)
			return it, s.save(items)
		}
	}
	return Item{}, fmt.Errorf("todo matching %q not found", query)
}

func (s *Store) update(query string, f func(*Item)) (Item, error) {
	if strings.TrimSpace(query) == "" {
		return Item{}, fmt.Errorf("no item name provided")
	}
	items, err := s.load()
	if err != nil {
		return Item{}, err
	}
	for i := range items {
		if matches(items[i], query) {
			f(&items[i])
			return items[i], s.save(items)
		}
	}
	return Item{}, fmt.Errorf("todo matching %q not found", query)
}

func matches(it Item, query string) bool {
	return strings.Contains(strings.ToLower(it.Name), strings.ToLower(strings.TrimSpace(query)))
}

func (s *Store) load() ([]Item, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open todo file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}

	var items []Item
	for i, rec := range records {
		if i == 0 || len(rec) < 3 {
			continue // header
		}
		completed, _ := strconv.ParseBool(rec[2])
		items = append(items, Item{Name: rec[0], DueDate: rec[1], Completed: completed})
	}
	return items, nil
}

func (s *Store) save(items []Item) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, it := range items {
		if err := w.Write([]string{it.Name, it.DueDate, strconv.FormatBool(it.Completed)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
