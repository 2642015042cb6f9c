package yamlfile

import (
	"context"

	"github.com/hay-kot/termassist/internal/core/todo"
)

// TodoFile is the root YAML structure of the todo store.
type TodoFile struct {
	Messages []string `yaml:"messages"`
}

// TodoStore implements todo.Store using a YAML file for persistence.
type TodoStore struct {
	file *File[TodoFile]
}

var _ todo.Store = (*TodoStore)(nil)

// NewTodoStore creates a todo store at the given path.
func NewTodoStore(path string) *TodoStore {
	return &TodoStore{file: NewFile[TodoFile](path)}
}

// List returns all messages in insertion order.
func (s *TodoStore) List(ctx context.Context) ([]string, error) {
	doc, err := s.file.Load()
	if err != nil {
		return nil, err
	}
	return doc.Messages, nil
}

// Add appends msg and returns its 1-based id.
func (s *TodoStore) Add(ctx context.Context, msg string) (int, error) {
	msg, err := todo.NormalizeMessage(msg)
	if err != nil {
		return 0, err
	}

	var id int
	err = s.file.Update(func(doc *TodoFile) error {
		doc.Messages = append(doc.Messages, msg)
		id = len(doc.Messages)
		return nil
	})
	return id, err
}

// Remove deletes the message at id. The file is left untouched when id is
// out of range.
func (s *TodoStore) Remove(ctx context.Context, id int) (string, error) {
	var removed string
	err := s.file.Update(func(doc *TodoFile) error {
		rest, msg, err := todo.RemoveAt(doc.Messages, id)
		if err != nil {
			return err
		}
		doc.Messages, removed = rest, msg
		return nil
	})
	return removed, err
}
