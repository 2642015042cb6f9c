// Package todo defines the todo list domain: an ordered list of messages
// addressed by their 1-based position.
package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrOutOfRange is returned when an id does not address an item.
	ErrOutOfRange = errors.New("todo id out of range")
	// ErrEmptyMessage is returned when adding a blank message.
	ErrEmptyMessage = errors.New("todo message is empty")
)

// Item is a message paired with its position in the list.
type Item struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// Store defines the interface for todo list persistence.
type Store interface {
	// List returns every message in insertion order.
	List(ctx context.Context) ([]string, error)

	// Add appends msg and returns its id.
	Add(ctx context.Context, msg string) (int, error)

	// Remove deletes the message at id and returns it. Later messages move up
	// one position. Returns ErrOutOfRange if id addresses nothing.
	Remove(ctx context.Context, id int) (string, error)
}

// Items numbers messages from 1.
func Items(messages []string) []Item {
	items := make([]Item, len(messages))
	for i, m := range messages {
		items[i] = Item{ID: i + 1, Message: m}
	}
	return items
}

// NormalizeMessage trims msg and rejects blank messages.
func NormalizeMessage(msg string) (string, error) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return "", ErrEmptyMessage
	}
	return msg, nil
}

// RemoveAt returns messages without the entry at id along with the removed
// message. The input slice is not modified.
func RemoveAt(messages []string, id int) ([]string, string, error) {
	if id < 1 || id > len(messages) {
		return messages, "", fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, id, len(messages))
	}

	out := make([]string, 0, len(messages)-1)
	out = append(out, messages[:id-1]...)
	out = append(out, messages[id:]...)
	return out, messages[id-1], nil
}

// slashStandIn replaces "/" on both sides of a match. Messages are not
// paths, so wildcards must match across slashes.
const slashStandIn = "\uE000"

// Filter keeps the items whose message matches the doublestar glob pattern.
// A "/" is an ordinary character. Ids are preserved so they can still be
// passed to Remove.
func Filter(items []Item, pattern string) ([]Item, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	pattern = strings.ReplaceAll(pattern, "/", slashStandIn)

	var out []Item
	for _, it := range items {
		if ok, _ := doublestar.Match(pattern, strings.ReplaceAll(it.Message, "/", slashStandIn)); ok {
			out = append(out, it)
		}
	}
	return out, nil
}
