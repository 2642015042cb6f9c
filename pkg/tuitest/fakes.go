package tuitest

import "context"

// Chooser is a scripted picker. It records the items it was offered.
type Chooser struct {
	Index int
	OK    bool
	Err   error

	Title string
	Items []string
	Calls int
}

func (c *Chooser) Choose(_ context.Context, title string, items []string) (int, bool, error) {
	c.Calls++
	c.Title = title
	c.Items = append([]string(nil), items...)
	return c.Index, c.OK, c.Err
}

// Confirmer answers every question with Answer.
type Confirmer struct {
	Answer bool
	Err    error

	Questions []string
}

func (c *Confirmer) Confirm(title string) (bool, error) {
	c.Questions = append(c.Questions, title)
	return c.Answer, c.Err
}
