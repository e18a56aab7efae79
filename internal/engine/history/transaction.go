package history

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/ropecore/internal/engine/buffer"
)

// Kind identifies what a transaction did to the text.
type Kind int

const (
	Insert Kind = iota
	Delete
	Replace
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Transaction describes one undoable unit of work. The text itself is
// restored from buffer snapshots; a Transaction records what happened and
// where the cursor was on either side of it.
type Transaction struct {
	ID           uuid.UUID
	Kind         Kind
	Text         string // inserted text
	OldText      string // removed text
	CursorBefore buffer.Point
	CursorAfter  buffer.Point
	Timestamp    time.Time
}

// NewInsert creates a transaction for inserted text.
func NewInsert(text string, before, after buffer.Point) Transaction {
	return newTransaction(Insert, text, "", before, after)
}

// NewDelete creates a transaction for removed text.
func NewDelete(oldText string, before, after buffer.Point) Transaction {
	return newTransaction(Delete, "", oldText, before, after)
}

// NewReplace creates a transaction for text replaced by other text.
func NewReplace(oldText, text string, before, after buffer.Point) Transaction {
	return newTransaction(Replace, text, oldText, before, after)
}

func newTransaction(kind Kind, text, oldText string, before, after buffer.Point) Transaction {
	return Transaction{
		ID:           uuid.New(),
		Kind:         kind,
		Text:         text,
		OldText:      oldText,
		CursorBefore: before,
		CursorAfter:  after,
		Timestamp:    time.Now(),
	}
}

// BytesDelta returns the change in document length.
func (t Transaction) BytesDelta() int {
	return len(t.Text) - len(t.OldText)
}

// Description returns a human-readable description.
func (t Transaction) Description() string {
	switch t.Kind {
	case Insert:
		return describe("Insert", "Type", t.Text)
	case Delete:
		return describe("Delete", "Delete", t.OldText)
	default:
		n := utf8.RuneCountInString(t.OldText)
		if n <= 20 && utf8.RuneCountInString(t.Text) <= 20 {
			return fmt.Sprintf("Replace %q with %q", t.OldText, t.Text)
		}
		return fmt.Sprintf("Replace %d characters", n)
	}
}

func describe(verb, single, text string) string {
	switch text {
	case "\n":
		return verb + " newline"
	case "\t":
		return verb + " tab"
	}
	n := utf8.RuneCountInString(text)
	if n == 1 {
		return fmt.Sprintf("%s '%s'", single, text)
	}
	if n <= 20 {
		return fmt.Sprintf("%s %q", verb, text)
	}
	return fmt.Sprintf("%s %d characters", verb, n)
}

// OperationInfo provides read-only info about a transaction.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	ID          uuid.UUID
	Description string
	Timestamp   time.Time
	BytesDelta  int // Positive for insertions, negative for deletions
}

// Info returns the display info for the transaction.
func (t Transaction) Info() OperationInfo {
	return OperationInfo{
		ID:          t.ID,
		Description: t.Description(),
		Timestamp:   t.Timestamp,
		BytesDelta:  t.BytesDelta(),
	}
}
