// Package messaging builds a bulk-message queue from pasted contacts and turns
// each entry into a personalized click-to-chat link.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"

	DefaultCountryCode = "91"
	DefaultFallback    = "Customer"

	chatBaseURL = "https://wa.me/"
)

var (
	ErrEmptyInput     = errors.New("messaging: no contacts given")
	ErrEmptyMessage   = errors.New("messaging: message is empty")
	ErrNoValidNumbers = errors.New("messaging: no valid numbers found")
	ErrItemNotFound   = errors.New("messaging: queue item not found")
)

var namePlaceholder = regexp.MustCompile(`(?i)\{name\}`)

type Item struct {
	ID          int    `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
	Name        string `json:"name,omitempty"`
	Status      string `json:"status"`
}

// Opener hands a finished link to whatever delivers it (a browser tab, a
// response body, stdout).
type Opener interface {
	Open(ctx context.Context, link string) error
}

type OpenerFunc func(ctx context.Context, link string) error

func (f OpenerFunc) Open(ctx context.Context, link string) error {
	return f(ctx, link)
}

// Parse reads one contact per line as "number[,name]". Lines whose number has
// fewer than 10 digits are dropped; exactly 10 digits get the country code
// prepended. Item ids are line indexes among the non-blank lines.
func Parse(input, countryCode string) ([]Item, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	var items []Item
	index := 0
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		id := index
		index++

		numberPart, namePart, _ := strings.Cut(line, ",")
		digits := onlyDigits(numberPart)
		if len(digits) == 10 {
			digits = countryCode + digits
		}
		if len(digits) < 10 {
			continue
		}
		items = append(items, Item{
			ID:          id,
			PhoneNumber: digits,
			Name:        strings.TrimSpace(namePart),
			Status:      StatusPending,
		})
	}

	if len(items) == 0 {
		return nil, ErrNoValidNumbers
	}
	return items, nil
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Personalize substitutes every {name} placeholder, case-insensitively.
func Personalize(message, name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if name == "" {
		name = DefaultFallback
	}
	return namePlaceholder.ReplaceAllLiteralString(message, name)
}

// Link builds the click-to-chat URL with the text percent-encoded the way
// browsers encode a URI component (spaces as %20).
func Link(phone, text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return chatBaseURL + phone + "?text=" + encoded
}

type Queue struct {
	Items    []Item `json:"items"`
	Fallback string `json:"-"`
}

func NewQueue(items []Item, fallback string) *Queue {
	return &Queue{Items: items, Fallback: fallback}
}

// Next returns the first pending item.
func (q *Queue) Next() (Item, bool) {
	for _, it := range q.Items {
		if it.Status == StatusPending {
			return it, true
		}
	}
	return Item{}, false
}

func (q *Queue) SentCount() int {
	n := 0
	for _, it := range q.Items {
		if it.Status == StatusSent {
			n++
		}
	}
	return n
}

func (q *Queue) Reset() {
	q.Items = nil
}

// Send personalizes message for the item, passes the link to opener and marks
// the item sent. Sending an item again re-opens the link and leaves it sent.
func (q *Queue) Send(ctx context.Context, id int, message string, opener Opener) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	pos := -1
	for i := range q.Items {
		if q.Items[i].ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return "", ErrItemNotFound
	}

	item := &q.Items[pos]
	link := Link(item.PhoneNumber, Personalize(message, item.Name, q.Fallback))
	if opener != nil {
		if err := opener.Open(ctx, link); err != nil {
			return "", fmt.Errorf("open link for %s: %w", item.PhoneNumber, err)
		}
	}
	item.Status = StatusSent
	return link, nil
}

// Links renders the personalized link for every item without changing state.
func (q *Queue) Links(message string) []string {
	out := make([]string, len(q.Items))
	for i, it := range q.Items {
		out[i] = Link(it.PhoneNumber, Personalize(message, it.Name, q.Fallback))
	}
	return out
}

