// Package dom holds a parsed HTML page and the mutations the view-sync applies
// to it: container replacement, text updates, input values, user alerts and
// reload requests.
//
// A Document is safe for concurrent use. Every mutation takes the document
// lock, so concurrent fetches that complete in any order can each patch their
// own container.
package dom

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AlertsID is the element that receives pending alerts when a document is rendered.
const AlertsID = "alerts"

// Document is a mutable HTML page bound to the URL it was loaded from.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	location *url.URL
	alerts   []string
	reload   bool
}

// Parse reads an HTML page and binds it to location (the page URL path, with
// optional query).
func Parse(r io.Reader, location string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	loc, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: location %q: %w", ErrParse, location, err)
	}
	return &Document{root: root, location: loc}, nil
}

// Location returns a copy of the document URL.
func (d *Document) Location() *url.URL {
	u := *d.location
	return &u
}

// Has reports whether an element with the given id exists.
func (d *Document) Has(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return findByID(d.root, id) != nil
}

// ReplaceChildren removes every child of the element with the given id and
// appends rows in order. Rows must be detached nodes.
func (d *Document) ReplaceChildren(id string, rows []*html.Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := findByID(d.root, id)
	if el == nil {
		return fmt.Errorf("%w: #%s", ErrNoElement, id)
	}
	for _, row := range rows {
		if row.Parent != nil || row.PrevSibling != nil || row.NextSibling != nil {
			return fmt.Errorf("%w: row for #%s", ErrAttached, id)
		}
	}
	clearChildren(el)
	for _, row := range rows {
		el.AppendChild(row)
	}
	return nil
}

// SetText replaces the content of the element with a single text node.
func (d *Document) SetText(id, text string) error {
	return d.ReplaceChildren(id, []*html.Node{Text(text)})
}

// TextContent returns the concatenated text of the element and its descendants.
func (d *Document) TextContent(id string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := findByID(d.root, id)
	if el == nil {
		return "", fmt.Errorf("%w: #%s", ErrNoElement, id)
	}
	return textContent(el), nil
}

// Items returns the text content of every element child of the container,
// in document order.
func (d *Document) Items(id string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := findByID(d.root, id)
	if el == nil {
		return nil, fmt.Errorf("%w: #%s", ErrNoElement, id)
	}
	items := []string{}
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			items = append(items, textContent(c))
		}
	}
	return items, nil
}

// Value returns the value attribute of an input element, or "" when either
// the element or the attribute is missing.
func (d *Document) Value(id string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := findByID(d.root, id)
	if el == nil {
		return ""
	}
	if el.DataAtom == atom.Textarea {
		return textContent(el)
	}
	v, _ := attr(el, "value")
	return v
}

// SetValue fills an input (or textarea) with v, the way a user typing would.
func (d *Document) SetValue(id, v string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := findByID(d.root, id)
	if el == nil {
		return fmt.Errorf("%w: #%s", ErrNoElement, id)
	}
	if el.DataAtom == atom.Textarea {
		clearChildren(el)
		el.AppendChild(Text(v))
		return nil
	}
	setAttr(el, "value", v)
	return nil
}

// Alert queues a user-facing message.
func (d *Document) Alert(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, msg)
}

// Alerts returns the queued messages in the order they were raised.
func (d *Document) Alerts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.alerts...)
}

// Reload asks the host to load the page again from scratch.
func (d *Document) Reload() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reload = true
}

// ReloadRequested reports whether Reload was called.
func (d *Document) ReloadRequested() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reload
}

// Render writes the page as HTML. Pending alerts are written into the
// #alerts element when the page has one.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el := findByID(d.root, AlertsID); el != nil {
		clearChildren(el)
		for _, msg := range d.alerts {
			el.AppendChild(Element(atom.P, []html.Attribute{{Key: "class", Val: "alert"}}, Text(msg)))
		}
	}
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// String renders the document, mainly for tests and debugging.
func (d *Document) String() string {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}
