// Package feeds turns raw feed documents into headline entries.
//
// RSS items and Atom entries are read with gofeed's format-specific parsers
// rather than the universal one, so date strings are kept exactly as the
// publisher wrote them. Input is first checked with a strict XML decoder,
// since gofeed tolerates broken markup.
package feeds

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/mmcdole/gofeed/rss"
	"golang.org/x/net/html/charset"

	"github.com/abelbrown/newsagent/internal/model"
)

// ErrNotFeed is returned when the bytes are not a well-formed XML document.
var ErrNotFeed = errors.New("document is not a feed")

// Parser converts feed bytes into entries. The zero value is not usable;
// call NewParser.
type Parser struct {
	rss  *rss.Parser
	atom *atom.Parser
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{
		rss:  &rss.Parser{},
		atom: &atom.Parser{},
	}
}

// Parse extracts at most maxItems entries from data, in document order.
// Category and Urgency are left empty for the classifier.
//
// Every document must be well-formed XML. Under a root gofeed does not
// recognize, item and Atom entry elements are collected wherever they sit.
func (p *Parser) Parse(data []byte, maxItems int) ([]model.Entry, error) {
	scanned, err := scanXML(data)
	if err != nil {
		return nil, err
	}

	entries := scanned
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeRSS:
		entries, err = p.parseRSS(data)
	case gofeed.FeedTypeAtom:
		entries, err = p.parseAtom(data)
	}
	if err != nil {
		return nil, err
	}

	return limit(entries, maxItems), nil
}

func (p *Parser) parseRSS(data []byte) ([]model.Entry, error) {
	feed, err := p.rss.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS: %w", err)
	}

	entries := make([]model.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		field := func(name string) string { return rssText(item, name) }

		entries = append(entries, model.Entry{
			Title:   field("title"),
			Link:    field("link"),
			Summary: firstNonEmpty(field("description"), field("summary")),
			Date:    firstNonEmpty(field("pubDate"), field("updated")),
		})
	}
	return entries, nil
}

func (p *Parser) parseAtom(data []byte) ([]model.Entry, error) {
	feed, err := p.atom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Atom: %w", err)
	}

	entries := make([]model.Entry, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		if entry == nil {
			continue
		}
		entries = append(entries, model.Entry{
			Title:   firstNonEmpty(clean(entry.Title), extText(entry.Extensions, "title")),
			Link:    firstNonEmpty(atomLink(entry.Links), extText(entry.Extensions, "link")),
			Summary: firstNonEmpty(extText(entry.Extensions, "description"), clean(entry.Summary), extText(entry.Extensions, "summary")),
			Date:    firstNonEmpty(extText(entry.Extensions, "pubDate"), clean(entry.Updated), extText(entry.Extensions, "updated")),
		})
	}
	return entries, nil
}

// rssText looks a field up by its plain tag first, then by local name in
// any namespace.
func rssText(item *rss.Item, name string) string {
	var plain string
	switch name {
	case "title":
		plain = item.Title
	case "link":
		plain = item.Link
	case "description":
		plain = item.Description
	case "pubDate":
		plain = item.PubDate
	default:
		plain = item.Custom[name]
	}
	if v := clean(plain); v != "" {
		return v
	}
	return extText(item.Extensions, name)
}

// extText returns the first non-empty extension element with the given
// local name. gofeed groups extensions by prefix and drops their relative
// order, so prefixes are searched alphabetically: with <b:date> before
// <a:date> in the document, a:date wins.
func extText(exts ext.Extensions, name string) string {
	if len(exts) == 0 {
		return ""
	}

	prefixes := make([]string, 0, len(exts))
	for prefix := range exts {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for _, prefix := range prefixes {
		for _, e := range exts[prefix][name] {
			if v := clean(e.Value); v != "" {
				return v
			}
			if href := clean(e.Attrs["href"]); name == "link" && href != "" {
				return href
			}
		}
	}
	return ""
}

// atomLink prefers the alternate link, then the first link with an href.
func atomLink(links []*atom.Link) string {
	var first string
	for _, l := range links {
		if l == nil || clean(l.Href) == "" {
			continue
		}
		if l.Rel == "" || l.Rel == "alternate" {
			return clean(l.Href)
		}
		if first == "" {
			first = clean(l.Href)
		}
	}
	return first
}

// scanXML decodes data strictly and collects every item element without a
// namespace and every Atom entry element below the root, items first.
// Any syntax error, or a document without a root element, is ErrNotFeed.
func scanXML(data []byte) ([]model.Entry, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	var (
		items, entries []model.Entry
		open           []*element // enclosing item/entry elements
		child          *field     // direct child of open[len(open)-1]
		depth          int
		sawRoot        bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFeed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			depth++
			if n := len(open); n > 0 && child == nil && depth == open[n-1].depth+1 {
				child = &field{name: t.Name, href: attr(t, "href"), rel: attr(t, "rel")}
			}
			if depth > 1 && isEntryElement(t.Name) {
				open = append(open, &element{depth: depth, atom: t.Name.Space == atomNS})
				child = nil
			}
		case xml.CharData:
			if child != nil && depth == open[len(open)-1].depth+1 {
				child.text += string(t)
			}
		case xml.EndElement:
			n := len(open)
			switch {
			case n > 0 && depth == open[n-1].depth:
				el := open[n-1]
				open = open[:n-1]
				if el.atom {
					entries = append(entries, el.entry())
				} else {
					items = append(items, el.entry())
				}
				child = nil
			case n > 0 && child != nil && depth == open[n-1].depth+1:
				open[n-1].fields = append(open[n-1].fields, *child)
				child = nil
			}
			depth--
		}
	}
	if !sawRoot {
		return nil, fmt.Errorf("%w: no root element", ErrNotFeed)
	}
	return append(items, entries...), nil
}

const atomNS = "http://www.w3.org/2005/Atom"

func isEntryElement(name xml.Name) bool {
	return (name.Space == "" && name.Local == "item") ||
		(name.Space == atomNS && name.Local == "entry")
}

// element is an item or entry being collected by scanXML.
type element struct {
	depth  int
	atom   bool
	fields []field
}

type field struct {
	name xml.Name
	text string
	href string
	rel  string
}

func (el *element) entry() model.Entry {
	return model.Entry{
		Title:   el.text("title"),
		Link:    el.text("link"),
		Summary: firstNonEmpty(el.text("description"), el.text("summary")),
		Date:    firstNonEmpty(el.text("pubDate"), el.text("updated")),
	}
}

// text resolves a child by its plain tag first, then by local name in any
// namespace, in document order. Atom-style links carry the URL in href.
func (el *element) text(name string) string {
	for _, plainOnly := range []bool{true, false} {
		for _, f := range el.fields {
			if f.name.Local != name || (plainOnly && f.name.Space != "") {
				continue
			}
			if v := clean(f.text); v != "" {
				return v
			}
		}
	}
	if name != "link" {
		return ""
	}

	var first string
	for _, f := range el.fields {
		href := clean(f.href)
		if f.name.Local != "link" || href == "" {
			continue
		}
		if f.rel == "" || f.rel == "alternate" {
			return href
		}
		if first == "" {
			first = href
		}
	}
	return first
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func limit(entries []model.Entry, maxItems int) []model.Entry {
	if maxItems <= 0 {
		return []model.Entry{}
	}
	if len(entries) > maxItems {
		return entries[:maxItems]
	}
	return entries
}

func clean(s string) string {
	return strings.TrimSpace(s)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
