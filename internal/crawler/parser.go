package crawler

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// HTML element name constants for form field detection.
const (
	htmlElementInput    = "input"
	htmlElementSelect   = "select"
	htmlElementTextarea = "textarea"
)

// skippedElements never contribute visible text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
}

// secretFieldNames are form field name fragments that ask for something a
// legitimate page rarely needs in a plain form.
var secretFieldNames = []string{
	"password", "passwd", "pin", "otp", "cvv", "cvc", "card", "bvn", "nin", "ssn", "seed", "mnemonic",
}

// Parser extracts visible text, title and forms from HTML.
// It works on the raw token tree, so it copes with the malformed markup
// that throwaway scam pages tend to ship.
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving form actions.
	baseURL *url.URL
}

// ParseResult contains everything extracted from one HTML document.
type ParseResult struct {
	// Title is the text of the <title> element.
	Title string

	// Text is the visible text in document order, one chunk per text node.
	Text string

	// Description is the meta description, if present.
	Description string

	// Forms lists the forms found in the document.
	Forms []FormInfo
}

// FormInfo describes an HTML form.
type FormInfo struct {
	// Action is the resolved form action URL.
	Action string

	// Method is the HTTP method (GET, POST).
	Method string

	// Fields contains form field names and types.
	Fields []FormField
}

// FormField represents a form input field.
type FormField struct {
	// Name is the field name attribute.
	Name string

	// Type is the input type (text, password, hidden, etc.).
	Type string

	// Placeholder is the hint shown to the visitor.
	Placeholder string
}

// AsksForSecrets reports whether the form has a password field or a field
// whose name suggests card numbers, PINs, one-time codes and the like.
func (f FormInfo) AsksForSecrets() bool {
	for _, field := range f.Fields {
		if field.Type == "password" {
			return true
		}
		name := strings.ToLower(field.Name)
		for _, s := range secretFieldNames {
			if strings.Contains(name, s) {
				return true
			}
		}
	}
	return false
}

// NewParser creates a parser. The base URL is used to resolve relative form actions.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse reads HTML from content.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Forms: make([]FormInfo, 0)}
	var text strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "title" {
				if result.Title == "" {
					result.Title = strings.TrimSpace(nodeText(n))
				}
				return
			}
			if n.Data == "meta" && strings.EqualFold(getAttr(n, "name"), "description") {
				result.Description = strings.TrimSpace(getAttr(n, "content"))
			}
			if skippedElements[n.Data] {
				return
			}
			p.processElement(n, result, &text)
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				text.WriteString(s)
				text.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	result.Text = strings.TrimSpace(text.String())
	return result, nil
}

// processElement handles element nodes that carry text outside of text nodes.
func (p *Parser) processElement(n *html.Node, result *ParseResult, text *strings.Builder) {
	switch n.Data {
	case "form":
		form := FormInfo{
			Action: p.resolveURL(getAttr(n, "action")),
			Method: strings.ToUpper(getAttr(n, "method")),
			Fields: make([]FormField, 0),
		}
		if form.Method == "" {
			form.Method = "GET"
		}
		p.extractFormFields(n, &form)
		result.Forms = append(result.Forms, form)

	case htmlElementInput, htmlElementTextarea:
		// Placeholders and button labels are what the visitor reads.
		if ph := strings.TrimSpace(getAttr(n, "placeholder")); ph != "" {
			text.WriteString(ph)
			text.WriteString(" ")
		}
		switch strings.ToLower(getAttr(n, "type")) {
		case "submit", "button":
			if v := strings.TrimSpace(getAttr(n, "value")); v != "" {
				text.WriteString(v)
				text.WriteString(" ")
			}
		}

	case "img":
		if alt := strings.TrimSpace(getAttr(n, "alt")); alt != "" {
			text.WriteString(alt)
			text.WriteString(" ")
		}
	}
}

// extractFormFields recursively extracts form fields from a form element.
func (p *Parser) extractFormFields(n *html.Node, form *FormInfo) {
	if n.Type == html.ElementNode && (n.Data == htmlElementInput || n.Data == htmlElementSelect || n.Data == htmlElementTextarea) {
		field := FormField{
			Name:        getAttr(n, "name"),
			Type:        strings.ToLower(getAttr(n, "type")),
			Placeholder: getAttr(n, "placeholder"),
		}
		if field.Type == "" {
			switch n.Data {
			case htmlElementTextarea:
				field.Type = htmlElementTextarea
			case htmlElementSelect:
				field.Type = htmlElementSelect
			default:
				field.Type = "text"
			}
		}
		if field.Name != "" || field.Type == "password" {
			form.Fields = append(form.Fields, field)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.extractFormFields(c, form)
	}
}

// resolveURL resolves a relative URL against the base URL.
// An empty action posts back to the page itself.
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return p.baseURL.String()
	}
	if strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return p.baseURL.ResolveReference(u).String()
}

// nodeText concatenates all text below n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
