package htmlclean

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

const maxFields = 200

// FormFields lists the fillable controls of a page with a selector the
// browser can act on. Hidden inputs and buttons are skipped.
func FormFields(rawHTML string) ([]entity.UIElement, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	labels := collectLabels(doc)
	var fields []entity.UIElement

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(fields) >= maxFields {
			return
		}
		if n.Type == html.ElementNode {
			if f, ok := toField(n, labels); ok {
				f.ID = fmt.Sprintf("field-%03d", len(fields))
				fields = append(fields, f)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return fields, nil
}

func toField(n *html.Node, labels map[string]string) (entity.UIElement, bool) {
	var f entity.UIElement

	switch n.Data {
	case "input":
		typ := strings.ToLower(attr(n, "type"))
		if typ == "" {
			typ = "text"
		}
		if isOneOf(typ, "hidden", "submit", "button", "reset", "image") {
			return f, false
		}
		f.Type = typ
	case "textarea":
		f.Type = "textarea"
	case "select":
		f.Type = "select"
		f.Options = options(n)
	default:
		if attr(n, "contenteditable") == "true" || attr(n, "role") == "textbox" {
			f.Type = "textbox"
		} else {
			return f, false
		}
	}

	id := attr(n, "id")
	f.Name = attr(n, "name")
	f.Placeholder = attr(n, "placeholder")
	f.Required = hasAttr(n, "required") || attr(n, "aria-required") == "true"
	f.Label = firstNonEmpty(labels[id], attr(n, "aria-label"), wrappingLabel(n), f.Placeholder)
	f.Selector = selector(n, id, f.Name)
	return f, true
}

func collectLabels(doc *html.Node) map[string]string {
	labels := map[string]string{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "label" {
			if target := attr(n, "for"); target != "" {
				labels[target] = textOf(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return labels
}

func wrappingLabel(n *html.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "label" {
			return textOf(p)
		}
	}
	return ""
}

func options(n *html.Node) []string {
	var opts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "option":
			if t := textOf(c); t != "" {
				opts = append(opts, t)
			}
		case "optgroup":
			opts = append(opts, options(c)...)
		}
	}
	return opts
}

func selector(n *html.Node, id, name string) string {
	switch {
	case id != "":
		return fmt.Sprintf("[id=%q]", id)
	case name != "":
		return fmt.Sprintf("%s[name=%q]", n.Data, name)
	default:
		return cssPath(n)
	}
}

// cssPath builds a tag:nth-of-type chain up to the nearest element with an id.
func cssPath(n *html.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if id := attr(cur, "id"); id != "" && cur != n {
			parts = append(parts, fmt.Sprintf("[id=%q]", id))
			break
		}
		if cur.Data == "html" {
			parts = append(parts, "html")
			break
		}
		parts = append(parts, fmt.Sprintf("%s:nth-of-type(%d)", cur.Data, nthOfType(cur)))
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

func nthOfType(n *html.Node) int {
	idx := 1
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.Data == n.Data {
			idx++
		}
	}
	return idx
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			sb.WriteByte(' ')
		}
		if c.Type == html.ElementNode && isOneOf(c.Data, "select", "script", "style") {
			return
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			walk(k)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
