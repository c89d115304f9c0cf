package nba

import (
	"strings"

	"golang.org/x/net/html"
)

// table is a parsed HTML table: header cells plus body rows.
type table struct {
	headers []string
	rows    [][]string
}

// findTableByID locates a table element with the given id anywhere in the
// document. basketball-reference hides several tables inside HTML comments to
// defer rendering, so comment nodes are re-parsed and searched as well.
func findTableByID(doc *html.Node, id string) *table {
	var found *table

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}

		if n.Type == html.ElementNode && n.Data == "table" && nodeAttr(n, "id") == id {
			found = parseTable(n)
			return
		}

		if n.Type == html.CommentNode && strings.Contains(n.Data, "<table") {
			if inner, err := html.Parse(strings.NewReader(n.Data)); err == nil {
				walk(inner)
			}
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return found
}

// parseTable extracts header and body cell text from a table element.
func parseTable(tbl *html.Node) *table {
	t := &table{}

	var inHead bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "thead":
				inHead = true
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				inHead = false
				return
			case "tr":
				var cells []string
				var isHeaderRow bool
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type != html.ElementNode {
						continue
					}
					if c.Data == "th" || c.Data == "td" {
						cells = append(cells, cellText(c))
						if c.Data == "th" && inHead {
							isHeaderRow = true
						}
					}
				}
				if len(cells) == 0 {
					return
				}
				if isHeaderRow {
					// Keep the last header row; over-rows only group columns.
					t.headers = cells
				} else {
					t.rows = append(t.rows, cells)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(tbl)

	return t
}

// render produces a compact pipe-separated text view limited to maxRows rows
// and the named columns (all columns when cols is nil).
func (t *table) render(maxRows int, cols []string) string {
	if t == nil || len(t.rows) == 0 {
		return ""
	}

	keep := make([]int, 0, len(t.headers))
	if cols == nil {
		for i := range t.headers {
			keep = append(keep, i)
		}
	} else {
		for _, want := range cols {
			for i, h := range t.headers {
				if strings.EqualFold(h, want) {
					keep = append(keep, i)
					break
				}
			}
		}
	}
	if len(keep) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		parts := make([]string, 0, len(keep))
		for _, i := range keep {
			if i < len(cells) {
				parts = append(parts, cells[i])
			}
		}
		sb.WriteString(strings.Join(parts, " | "))
		sb.WriteString("\n")
	}

	if len(t.headers) > 0 {
		writeRow(t.headers)
	}
	for i, row := range t.rows {
		if maxRows > 0 && i >= maxRows {
			break
		}
		writeRow(row)
	}

	return sb.String()
}

func nodeAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func cellText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
