package controller

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// go-rod has no native by-link-text or by-partial-link-text primitive,
// and no direct "nth element matching this tag" query either. For those
// three locator strategies we parse a rendered-HTML snapshot with
// goquery, find the matching node(s) there, and translate each match
// into a plain CSS path that rod's own selector engine can then hand
// back a live element for.

// linkTextMatches returns, in document order, the CSS path of every <a>
// whose text content matches value (exact if partial is false,
// substring if true).
func linkTextMatches(snapshot, value string, partial bool) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("controller: parse snapshot: %w", err)
	}
	var paths []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		matched := text == value
		if partial {
			matched = strings.Contains(text, value)
		}
		if !matched || s.Length() == 0 {
			return
		}
		if node := s.Get(0); node != nil {
			paths = append(paths, cssPath(node))
		}
	})
	return paths, nil
}

// tagNameMatches returns the CSS path of every element with the given
// tag name, in document order.
func tagNameMatches(snapshot, tag string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("controller: parse snapshot: %w", err)
	}
	var paths []string
	doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if node := s.Get(0); node != nil {
			paths = append(paths, cssPath(node))
		}
	})
	return paths, nil
}

// cssPath builds a selector that walks from the document root down to
// n using ":nth-child(k)" at each level, which is enough to pick the
// exact node back out through rod's own CSS engine.
func cssPath(n *html.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode && cur.Data != "html"; cur = cur.Parent {
		parts = append([]string{fmt.Sprintf("%s:nth-child(%d)", cur.Data, nthChildIndex(cur))}, parts...)
	}
	return strings.Join(parts, " > ")
}

func nthChildIndex(n *html.Node) int {
	i := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == html.ElementNode {
			i++
		}
	}
	return i
}
