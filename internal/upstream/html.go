package upstream

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
)

// Error variables for HTML parser errors
var (
	// ErrInvalidXPath is returned when the XPath expression syntax is invalid
	ErrInvalidXPath = errors.New("invalid XPath expression")
	// ErrNoSelectorOrXPath is returned when the html parser has neither a selector nor an xpath
	ErrNoSelectorOrXPath = errors.New("either selector or xpath must be provided")
)

// htmlParser extracts candidates from HTML using a CSS selector or an
// XPath expression. Every matching element's text is a candidate. An
// optional pattern narrows each text to its first regex match,
// dropping elements the pattern does not match.
type htmlParser struct {
	selector string
	xpath    string
	pattern  *regexp.Regexp
}

func newHTMLParser(selector, xpath, pattern string) (*htmlParser, error) {
	if selector == "" && xpath == "" {
		return nil, ErrNoSelectorOrXPath
	}
	p := &htmlParser{selector: selector, xpath: xpath}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRegexPattern, err)
		}
		p.pattern = re
	}
	return p, nil
}

func (p *htmlParser) Extract(content []byte) ([]string, error) {
	var texts []string
	var err error

	if p.selector != "" {
		texts, err = p.extractCSS(content)
	} else {
		texts, err = p.extractXPath(content)
	}
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if p.pattern != nil {
			m := p.pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if len(m) > 1 {
				text = m[1]
			} else {
				text = m[0]
			}
		}
		if text != "" {
			candidates = append(candidates, text)
		}
	}
	return candidates, nil
}

// extractCSS collects the text of every element matching the CSS selector.
func (p *htmlParser) extractCSS(content []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var texts []string
	doc.Find(p.selector).Each(func(_ int, sel *goquery.Selection) {
		texts = append(texts, sel.Text())
	})
	return texts, nil
}

// extractXPath collects the inner text of every node matching the XPath.
func (p *htmlParser) extractXPath(content []byte) ([]string, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	nodes, err := htmlquery.QueryAll(doc, p.xpath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXPath, err)
	}

	var texts []string
	for _, node := range nodes {
		texts = append(texts, htmlquery.InnerText(node))
	}
	return texts, nil
}
