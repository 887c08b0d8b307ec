package scraper

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Page is a fetched page parsed for extraction.
type Page struct {
	URL string
	Doc *goquery.Document
}

// ParsePage decodes body to UTF-8 and parses it. contentType is the
// response Content-Type and may be empty.
func ParsePage(pageURL string, body []byte, contentType string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(utf8Reader(body, contentType))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{URL: pageURL, Doc: doc}, nil
}

// root returns the document node for XPath queries.
func (p *Page) root() *html.Node {
	if len(p.Doc.Nodes) == 0 {
		return nil
	}
	return p.Doc.Nodes[0]
}

func utf8Reader(body []byte, contentType string) io.Reader {
	label := DetectCharset(body, contentType)
	if label == "utf-8" {
		return bytes.NewReader(body)
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return bytes.NewReader(body)
	}
	return r
}

// DetectCharset picks the encoding of an HTML body. Valid UTF-8 wins, then a
// declared charset (BOM, header or meta tag), then statistical detection.
func DetectCharset(body []byte, contentType string) string {
	if utf8.Valid(body) {
		return "utf-8"
	}
	if _, name, certain := charset.DetermineEncoding(body, contentType); certain || name != "windows-1252" {
		return strings.ToLower(name)
	}
	result, err := chardet.NewHtmlDetector().DetectBest(body)
	if err != nil || result == nil {
		return "windows-1252"
	}
	return strings.ToLower(result.Charset)
}
