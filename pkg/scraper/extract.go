package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

const DefaultImageClass = "dress-360"

var ErrNoImagesFound = errors.New("No 360° images found on the page. Verify the URL or selector.")

// ExtractImageURLs returns the src of every <img> carrying the given class,
// resolved against the page URL. Matching tags without a src are skipped.
func ExtractImageURLs(page []byte, pageURL *url.URL, class string) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var matched int
	var urls []string

	var crawler func(*html.Node)
	crawler = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" && hasClass(n, class) {
			matched++
			if src, ok := attr(n, "src"); ok {
				abs, err := pageURL.Parse(strings.TrimSpace(src))
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"src":   src,
						"page":  pageURL.String(),
						"error": err.Error(),
					}).Debug("Skipping image with unparsable src")
				} else {
					urls = append(urls, abs.String())
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			crawler(c)
		}
	}
	crawler(doc)

	if matched == 0 {
		return nil, ErrNoImagesFound
	}

	return urls, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	value, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(value) {
		if c == class {
			return true
		}
	}
	return false
}
