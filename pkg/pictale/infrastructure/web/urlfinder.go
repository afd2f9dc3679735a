package web

import "github.com/mvdan/xurls"

// URLFinder finds links in chat messages. Only URLs with a scheme count: "look at cat.png" is not a link.
type URLFinder struct{}

func NewURLFinder() *URLFinder {
	return &URLFinder{}
}

// FindURLs returns the URLs found in `str` in order of appearance, without duplicates.
func (u *URLFinder) FindURLs(str string) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, found := range xurls.Strict.FindAllString(str, -1) {
		if seen[found] {
			continue
		}
		seen[found] = true
		urls = append(urls, found)
	}
	return urls
}

// FirstURL the first URL in `str`, if any.
func (u *URLFinder) FirstURL(str string) (string, bool) {
	urls := xurls.Strict.FindAllString(str, 1)
	if len(urls) == 0 {
		return "", false
	}
	return urls[0], true
}
