package filter

import (
	"regexp"
	"strings"
)

// Altering these regular expressions can have a major effect on the
// performance of the filters used for finding URLs in the text, especially
// if they are very general and could match very long pieces of text.
// Please be careful when altering them.

// FullURLRegExp matches protocolname:// or www. followed by anything other
// than whitespace, <, >, ' or ", ending before trailing punctuation.
// The first character after "www." may not be a dot.
var FullURLRegExp = regexp.MustCompile(
	`(www\.[^.\s<>'"]|[a-z][a-z0-9+.-]*://)[^\s<>'"]*[^!,.\s<>'"\]):]`)

// EmailAddressRegExp matches [word chars, dots, dashes or plus signs]@[word
// chars, dots or dashes].[word chars].
var EmailAddressRegExp = regexp.MustCompile(`\b(\w|\.|-|\+)+@(\w|\.|-)+\.\w+\b`)

// CompleteURLRegExp matches a full url or an email address.
var CompleteURLRegExp = regexp.MustCompile(
	`(` + FullURLRegExp.String() + `|` + EmailAddressRegExp.String() + `)`)

// URLFilter hotspots URLs and email addresses with open and copy actions.
// Opening and copying go through the supplied collaborators; the filter
// itself never touches a browser or clipboard.
type URLFilter struct {
	RegExpFilter
}

func NewURLFilter(open func(url string), copyText func(text string)) *URLFilter {
	f := &URLFilter{}
	f.searchText = CompleteURLRegExp
	f.newHotSpot = func(startLine, startColumn, endLine, endColumn int, capturedTexts []string) *HotSpot {
		spot := &HotSpot{
			StartLine:     startLine,
			StartColumn:   startColumn,
			EndLine:       endLine,
			EndColumn:     endColumn,
			Type:          HotSpotLink,
			CapturedTexts: capturedTexts,
		}
		url := ""
		if len(capturedTexts) > 0 {
			url = capturedTexts[0]
		}
		if open != nil {
			spot.Actions = append(spot.Actions, Action{
				Kind:     ActionOpen,
				Label:    "Open Link",
				Activate: func() { open(normalizeURL(url)) },
			})
		}
		if copyText != nil {
			spot.Actions = append(spot.Actions, Action{
				Kind:     ActionCopy,
				Label:    "Copy Link Address",
				Activate: func() { copyText(url) },
			})
		}
		return spot
	}
	return f
}

// normalizeURL turns the matched text into something a browser can open:
// bare www hosts get an http scheme and bare email addresses a mailto one.
func normalizeURL(url string) string {
	switch urlType(url) {
	case standardURL:
		return "http://" + url
	case email:
		return "mailto:" + url
	default:
		return url
	}
}

type kindOfURL int

const (
	fullURL kindOfURL = iota
	standardURL
	email
	unknown
)

func urlType(url string) kindOfURL {
	switch {
	case FullURLRegExp.MatchString(url) && strings.Contains(url, "://"):
		return fullURL
	case strings.HasPrefix(url, "www."):
		return standardURL
	case EmailAddressRegExp.MatchString(url):
		return email
	default:
		return unknown
	}
}
