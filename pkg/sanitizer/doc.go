// Package sanitizer renders user-supplied article markdown to HTML that is
// safe to embed, and strips markup from plain-text fields.
//
// Markdown is converted with goldmark and the output is filtered through a
// bluemonday allow-list, so raw HTML in the source never survives:
//
//	html, err := sanitizer.Markdown("**Banjir** di jalan <img src=x onerror=alert(1)>")
//	// the img element does not appear in html
package sanitizer
