// Package shared contains components used by more than one page.
package shared

// Page is embedded by full-page components to share the banner and footer.
//
//	type Menu struct {
//		shared.Page
//		...
//	}
type Page struct {
	Title    string
	Subtitle string
}

func (p Page) Banner() Banner {
	return Banner{Title: p.Title, Subtitle: p.Subtitle}
}

func (p Page) Footer() Footer {
	return Footer{}
}
