package site

import (
	"oakwood-site/internal/content"
)

// DefaultDescription is used when a page has no description of its own.
const DefaultDescription = "Oakwood Systems is a certified Microsoft Solutions Partner specializing in Data & AI, Cloud Infrastructure, Application Innovation, and Modern Work solutions."

// Brand identifies the site in titles and structured data.
type Brand struct {
	Name string
	URL  string
}

// Meta is the head metadata for one rendered page.
type Meta struct {
	Title       string
	Description string
	OGTitle     string
	URL         string
	Image       string
	// StructuredData is emitted as an application/ld+json script when set.
	StructuredData any
	NoIndex        bool
}

// Organization is schema.org Organization structured data.
type Organization struct {
	Context      string        `json:"@context,omitempty"`
	Type         string        `json:"@type"`
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	Description  string        `json:"description,omitempty"`
	Logo         string        `json:"logo,omitempty"`
	SameAs       []string      `json:"sameAs,omitempty"`
	ContactPoint *ContactPoint `json:"contactPoint,omitempty"`
}

// ContactPoint is schema.org ContactPoint structured data.
type ContactPoint struct {
	Type        string `json:"@type"`
	ContactType string `json:"contactType"`
	URL         string `json:"url"`
}

// ServiceData is schema.org Service structured data.
type ServiceData struct {
	Context     string       `json:"@context"`
	Type        string       `json:"@type"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Provider    Organization `json:"provider"`
	URL         string       `json:"url"`
}

// HomeMeta builds the home page metadata. home may be nil when no content
// could be loaded.
func HomeMeta(b Brand, home *content.HomeContent) Meta {
	var hero *content.HeroSection
	if home != nil {
		hero = home.Hero
	}

	m := Meta{
		Title:       b.Name + " - Microsoft Solutions Partner",
		Description: DefaultDescription,
		OGTitle:     b.Name,
		URL:         b.URL,
	}
	orgDescription := "Microsoft Solutions Partner"
	if hero != nil && hero.Title != "" {
		m.Title = hero.Title + " | " + b.Name
		m.OGTitle = hero.Title
	}
	if hero != nil && hero.Description != "" {
		m.Description = hero.Description
		orgDescription = hero.Description
	}
	if home != nil && len(home.VideoURLs) > 0 {
		m.Image = b.URL + "/og-image.jpg"
	}

	org := Organization{
		Context:     "https://schema.org",
		Type:        "Organization",
		Name:        b.Name,
		URL:         b.URL,
		Description: orgDescription,
		Logo:        b.URL + "/logo.png",
		ContactPoint: &ContactPoint{
			Type:        "ContactPoint",
			ContactType: "Customer Service",
			URL:         b.URL + "/contact-us",
		},
	}
	if home != nil && home.Footer != nil {
		for _, s := range home.Footer.SocialMedia {
			org.SameAs = append(org.SameAs, s.Link)
		}
	}
	m.StructuredData = org
	return m
}

// ServiceMeta builds a service page's metadata.
func ServiceMeta(b Brand, svc *content.ServiceContent) Meta {
	url := b.URL + "/services/" + svc.Slug
	description := svc.Summary()
	return Meta{
		Title:       svc.Title + " | " + b.Name,
		Description: description,
		OGTitle:     svc.Title,
		URL:         url,
		Image:       svc.BackgroundImage,
		StructuredData: ServiceData{
			Context:     "https://schema.org",
			Type:        "Service",
			Name:        svc.Title,
			Description: description,
			Provider:    Organization{Type: "Organization", Name: b.Name, URL: b.URL},
			URL:         url,
		},
	}
}

// ErrorMeta builds metadata for error pages, which are never indexed.
func ErrorMeta(b Brand, title string) Meta {
	return Meta{
		Title:       title + " | " + b.Name,
		Description: DefaultDescription,
		OGTitle:     title,
		URL:         b.URL,
		NoIndex:     true,
	}
}
