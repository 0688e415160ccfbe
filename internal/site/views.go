package site

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"oakwood-site/internal/content"
)

// Chrome is the content shared by every page: navbar and footer.
type Chrome struct {
	Brand   Brand
	Navbar  *content.NavbarContent
	Footer  *content.FooterSection
	Catalog []content.CatalogService
	// ActivePath highlights the matching menu item.
	ActivePath string
}

// HeroProps configures a VideoHero.
type HeroProps struct {
	Page        string
	Slug        string
	Clips       content.ClipList
	Poster      string
	Title       string
	Description string
	Primary     *content.CTA
	Secondary   *content.CTA
}

// Layout renders the full document around body.
func Layout(meta Meta, chrome Chrome, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(meta.Title)
		h.raw("</title>")
		h.render(ctx, Head(meta))
		h.raw(`<link rel="stylesheet" href="/static/site.css">`)
		h.raw(`<script src="/static/carousel.js" defer></script>`)
		h.raw("</head><body>")
		h.render(ctx, Navbar(chrome))
		h.raw(`<main id="main">`)
		h.render(ctx, body)
		h.raw("</main>")
		h.render(ctx, Footer(chrome.Brand, chrome.Footer))
		h.raw("</body></html>")
	})
}

// Head renders the description, Open Graph, Twitter and canonical tags and
// the structured data script.
func Head(meta Meta) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		nameTag := func(name, value string) {
			h.raw("<meta")
			h.attr("name", name)
			h.attr("content", value)
			h.raw(">")
		}
		propertyTag := func(property, value string) {
			h.raw("<meta")
			h.attr("property", property)
			h.attr("content", value)
			h.raw(">")
		}

		nameTag("description", meta.Description)
		if meta.NoIndex {
			nameTag("robots", "noindex")
		}
		propertyTag("og:title", meta.OGTitle)
		propertyTag("og:description", meta.Description)
		propertyTag("og:type", "website")
		propertyTag("og:url", meta.URL)
		if meta.Image != "" {
			propertyTag("og:image", meta.Image)
		}
		nameTag("twitter:card", "summary_large_image")
		nameTag("twitter:title", meta.OGTitle)
		nameTag("twitter:description", meta.Description)
		h.raw(`<link rel="canonical"`)
		h.url("href", meta.URL)
		h.raw(">")

		if meta.StructuredData != nil {
			h.render(ctx, templ.JSONScript("structured-data", meta.StructuredData).WithType("application/ld+json"))
		}
	})
}

// Navbar renders the site header with its menu and the services dropdown.
func Navbar(c Chrome) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<header class="navbar"><nav class="navbar__inner" aria-label="Main">`)
		h.raw(`<a class="navbar__brand" href="/">`)
		h.text(c.Brand.Name)
		h.raw(`</a>`)
		h.raw(`<button type="button" class="navbar__toggle" aria-controls="navbar-menu" aria-expanded="false" data-toggle="mobile-menu">Menu</button>`)
		h.raw(`<ul id="navbar-menu" class="navbar__menu">`)

		var items []content.MenuItem
		if c.Navbar != nil {
			items = c.Navbar.MenuItems
		}
		for _, item := range items {
			class := "navbar__item"
			if item.RouterLink == c.ActivePath {
				class += " is-active"
			}
			if item.HasDropdown {
				class += " dropdown-container"
			}
			h.raw("<li")
			h.attr("class", class)
			h.raw("><a")
			h.url("href", item.RouterLink)
			if item.HasDropdown {
				h.raw(` aria-haspopup="true" data-toggle="dropdown"`)
			}
			h.raw(">")
			h.text(item.Label)
			h.raw("</a>")
			if item.HasDropdown {
				h.render(ctx, ServicesDropdown(c.Catalog))
			}
			h.raw("</li>")
		}
		h.raw("</ul></nav></header>")
	})
}

// ServicesDropdown renders the Microsoft services catalog.
func ServicesDropdown(catalog []content.CatalogService) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div class="dropdown" role="menu"><ul class="dropdown__list">`)
		for _, svc := range catalog {
			h.raw(`<li class="dropdown__item"><a role="menuitem"`)
			h.url("href", svc.Link)
			h.raw(`><span class="dropdown__id">`)
			h.text(svc.ID)
			h.raw(`</span>`)
			if svc.Icon != "" {
				h.raw(`<img class="dropdown__icon" alt="" loading="lazy"`)
				h.url("src", svc.Icon)
				h.raw(">")
			}
			h.element("span", "dropdown__name", svc.Name)
			h.element("span", "dropdown__desc", svc.Desc)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></div>`)
	})
}

// Footer renders the site footer. A nil section renders only the copyright line.
func Footer(b Brand, f *content.FooterSection) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<footer class="footer">`)
		if f == nil {
			h.raw(`<p class="footer__copyright">`)
			h.text("© " + b.Name)
			h.raw(`</p></footer>`)
			return
		}

		h.raw(`<div class="footer__brand">`)
		h.element("span", "footer__logo", f.Logo.Text)
		h.raw(`</div><div class="footer__contact">`)
		h.element("h3", "", f.Contact.Heading)
		for _, l := range []content.Link{f.Contact.Phone, f.Contact.Email} {
			if l.Text == "" {
				continue
			}
			h.raw("<a")
			h.url("href", l.Link)
			h.raw(">")
			h.text(l.Text)
			h.raw("</a>")
		}
		h.raw(`</div>`)

		columns := []struct {
			title string
			links []content.RouterLink
		}{
			{"Services", f.Links.Services},
			{"Industries", f.Links.Industries},
			{"Resources", f.Links.Resources},
			{"Company", f.Links.Company},
		}
		h.raw(`<div class="footer__links">`)
		for _, col := range columns {
			if len(col.links) == 0 {
				continue
			}
			h.raw(`<div class="footer__column">`)
			h.element("h4", "", col.title)
			h.raw("<ul>")
			for _, l := range col.links {
				h.raw("<li><a")
				h.url("href", l.RouterLink)
				h.raw(">")
				h.text(l.Text)
				h.raw("</a></li>")
			}
			h.raw("</ul></div>")
		}
		h.raw(`</div>`)

		if len(f.SocialMedia) > 0 {
			h.raw(`<ul class="footer__social">`)
			for _, s := range f.SocialMedia {
				h.raw(`<li><a rel="noopener" target="_blank"`)
				h.url("href", s.Link)
				h.attr("aria-label", s.Name)
				h.raw(">")
				h.text(s.Name)
				h.raw("</a></li>")
			}
			h.raw(`</ul>`)
		}

		h.raw(`<div class="footer__legal">`)
		h.element("p", "footer__copyright", f.Copyright)
		for _, p := range f.Policies {
			h.raw("<a")
			h.url("href", p.Link)
			h.raw(">")
			h.text(p.Text)
			h.raw("</a>")
		}
		h.raw(`</div></footer>`)
	})
}

// VideoHero renders the hero banner with its clip carousel. The data
// attributes let the browser script open a live carousel session.
func VideoHero(p HeroProps) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="video-hero"`)
		if len(p.Clips) > 0 {
			h.raw(` data-carousel`)
			h.attr("data-page", p.Page)
			if p.Slug != "" {
				h.attr("data-slug", p.Slug)
			}
		}
		h.raw(">")

		if len(p.Clips) > 0 {
			h.raw(`<video class="video-hero__video" muted playsinline preload="auto"`)
			h.url("src", p.Clips[0])
			if p.Poster != "" {
				h.url("poster", p.Poster)
			}
			h.raw(`></video>`)
		} else if p.Poster != "" {
			h.raw(`<img class="video-hero__poster" alt=""`)
			h.url("src", p.Poster)
			h.raw(">")
		}
		h.raw(`<div class="video-hero__overlay"></div><div class="video-hero__content">`)
		h.element("h1", "video-hero__title", p.Title)
		h.element("p", "video-hero__description", p.Description)
		if p.Primary != nil || p.Secondary != nil {
			h.raw(`<div class="video-hero__actions">`)
			if c := p.Primary; c != nil {
				h.raw(`<a class="btn btn--primary"`)
				h.url("href", c.Link)
				if c.BackgroundColor != "" {
					h.attr("style", string(templ.SanitizeCSS("background-color", c.BackgroundColor)))
				}
				h.raw(">")
				h.text(c.Text)
				h.raw("</a>")
			}
			if c := p.Secondary; c != nil {
				h.raw(`<a class="btn btn--secondary"`)
				h.url("href", c.Link)
				if c.BorderColor != "" {
					h.attr("style", string(templ.SanitizeCSS("border-color", c.BorderColor)))
				}
				h.raw(">")
				h.text(c.Text)
				h.raw("</a>")
			}
			h.raw(`</div>`)
		}
		h.raw(`</div>`)

		if len(p.Clips) > 1 {
			h.raw(`<div class="video-hero__dots" role="tablist" aria-label="Choose video">`)
			for i, clip := range p.Clips {
				class := "video-hero__dot"
				selected := "false"
				if i == 0 {
					class += " is-active"
					selected = "true"
				}
				h.raw(`<button type="button" role="tab"`)
				h.attr("class", class)
				h.intAttr("data-index", i)
				h.url("data-src", clip)
				h.attr("aria-selected", selected)
				h.attr("aria-label", "Show video "+strconv.Itoa(i+1))
				h.raw(`></button>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</section>`)
	})
}

// HomePage renders the home page body. home may be nil.
func HomePage(home *content.HomeContent) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		props := HeroProps{Page: content.PageHome}
		if home != nil {
			props.Clips = home.VideoURLs
			if hero := home.Hero; hero != nil {
				props.Title = hero.Title
				props.Description = hero.Description
				props.Primary = hero.CTAPrimary
				props.Secondary = hero.CTASecondary
			}
		}
		h.render(ctx, VideoHero(props))

		if home == nil || home.Services == nil {
			return
		}
		svc := home.Services
		h.raw(`<section class="services">`)
		h.element("h2", "services__title", svc.Title)
		h.element("p", "services__description", svc.Description)
		h.raw(`<div class="services__grid">`)
		for _, item := range svc.Items {
			h.raw(`<article class="service-card">`)
			if item.Icon != "" {
				h.raw(`<img class="service-card__icon" alt="" loading="lazy"`)
				h.url("src", item.Icon)
				h.raw(">")
			}
			h.element("h3", "service-card__title", item.Title)
			h.element("p", "service-card__description", item.Description)
			if item.Link != "" {
				h.raw(`<a class="service-card__link"`)
				h.url("href", item.Link)
				h.raw(">Learn more</a>")
			}
			h.raw(`</article>`)
		}
		h.raw(`</div></section>`)
	})
}

// ServicePage renders one service's page body.
func ServicePage(svc *content.ServiceContent) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.render(ctx, VideoHero(HeroProps{
			Page:        content.PageService,
			Slug:        svc.Slug,
			Clips:       svc.VideoURLs,
			Poster:      svc.BackgroundImage,
			Title:       svc.Title,
			Description: svc.Description,
			Primary:     svc.CTA.Primary,
			Secondary:   svc.CTA.Secondary,
		}))

		if svc.MainDescription != nil && svc.MainDescription.Text != "" {
			h.raw(`<section class="service-intro">`)
			h.element("p", "", svc.MainDescription.Text)
			h.raw(`</section>`)
		}

		if a := svc.ServiceAreas; a != nil {
			h.raw(`<section class="service-areas">`)
			h.element("span", "tagline", a.Tagline)
			h.element("h2", "", a.Title)
			h.element("p", "", a.Description)
			h.raw(`<div class="service-areas__grid">`)
			for _, area := range a.ServiceAreas {
				h.raw(`<article class="service-area">`)
				for _, badge := range area.Badges {
					h.element("span", "badge", badge)
				}
				h.element("h3", "", area.Title)
				h.element("p", "service-area__subtitle", area.Subtitle)
				if len(area.Features) > 0 {
					h.raw("<ul>")
					for _, f := range area.Features {
						h.element("li", "", f)
					}
					h.raw("</ul>")
				}
				h.raw(`</article>`)
			}
			h.raw(`</div></section>`)
		}

		if s := svc.SolutionAccelerators; s != nil {
			h.raw(`<section class="accelerators">`)
			if len(s.VideoURLs) > 0 {
				// Decorative background loop; not driven by the carousel.
				h.raw(`<video class="accelerators__video" muted playsinline autoplay loop`)
				h.url("src", s.VideoURLs[0])
				h.raw(`></video>`)
			}
			h.element("h2", "", s.Title)
			h.element("p", "", s.Description)
			h.raw(`<div class="accelerators__grid">`)
			for _, card := range s.Cards {
				h.raw(`<article class="accelerator">`)
				h.element("h3", "", card.Title)
				h.element("p", "", card.Description)
				h.raw(`</article>`)
			}
			h.raw(`</div></section>`)
		}

		if cs := svc.FeaturedCaseStudy; cs != nil {
			h.raw(`<section class="case-study">`)
			h.element("span", "case-study__label", cs.FeaturedLabel)
			h.element("span", "case-study__tag", cs.CategoryTag)
			h.element("h2", "", cs.Title)
			h.element("p", "", cs.Description)
			if cs.ImageSrc != "" {
				h.raw(`<img loading="lazy"`)
				h.url("src", cs.ImageSrc)
				h.attr("alt", cs.Title)
				h.raw(">")
			}
			h.render(ctx, linkPair(cs.PrimaryCta, cs.SecondaryCta))
			h.raw(`</section>`)
		}

		if tp := svc.TrustedPartners; tp != nil && len(tp.Partners) > 0 {
			h.raw(`<section class="partners">`)
			h.element("h2", "", tp.Title)
			h.raw(`<div class="partners__logos">`)
			for _, p := range tp.Partners {
				alt := p.Alt
				if alt == "" {
					alt = p.Name
				}
				h.raw(`<img loading="lazy"`)
				h.url("src", p.Logo)
				h.attr("alt", alt)
				h.raw(">")
			}
			h.raw(`</div></section>`)
		}

		if why := svc.WhyOakwood; why != nil {
			h.raw(`<section class="why">`)
			h.element("span", "tagline", why.Tagline)
			h.element("h2", "", why.Title)
			h.element("p", "", why.Description)
			for _, f := range why.Features {
				h.raw(`<div class="why__feature">`)
				h.element("h3", "", f.Title)
				h.element("p", "", f.Description)
				h.raw(`</div>`)
			}
			h.raw(`</section>`)
		}

		if cta := svc.CTASection; cta != nil {
			h.raw(`<section class="cta">`)
			h.element("h2", "", cta.Headline)
			h.element("p", "", cta.Subheadline)
			h.render(ctx, linkPair(cta.PrimaryCta, cta.SecondaryCta))
			h.raw(`</section>`)
		}
	})
}

func linkPair(primary, secondary content.Link) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div class="actions">`)
		for i, l := range []content.Link{primary, secondary} {
			if l.Text == "" || l.Link == "" {
				continue
			}
			class := "btn btn--primary"
			if i == 1 {
				class = "btn btn--secondary"
			}
			h.raw("<a")
			h.attr("class", class)
			h.url("href", l.Link)
			h.raw(">")
			h.text(l.Text)
			h.raw("</a>")
		}
		h.raw(`</div>`)
	})
}

// ErrorPage renders an error message with a way back home.
func ErrorPage(status int, message string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="error-page">`)
		h.element("h1", "error-page__status", strconv.Itoa(status))
		h.element("p", "error-page__message", message)
		h.raw(`<a class="btn btn--primary" href="/">Back to home</a></section>`)
	})
}
