package content

import (
	"encoding/json"
	"strings"
)

// Document file names inside the content directory.
const (
	HomeDocument     = "home-content.json"
	NavbarDocument   = "navbar-content.json"
	ServicesDocument = "services-content.json"
)

// Section type discriminants used in the home document.
const (
	SectionHero     = "hero"
	SectionServices = "services"
	SectionFooter   = "footer"
)

// ClipList is a list of video sources. It decodes leniently: null, a
// non-array value, or non-string and blank elements never fail decoding,
// they just yield fewer (or no) clips.
type ClipList []string

func (c *ClipList) UnmarshalJSON(b []byte) error {
	*c = nil
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil
	}
	for _, raw := range items {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			*c = append(*c, s)
		}
	}
	return nil
}

// Link is a labelled anchor.
type Link struct {
	Text string `json:"text"`
	Link string `json:"link" validate:"omitempty,sitelink"`
}

// RouterLink is a labelled in-site route.
type RouterLink struct {
	Text       string `json:"text" validate:"required"`
	RouterLink string `json:"routerLink" validate:"required,sitelink"`
}

// CTA is a call-to-action button. Only one of the colour fields is used,
// depending on whether it is the primary or secondary button.
type CTA struct {
	Text            string `json:"text" validate:"required"`
	Link            string `json:"link" validate:"required,sitelink"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
}

// Section is one entry of the home document's sections list, kept raw so
// unknown types survive decoding.
type Section struct {
	Type string
	Raw  json.RawMessage
}

// HeroSection is the "hero" section of the home page.
type HeroSection struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	CTAPrimary   *CTA   `json:"ctaPrimary,omitempty"`
	CTASecondary *CTA   `json:"ctaSecondary,omitempty"`
}

// ServiceCard is one tile of the home page services grid.
type ServiceCard struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Link        string `json:"link" validate:"omitempty,sitelink"`
}

// ServicesSection is the "services" section of the home page.
type ServicesSection struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Items       []ServiceCard `json:"items"`
}

// FooterSection is the "footer" section shared by every page.
type FooterSection struct {
	Logo struct {
		Text string `json:"text"`
		Icon string `json:"icon"`
	} `json:"logo"`
	Contact struct {
		Heading string `json:"heading"`
		Phone   Link   `json:"phone"`
		Email   Link   `json:"email"`
	} `json:"contact"`
	SocialMedia []SocialLink `json:"socialMedia"`
	Links       FooterLinks  `json:"links"`
	Copyright   string       `json:"copyright"`
	Policies    []Link       `json:"policies"`
}

// SocialLink is a footer social media icon.
type SocialLink struct {
	Name string `json:"name" validate:"required"`
	Link string `json:"link" validate:"required,sitelink"`
	Icon string `json:"icon"`
}

// FooterLinks groups the footer's link columns.
type FooterLinks struct {
	Services   []RouterLink `json:"services"`
	Industries []RouterLink `json:"industries"`
	Resources  []RouterLink `json:"resources"`
	Company    []RouterLink `json:"company"`
}

// HomeContent is the decoded home document.
type HomeContent struct {
	Page      string
	VideoURLs ClipList
	Sections  []Section

	Hero     *HeroSection
	Services *ServicesSection
	Footer   *FooterSection
}

// Section returns the first section with the given type.
func (h *HomeContent) Section(sectionType string) (Section, bool) {
	if h == nil {
		return Section{}, false
	}
	for _, s := range h.Sections {
		if s.Type == sectionType {
			return s, true
		}
	}
	return Section{}, false
}

// MenuItem is a top-level navbar entry.
type MenuItem struct {
	Label       string `json:"label" validate:"required"`
	RouterLink  string `json:"routerLink" validate:"required,sitelink"`
	Index       *int   `json:"index"`
	HasDropdown bool   `json:"hasDropdown"`
}

// NavService is a service entry in the navbar document.
type NavService struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Route       string `json:"route" validate:"required,sitelink"`
	Icon        string `json:"icon"`
}

// NavbarContent is the decoded navbar document.
type NavbarContent struct {
	MenuItems []MenuItem   `json:"menuItems"`
	Services  []NavService `json:"services"`
}

// ServiceArea is one card of a service page's service areas grid.
type ServiceArea struct {
	Icon     string   `json:"icon"`
	Badges   []string `json:"badges"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Features []string `json:"features"`
}

// ServiceAreasSection lists the areas a service covers.
type ServiceAreasSection struct {
	Tagline         string        `json:"tagline"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	BackgroundImage string        `json:"backgroundImage"`
	ServiceAreas    []ServiceArea `json:"serviceAreas"`
}

// AcceleratorCard is one solution accelerator tile.
type AcceleratorCard struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SolutionAcceleratorsSection may carry its own looping background clips.
type SolutionAcceleratorsSection struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	BackgroundImage string            `json:"backgroundImage,omitempty"`
	VideoURLs       ClipList          `json:"videoUrls,omitempty"`
	Cards           []AcceleratorCard `json:"cards"`
}

// FeaturedCaseStudy highlights one customer story.
type FeaturedCaseStudy struct {
	FeaturedLabel string `json:"featuredLabel"`
	CategoryTag   string `json:"categoryTag"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ImageSrc      string `json:"imageSrc"`
	PrimaryCta    Link   `json:"primaryCta"`
	SecondaryCta  Link   `json:"secondaryCta"`
}

// TrustedPartner is a logo in the partner carousel.
type TrustedPartner struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
	Alt  string `json:"alt"`
}

// TrustedPartnersSection is the partner logo strip.
type TrustedPartnersSection struct {
	Title    string           `json:"title"`
	Partners []TrustedPartner `json:"partners"`
}

// WhyOakwoodFeature is one selling point.
type WhyOakwoodFeature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WhyOakwoodSection explains the company's differentiators.
type WhyOakwoodSection struct {
	Tagline     string              `json:"tagline"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ImageSrc    string              `json:"imageSrc"`
	Features    []WhyOakwoodFeature `json:"features"`
}

// CTASection closes a service page.
type CTASection struct {
	Headline     string `json:"headline"`
	Subheadline  string `json:"subheadline"`
	PrimaryCta   Link   `json:"primaryCta"`
	SecondaryCta Link   `json:"secondaryCta"`
}

// ServiceContent is one entry of the services document.
type ServiceContent struct {
	Slug            string   `json:"slug" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description"`
	BackgroundImage string   `json:"backgroundImage,omitempty"`
	VideoURLs       ClipList `json:"videoUrls,omitempty"`
	MainDescription *struct {
		Text string `json:"text"`
	} `json:"mainDescription,omitempty"`
	ServiceAreas         *ServiceAreasSection         `json:"serviceAreas,omitempty"`
	SolutionAccelerators *SolutionAcceleratorsSection `json:"solutionAccelerators,omitempty"`
	FeaturedCaseStudy    *FeaturedCaseStudy           `json:"featuredCaseStudy,omitempty"`
	TrustedPartners      *TrustedPartnersSection      `json:"trustedPartners,omitempty"`
	WhyOakwood           *WhyOakwoodSection           `json:"whyOakwood,omitempty"`
	CTASection           *CTASection                  `json:"ctaSection,omitempty"`
	CTA                  struct {
		Primary   *CTA `json:"primary,omitempty"`
		Secondary *CTA `json:"secondary,omitempty"`
	} `json:"cta" validate:"-"`
}

// Summary is the page description: the main description text when present,
// the short description otherwise.
func (s *ServiceContent) Summary() string {
	if s.MainDescription != nil && s.MainDescription.Text != "" {
		return s.MainDescription.Text
	}
	return s.Description
}

// ServicesContent is the decoded services document, keyed by slug.
type ServicesContent struct {
	Services map[string]*ServiceContent
	// Order keeps the document order of slugs for menus and redirects.
	Order []string
}

// CatalogService is an entry of the navbar's Microsoft services dropdown.
type CatalogService struct {
	ID      string
	Name    string
	Link    string
	Desc    string
	Details string
	Icon    string
}

// MicrosoftServices is the fixed dropdown catalog shown in the navbar.
var MicrosoftServices = []CatalogService{
	{
		ID:      "01",
		Name:    "Data & AI Solutions",
		Link:    "/services/data-and-ai",
		Desc:    "Unify, govern, and activate your data estate",
		Details: "Deliver real AI outcomes by unifying, governing, and activating your data estate to power intelligent innovation.",
		Icon:    "/assets/graph.png",
	},
	{
		ID:      "02",
		Name:    "Cloud & Infrastructure",
		Link:    "/services/cloud-and-infrastructure",
		Desc:    "Modernize, secure, and optimize your cloud",
		Details: "Modernize, secure, and optimize your cloud estate with Oakwood and Microsoft Azure for scalable, reliable infrastructure.",
		Icon:    "/assets/cloud.png",
	},
	{
		ID:      "03",
		Name:    "Application Innovation",
		Link:    "/services/application-innovation",
		Desc:    "Ship faster, run safer, and scale efficiently",
		Details: "Ship faster, run safer, and scale efficiently with modern applications on Azure built for performance and reliability.",
		Icon:    "/assets/app-innovation.png",
	},
	{
		ID:      "04",
		Name:    "High-Performance Computing (HPC)",
		Link:    "/services/high-performance-computing",
		Desc:    "Scale simulations, AI training, and PLM workloads",
		Details: "Scale simulations, AI training, and PLM workloads with the power of Azure HPC for maximum computational performance.",
		Icon:    "/assets/hpc.png",
	},
	{
		ID:      "05",
		Name:    "Modern Work",
		Link:    "/services/modern-work",
		Desc:    "Boost productivity with Microsoft 365 and Copilot",
		Details: "Boost productivity, protect data, and improve employee experience with Microsoft 365 and Copilot for modern collaboration.",
		Icon:    "/assets/modern-work.png",
	},
	{
		ID:      "06",
		Name:    "Managed Services",
		Link:    "/services/managed-services",
		Desc:    "Keep your Microsoft cloud running fast and secure",
		Details: "Keep your Microsoft cloud running fast, secure, and cost effective with Oakwood managed services and expert support.",
		Icon:    "/assets/managed-services.png",
	},
}
