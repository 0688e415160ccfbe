package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrMalformed is returned when a document is not a JSON object.
var ErrMalformed = errors.New("malformed content document")

type homeDocument struct {
	Page      string          `json:"page"`
	VideoURLs ClipList        `json:"videoUrls"`
	Sections  json.RawMessage `json:"sections"`
}

// DecodeHome decodes a home document. Only a non-object body is an error;
// bad sections and entries are dropped.
func DecodeHome(data []byte, v *Validator, log *slog.Logger) (*HomeContent, error) {
	if !isObject(data) {
		return nil, fmt.Errorf("%w: home: expected object", ErrMalformed)
	}
	var doc homeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: home: %v", ErrMalformed, err)
	}

	home := &HomeContent{Page: doc.Page, VideoURLs: doc.VideoURLs}

	var raws []json.RawMessage
	if len(doc.Sections) > 0 {
		if err := json.Unmarshal(doc.Sections, &raws); err != nil {
			log.Warn("home sections is not a list", "error", err)
		}
	}

	for i, raw := range raws {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil || head.Type == "" {
			log.Warn("skipping untyped home section", "index", i)
			continue
		}
		home.Sections = append(home.Sections, Section{Type: head.Type, Raw: raw})

		switch head.Type {
		case SectionHero:
			if home.Hero != nil {
				continue
			}
			var hero HeroSection
			if err := json.Unmarshal(raw, &hero); err != nil {
				log.Warn("skipping bad hero section", "error", err)
				continue
			}
			hero.CTAPrimary = validCTA(v, log, hero.CTAPrimary)
			hero.CTASecondary = validCTA(v, log, hero.CTASecondary)
			home.Hero = &hero
		case SectionServices:
			if home.Services != nil {
				continue
			}
			var svc ServicesSection
			if err := json.Unmarshal(raw, &svc); err != nil {
				log.Warn("skipping bad services section", "error", err)
				continue
			}
			svc.Items = keepValid(v, log, "service card", svc.Items)
			home.Services = &svc
		case SectionFooter:
			if home.Footer != nil {
				continue
			}
			footer, err := decodeFooter(raw, v, log)
			if err != nil {
				log.Warn("skipping bad footer section", "error", err)
				continue
			}
			home.Footer = footer
		}
	}
	return home, nil
}

func decodeFooter(raw json.RawMessage, v *Validator, log *slog.Logger) (*FooterSection, error) {
	var f FooterSection
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	f.SocialMedia = keepValid(v, log, "social link", f.SocialMedia)
	f.Links.Services = keepValid(v, log, "footer link", f.Links.Services)
	f.Links.Industries = keepValid(v, log, "footer link", f.Links.Industries)
	f.Links.Resources = keepValid(v, log, "footer link", f.Links.Resources)
	f.Links.Company = keepValid(v, log, "footer link", f.Links.Company)
	f.Policies = keepValid(v, log, "policy link", f.Policies)
	return &f, nil
}

// DecodeNavbar decodes a navbar document, dropping invalid entries.
func DecodeNavbar(data []byte, v *Validator, log *slog.Logger) (*NavbarContent, error) {
	if !isObject(data) {
		return nil, fmt.Errorf("%w: navbar: expected object", ErrMalformed)
	}
	var nav NavbarContent
	if err := json.Unmarshal(data, &nav); err != nil {
		return nil, fmt.Errorf("%w: navbar: %v", ErrMalformed, err)
	}
	nav.MenuItems = keepValid(v, log, "menu item", nav.MenuItems)
	nav.Services = keepValid(v, log, "navbar service", nav.Services)
	return &nav, nil
}

// DecodeServices decodes the services document, whose entries live under a
// top-level "services" object keyed by slug. Entries missing a slug take
// their key; entries that still fail validation are dropped.
func DecodeServices(data []byte, v *Validator, log *slog.Logger) (*ServicesContent, error) {
	if !isObject(data) {
		return nil, fmt.Errorf("%w: services: expected object", ErrMalformed)
	}
	var doc struct {
		Services json.RawMessage `json:"services"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: services: %v", ErrMalformed, err)
	}
	if !isObject(doc.Services) {
		return &ServicesContent{Services: map[string]*ServiceContent{}}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(doc.Services, &raw); err != nil {
		return nil, fmt.Errorf("%w: services: %v", ErrMalformed, err)
	}
	keys, err := objectKeys(doc.Services)
	if err != nil {
		return nil, fmt.Errorf("%w: services: %v", ErrMalformed, err)
	}

	out := &ServicesContent{Services: make(map[string]*ServiceContent, len(raw))}
	for _, key := range keys {
		var svc ServiceContent
		if err := json.Unmarshal(raw[key], &svc); err != nil {
			log.Warn("skipping bad service entry", "slug", key, "error", err)
			continue
		}
		if svc.Slug == "" {
			svc.Slug = key
		}
		if err := v.Struct(&svc); err != nil {
			log.Warn("dropping invalid service entry", "slug", key, "error", err)
			continue
		}
		svc.CTA.Primary = validCTA(v, log, svc.CTA.Primary)
		svc.CTA.Secondary = validCTA(v, log, svc.CTA.Secondary)
		if _, dup := out.Services[key]; !dup {
			out.Order = append(out.Order, key)
		}
		out.Services[key] = &svc
	}
	return out, nil
}

// objectKeys returns the top-level keys of a JSON object in document order.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected object")
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func isObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
