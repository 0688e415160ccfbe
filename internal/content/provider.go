package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a requested service or page does not exist.
var ErrNotFound = errors.New("content not found")

// Page kinds that carry a video hero.
const (
	PageHome    = "home"
	PageService = "service"
)

// RemoteSource supplies the home document from outside the content directory.
type RemoteSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Provider loads and decodes the site's content documents.
type Provider struct {
	dir       string
	remote    RemoteSource
	repo      Repository
	validator *Validator
	log       *slog.Logger
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithRemote makes Home prefer documents from r.
func WithRemote(r RemoteSource) ProviderOption {
	return func(p *Provider) { p.remote = r }
}

// WithRepository replaces the default in-memory document cache.
func WithRepository(r Repository) ProviderOption {
	return func(p *Provider) { p.repo = r }
}

// NewProvider returns a Provider reading documents from dir.
func NewProvider(dir string, log *slog.Logger, opts ...ProviderOption) *Provider {
	p := &Provider{
		dir:       dir,
		repo:      NewInMemoryRepository(),
		validator: NewValidator(),
		log:       log.With("component", "content"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dir returns the content directory.
func (p *Provider) Dir() string {
	return p.dir
}

// Invalidate drops the cached copy of a document so the next read hits disk.
func (p *Provider) Invalidate(name string) {
	p.repo.Invalidate(name)
}

func (p *Provider) readLocal(name string) ([]byte, error) {
	return p.repo.Load(name, func() ([]byte, error) {
		body, err := os.ReadFile(filepath.Join(p.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return body, nil
	})
}

// Home returns the home document, preferring the remote source and falling
// back to the local file on any remote failure.
func (p *Provider) Home(ctx context.Context) (*HomeContent, error) {
	if p.remote != nil {
		body, err := p.remote.Fetch(ctx)
		if err == nil {
			home, derr := DecodeHome(body, p.validator, p.log)
			if derr == nil {
				return home, nil
			}
			err = derr
		}
		p.log.Warn("remote home content unavailable, using local file", "error", err)
	}
	return p.LocalHome(ctx)
}

// LocalHome returns the home document from the content directory.
func (p *Provider) LocalHome(_ context.Context) (*HomeContent, error) {
	body, err := p.readLocal(HomeDocument)
	if err != nil {
		return nil, err
	}
	return DecodeHome(body, p.validator, p.log)
}

// Navbar returns the navbar document. Failures yield empty menus.
func (p *Provider) Navbar(_ context.Context) *NavbarContent {
	body, err := p.readLocal(NavbarDocument)
	if err == nil {
		var nav *NavbarContent
		if nav, err = DecodeNavbar(body, p.validator, p.log); err == nil {
			return nav
		}
	}
	p.log.Error("error loading navbar content", "error", err)
	return &NavbarContent{}
}

// Footer returns the footer section of the local home document, or nil.
func (p *Provider) Footer(ctx context.Context) *FooterSection {
	home, err := p.LocalHome(ctx)
	if err != nil {
		p.log.Error("error loading footer content", "error", err)
		return nil
	}
	return home.Footer
}

// Services returns the whole services document.
func (p *Provider) Services(_ context.Context) (*ServicesContent, error) {
	body, err := p.readLocal(ServicesDocument)
	if err != nil {
		return nil, err
	}
	return DecodeServices(body, p.validator, p.log)
}

// Service returns one service by slug, or ErrNotFound.
func (p *Provider) Service(ctx context.Context, slug string) (*ServiceContent, error) {
	all, err := p.Services(ctx)
	if err != nil {
		return nil, err
	}
	svc, ok := all.Services[slug]
	if !ok {
		return nil, fmt.Errorf("service %q: %w", slug, ErrNotFound)
	}
	return svc, nil
}

// Clips returns the hero clip list for a page kind. slug is only used for
// service pages.
func (p *Provider) Clips(ctx context.Context, page, slug string) (ClipList, error) {
	switch page {
	case PageHome:
		home, err := p.Home(ctx)
		if err != nil {
			return nil, err
		}
		return home.VideoURLs, nil
	case PageService:
		svc, err := p.Service(ctx, slug)
		if err != nil {
			return nil, err
		}
		return svc.VideoURLs, nil
	default:
		return nil, fmt.Errorf("page %q: %w", page, ErrNotFound)
	}
}
