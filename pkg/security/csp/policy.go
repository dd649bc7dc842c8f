// Package csp builds Content-Security-Policy header values.
package csp

import (
	"fmt"
	"strings"
)

// Builder assembles a CSP policy directive by directive.
// The zero value is not usable; call NewBuilder.
type Builder struct {
	directives map[string][]string
	reportOnly bool
}

// NewBuilder returns an empty policy builder.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

// DefaultSrc sets the default-src directive.
func (b *Builder) DefaultSrc(sources ...string) *Builder {
	b.directives["default-src"] = sources
	return b
}

// ScriptSrc sets the script-src directive.
func (b *Builder) ScriptSrc(sources ...string) *Builder {
	b.directives["script-src"] = sources
	return b
}

// StyleSrc sets the style-src directive.
func (b *Builder) StyleSrc(sources ...string) *Builder {
	b.directives["style-src"] = sources
	return b
}

// ImgSrc sets the img-src directive.
func (b *Builder) ImgSrc(sources ...string) *Builder {
	b.directives["img-src"] = sources
	return b
}

// FontSrc sets the font-src directive.
func (b *Builder) FontSrc(sources ...string) *Builder {
	b.directives["font-src"] = sources
	return b
}

// ConnectSrc sets the connect-src directive.
func (b *Builder) ConnectSrc(sources ...string) *Builder {
	b.directives["connect-src"] = sources
	return b
}

// FrameAncestors sets the frame-ancestors directive.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	b.directives["frame-ancestors"] = sources
	return b
}

// FormAction sets the form-action directive.
func (b *Builder) FormAction(sources ...string) *Builder {
	b.directives["form-action"] = sources
	return b
}

// BaseURI sets the base-uri directive.
func (b *Builder) BaseURI(sources ...string) *Builder {
	b.directives["base-uri"] = sources
	return b
}

// ObjectSrc sets the object-src directive.
func (b *Builder) ObjectSrc(sources ...string) *Builder {
	b.directives["object-src"] = sources
	return b
}

// ReportURI sets the report-uri directive.
func (b *Builder) ReportURI(uri string) *Builder {
	b.directives["report-uri"] = []string{uri}
	return b
}

// ReportOnly switches the policy between report-only and enforcement mode.
func (b *Builder) ReportOnly(enabled bool) *Builder {
	b.reportOnly = enabled
	return b
}

// Directives are emitted in a fixed order so the header value is stable.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// Build renders the policy as a header value.
func (b *Builder) Build() string {
	if len(b.directives) == 0 {
		return ""
	}
	var parts []string
	for _, d := range directiveOrder {
		if sources, ok := b.directives[d]; ok && len(sources) > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", d, strings.Join(sources, " ")))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header to set the policy under,
// depending on report-only mode.
func (b *Builder) HeaderName() string {
	if b.reportOnly {
		return "Content-Security-Policy-Report-Only"
	}
	return "Content-Security-Policy"
}

// SwaggerUIPolicy returns a policy that lets Swagger UI run:
// it needs inline scripts/styles, data: images and blob: fetches.
func SwaggerUIPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'", "https://cdn.jsdelivr.net").
		StyleSrc("'self'", "'unsafe-inline'", "https://cdn.jsdelivr.net").
		ImgSrc("'self'", "data:", "https:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'", "blob:").
		FrameAncestors("'none'").
		BaseURI("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}

// StrictPolicy returns a restrictive policy for JSON-only endpoints.
func StrictPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}
