// Package content loads onboarding copy (pages and feature rows) from YAML or
// JSON documents so that tours can change without recompiling the host.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ActionRef names a registered action and the arguments it is bound with.
// In documents it is either a bare name or {name, args}.
type ActionRef struct {
	Name string         `mapstructure:"name" json:"name"`
	Args map[string]any `mapstructure:"args" json:"args,omitempty"`
}

// PageSpec is the document form of a domain.Page.
type PageSpec struct {
	Title       string       `mapstructure:"title" json:"title"`
	Description string       `mapstructure:"description" json:"description"`
	Icon        domain.Icon  `mapstructure:"icon" json:"icon"`
	Background  domain.Color `mapstructure:"background" json:"background,omitempty"`
	IconColor   domain.Color `mapstructure:"icon_color" json:"icon_color,omitempty"`
	ActionTitle string       `mapstructure:"action_title" json:"action_title,omitempty"`
	Action      ActionRef    `mapstructure:"action" json:"action,omitempty"`
}

// FeatureSpec is the document form of a domain.FeatureRow.
type FeatureSpec struct {
	Title       string       `mapstructure:"title" json:"title"`
	Description string       `mapstructure:"description" json:"description"`
	Icon        domain.Icon  `mapstructure:"icon" json:"icon"`
	Background  domain.Color `mapstructure:"background" json:"background,omitempty"`
	IconColor   domain.Color `mapstructure:"icon_color" json:"icon_color,omitempty"`
}

// Content is a complete onboarding document.
type Content struct {
	AppName  string        `mapstructure:"app_name" json:"app_name,omitempty"`
	Accent   domain.Color  `mapstructure:"accent" json:"accent,omitempty"`
	Pages    []PageSpec    `mapstructure:"pages" json:"pages"`
	Features []FeatureSpec `mapstructure:"features" json:"features"`
}

// LoadFile reads a .yaml/.yml or .json document.
func LoadFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a document in the given format ("yaml" or "json").
func Parse(data []byte, format string) (*Content, error) {
	var raw map[string]any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json content: %w", err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml content: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported content format %q", format)
	}

	var c Content
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(iconHook, actionHook),
		ErrorUnused: true,
		Result:      &c,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var (
	iconType   = reflect.TypeOf(domain.Icon{})
	actionType = reflect.TypeOf(ActionRef{})
)

func iconHook(from, to reflect.Type, data any) (any, error) {
	if to != iconType || from.Kind() != reflect.String {
		return data, nil
	}
	return domain.ParseIcon(data.(string))
}

func actionHook(from, to reflect.Type, data any) (any, error) {
	if to != actionType || from.Kind() != reflect.String {
		return data, nil
	}
	return ActionRef{Name: data.(string)}, nil
}

// Validate checks that every page and feature has a title.
func (c *Content) Validate() error {
	var errs []error
	for i, p := range c.Pages {
		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("pages[%d]: title is required", i))
		}
		if p.Action.Name == "" && len(p.Action.Args) > 0 {
			errs = append(errs, fmt.Errorf("pages[%d]: action args without action name", i))
		}
	}
	for i, f := range c.Features {
		if strings.TrimSpace(f.Title) == "" {
			errs = append(errs, fmt.Errorf("features[%d]: title is required", i))
		}
	}
	return errors.Join(errs...)
}

// BuildPages converts the page specs, binding named actions through reg.
// reg may be nil when no page declares an action.
func (c *Content) BuildPages(ctx context.Context, reg *registry.Registry) ([]domain.Page, error) {
	pages := make([]domain.Page, 0, len(c.Pages))
	for i, p := range c.Pages {
		page := domain.Page{
			Title:       p.Title,
			Description: p.Description,
			Icon:        p.Icon,
			Background:  p.Background,
			IconColor:   p.IconColor,
			ActionTitle: p.ActionTitle,
		}
		if p.Action.Name != "" {
			if reg == nil {
				return nil, fmt.Errorf("pages[%d]: action %q declared but no registry given", i, p.Action.Name)
			}
			action, err := reg.Bind(ctx, p.Action.Name, p.Action.Args)
			if err != nil {
				return nil, fmt.Errorf("pages[%d]: %w", i, err)
			}
			page.Action = action
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// BuildFeatures converts the feature specs.
func (c *Content) BuildFeatures() []domain.FeatureRow {
	rows := make([]domain.FeatureRow, 0, len(c.Features))
	for _, f := range c.Features {
		rows = append(rows, domain.FeatureRow{
			Title:       f.Title,
			Description: f.Description,
			Icon:        f.Icon,
			Background:  f.Background,
			IconColor:   f.IconColor,
		})
	}
	return rows
}
