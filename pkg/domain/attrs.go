package domain

import (
	"github.com/mitchellh/mapstructure"
)

// HeadingAttrs is the typed view of a heading node's attrs.
type HeadingAttrs struct {
	Level int `mapstructure:"level"`
}

// LinkAttrs is the typed view of a link mark's attrs.
type LinkAttrs struct {
	Href   string `mapstructure:"href"`
	Title  string `mapstructure:"title"`
	Target string `mapstructure:"target"`
}

// HeadingAttrs decodes the node attrs as heading attributes.
// Level is zero when absent.
func (n Node) HeadingAttrs() (HeadingAttrs, error) {
	var attrs HeadingAttrs
	if len(n.Attrs) == 0 {
		return attrs, nil
	}
	err := mapstructure.Decode(n.Attrs, &attrs)
	return attrs, err
}

// LinkAttrs decodes the mark attrs as link attributes.
// A non-string href is a decode error.
func (m Mark) LinkAttrs() (LinkAttrs, error) {
	var attrs LinkAttrs
	if len(m.Attrs) == 0 {
		return attrs, nil
	}
	err := mapstructure.Decode(m.Attrs, &attrs)
	return attrs, err
}
