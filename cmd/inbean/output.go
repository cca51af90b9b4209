package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sghaida/inbean/inbean"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatDump = "dump"
)

type definitionView struct {
	Kind             string       `json:"kind" yaml:"kind"`
	Name             string       `json:"name" yaml:"name"`
	Type             string       `json:"type" yaml:"type"`
	Qualifier        string       `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
	Reset            string       `json:"reset" yaml:"reset"`
	ExtraInterfaces  []string     `json:"extraInterfaces,omitempty" yaml:"extraInterfaces,omitempty"`
	Serializable     bool         `json:"serializable,omitempty" yaml:"serializable,omitempty"`
	ProxyTargetAware bool         `json:"proxyTargetAware,omitempty" yaml:"proxyTargetAware,omitempty"`
	Targets          []targetView `json:"targets" yaml:"targets"`
}

type targetView struct {
	Bean string `json:"bean" yaml:"bean"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

func views(defs *inbean.Definitions) []definitionView {
	out := make([]definitionView, 0, defs.Len())
	for def, targets := range defs.All() {
		v := definitionView{
			Kind:             strings.ToLower(def.Kind.String()),
			Name:             def.Name,
			Type:             def.Type.String(),
			Qualifier:        string(def.Qualifier),
			Reset:            strings.ToLower(def.Reset.String()),
			ExtraInterfaces:  def.ExtraInterfaces.Names(),
			Serializable:     def.Serializable,
			ProxyTargetAware: def.ProxyTargetAware,
		}
		for _, t := range targets {
			v.Targets = append(v.Targets, targetView{Bean: t.Bean, Name: t.Name})
		}
		out = append(out, v)
	}
	return out
}

func render(w io.Writer, format string, defs *inbean.Definitions) error {
	v := views(defs)
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatDump:
		spew.Fdump(w, v)
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
