// Package config provides the configuration file loader for forge.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader for YAML, JSON and HCL files.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: OSFS{}}
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load reads the configuration file at path, or discovers one in root when path is empty.
func (l *Loader) Load(root, path string) (*domain.ConfigFile, error) {
	if path == "" {
		found, ok := l.discover(root)
		if !ok {
			l.Logger.Debug("no config file found in " + root)
			return &domain.ConfigFile{}, nil
		}
		path = found
	}

	info, err := l.FS.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.Violation(domain.ErrConfigNotFound, path), "path", path)
		}
		return nil, zerr.With(domain.Cause(domain.ErrConfigReadFailed, err), "path", path)
	}
	if info.IsDir() {
		return nil, zerr.With(domain.Violation(domain.ErrConfigReadFailed, path+" is a directory"), "path", path)
	}

	data, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, zerr.With(domain.Cause(domain.ErrConfigReadFailed, err), "path", path)
	}

	var (
		dto   *fileDTO
		extra map[string]any
	)
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		dto, extra, err = decodeHCL(path, data)
	} else {
		dto, extra, err = decodeYAML(path, data)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, path), "path", path)
	}

	for _, key := range slices.Sorted(maps.Keys(extra)) {
		l.Logger.Debug(fmt.Sprintf("ignoring unknown config key %q in %s", key, path))
	}

	return &domain.ConfigFile{
		Path:  path,
		Layer: dto.toLayer(),
		Extra: extra,
	}, nil
}

func (l *Loader) discover(root string) (string, bool) {
	for _, name := range domain.ConfigFileNames {
		candidate := filepath.Join(root, name)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// decodeYAML decodes YAML and JSON documents; JSON is a subset of YAML.
func decodeYAML(path string, data []byte) (*fileDTO, map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, domain.Cause(domain.ErrConfigParseFailed, err)
	}

	// An empty file decodes to a zero node.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &fileDTO{}, nil, nil
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, nil, domain.Violation(domain.ErrConfigNotObject, path)
	}

	var dto fileDTO
	if err := top.Decode(&dto); err != nil {
		return nil, nil, domain.Cause(domain.ErrConfigParseFailed, err)
	}

	var raw map[string]any
	if err := top.Decode(&raw); err != nil {
		return nil, nil, domain.Cause(domain.ErrConfigParseFailed, err)
	}

	return &dto, unknownKeys(raw), nil
}

func unknownKeys(raw map[string]any) map[string]any {
	var extra map[string]any
	for k, v := range raw {
		if _, ok := knownKeys[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra
}

func decodeHCL(path string, data []byte) (*fileDTO, map[string]any, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, nil, domain.Cause(domain.ErrConfigParseFailed, diags)
	}

	var dto hclDTO
	if diags := gohcl.DecodeBody(file.Body, nil, &dto); diags.HasErrors() {
		return nil, nil, domain.Cause(domain.ErrConfigParseFailed, diags)
	}

	var extra map[string]any
	if dto.Remain != nil {
		attrs, diags := dto.Remain.JustAttributes()
		if diags.HasErrors() {
			return nil, nil, domain.Cause(domain.ErrConfigParseFailed, diags)
		}
		for name, attr := range attrs {
			if extra == nil {
				extra = make(map[string]any, len(attrs))
			}
			extra[name] = exprValue(attr)
		}
	}

	return dto.toFileDTO(), extra, nil
}

// exprValue evaluates a constant HCL attribute into a plain Go value.
// Expressions that need variables are kept as their source range.
func exprValue(attr *hcl.Attribute) any {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || !val.IsWhollyKnown() || val.IsNull() {
		return attr.Expr.Range().String()
	}

	switch val.Type() {
	case cty.String:
		return val.AsString()
	case cty.Bool:
		return val.True()
	case cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f
	default:
		return val.GoString()
	}
}
