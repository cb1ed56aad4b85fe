// Package ingestion turns external box data — JSON documents, remote
// HTTP sources, YAML settings files — into the pkg/layout types the
// layout kernel consumes.
package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/boxlayout/pkg/layout"
	"github.com/dshills/boxlayout/pkg/validation"
)

// LocalFileDataSource reads a box document from a path on disk. validate
// controls whether the raw JSON is run through ValidateBoxDocument first.
// When BaseDir is set, Path is resolved against it and rejected if it
// escapes that directory; leave BaseDir empty to accept any readable path
// (the CLI's default, since its file argument is user-trusted).
type LocalFileDataSource struct {
	Path     string
	BaseDir  string
	Validate bool
}

// Fetch implements DataSource.
func (s *LocalFileDataSource) Fetch(_ context.Context) (*layout.BoxContainer, string, error) {
	path := s.Path
	if s.BaseDir != "" {
		resolved, err := validation.ValidateSecurePath(s.BaseDir, s.Path)
		if err != nil {
			return nil, "", fmt.Errorf("ingestion: rejected path %q: %w", s.Path, err)
		}
		path = resolved
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("ingestion: failed to read %s: %w", path, err)
	}
	if s.Validate {
		if err := ValidateBoxDocument(data); err != nil {
			return nil, "", err
		}
	}
	container, err := LoadBoxContainer(data)
	if err != nil {
		return nil, "", err
	}
	sum := sha256.Sum256(data)
	return container, hex.EncodeToString(sum[:]), nil
}

// LoadBoxContainer parses a JSON box document into a layout.BoxContainer.
// The expected shape is:
//
//	{
//	  "root": {"id": 1, "size": {"width": 120, "height": 40}},
//	  "boxes": [
//	    {"id": 2, "parent_id": 1, "size": {"width": 100, "height": 30},
//	     "data_id": "emp-42", "is_assistant": false, "is_collapsed": false,
//	     "strategy_id": "", "attributes": {"dept": "eng"}}
//	  ]
//	}
//
// Boxes omitting "size" are left zero-sized for later resolution via a
// layout.SizeLookup keyed on data_id.
func LoadBoxContainer(data []byte) (*layout.BoxContainer, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("ingestion: invalid JSON")
	}
	doc := gjson.ParseBytes(data)

	root := doc.Get("root")
	if !root.Exists() {
		return nil, fmt.Errorf("ingestion: missing \"root\"")
	}

	container := layout.NewBoxContainer()
	rootBox := &layout.Box{ID: int(root.Get("id").Int()), ParentID: layout.NoParent, Size: parseSize(root.Get("size"))}
	applyBoxFields(rootBox, root)
	if err := container.AddSystemRoot(rootBox); err != nil {
		return nil, err
	}

	var parseErr error
	doc.Get("boxes").ForEach(func(_, entry gjson.Result) bool {
		b := &layout.Box{
			ID:       int(entry.Get("id").Int()),
			ParentID: int(entry.Get("parent_id").Int()),
			Size:     parseSize(entry.Get("size")),
		}
		if !entry.Get("id").Exists() {
			b.ID = container.NextID()
		}
		applyBoxFields(b, entry)
		if err := container.Add(b); err != nil {
			parseErr = err
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return container, nil
}

func parseSize(r gjson.Result) layout.Size {
	if !r.Exists() {
		return layout.Size{}
	}
	return layout.Size{Width: r.Get("width").Float(), Height: r.Get("height").Float()}
}

func applyBoxFields(b *layout.Box, r gjson.Result) {
	b.DataID = r.Get("data_id").String()
	b.IsSpecial = r.Get("is_special").Bool()
	b.IsCollapsed = r.Get("is_collapsed").Bool()
	b.IsAssistant = r.Get("is_assistant").Bool()
	b.AffectsLayout = true
	if af := r.Get("affects_layout"); af.Exists() {
		b.AffectsLayout = af.Bool()
	}
	b.StrategyID = r.Get("strategy_id").String()
	b.AssistantStrategyID = r.Get("assistant_strategy_id").String()

	if attrs := r.Get("attributes"); attrs.Exists() && attrs.IsObject() {
		b.Attributes = make(map[string]interface{})
		attrs.ForEach(func(key, value gjson.Result) bool {
			b.Attributes[key.String()] = value.Value()
			return true
		})
	}
}
