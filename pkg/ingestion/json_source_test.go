package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `{
  "root": {"id": 1, "size": {"width": 100, "height": 40}},
  "boxes": [
    {"id": 2, "parent_id": 1, "size": {"width": 80, "height": 30}, "data_id": "emp-1", "attributes": {"dept": "eng"}},
    {"id": 3, "parent_id": 1, "size": {"width": 80, "height": 30}, "is_assistant": true}
  ]
}`

func TestLoadBoxContainerParsesRootAndBoxes(t *testing.T) {
	container, err := LoadBoxContainer([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if container.SystemRootID() != 1 {
		t.Fatalf("expected system root id 1, got %d", container.SystemRootID())
	}
	if container.Len() != 3 {
		t.Fatalf("expected 3 boxes, got %d", container.Len())
	}

	b, ok := container.Get(2)
	if !ok {
		t.Fatalf("expected box 2 to be present")
	}
	if b.DataID != "emp-1" || b.Attributes["dept"] != "eng" {
		t.Fatalf("unexpected box fields: %+v", b)
	}
	if b.AffectsLayout != true {
		t.Fatalf("expected default AffectsLayout=true")
	}

	assistant, ok := container.Get(3)
	if !ok || !assistant.IsAssistant {
		t.Fatalf("expected box 3 to be an assistant")
	}
}

func TestLoadBoxContainerRejectsInvalidJSON(t *testing.T) {
	if _, err := LoadBoxContainer([]byte("not json")); err == nil {
		t.Fatalf("expected an error for invalid JSON")
	}
}

func TestLoadBoxContainerRejectsMissingRoot(t *testing.T) {
	if _, err := LoadBoxContainer([]byte(`{"boxes": []}`)); err == nil {
		t.Fatalf("expected an error for a missing root")
	}
}

func TestLoadBoxContainerAssignsIDToBoxesMissingOne(t *testing.T) {
	doc := `{"root": {"id": 1}, "boxes": [{"parent_id": 1}]}`
	container, err := LoadBoxContainer([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if container.Len() != 2 {
		t.Fatalf("expected 2 boxes, got %d", container.Len())
	}
}

func TestLocalFileDataSourceFetchReadsAndHashes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "org.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	src := &LocalFileDataSource{Path: path}
	container, hash, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if container.SystemRootID() != 1 {
		t.Fatalf("expected system root id 1, got %d", container.SystemRootID())
	}
	if len(hash) != 64 {
		t.Fatalf("expected a 64-character hex sha256 digest, got %q", hash)
	}
}

func TestLocalFileDataSourceFetchRejectsPathEscapingBaseDir(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	path := filepath.Join(outside, "org.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	src := &LocalFileDataSource{Path: filepath.Join("..", filepath.Base(outside), "org.json"), BaseDir: dir}
	if _, _, err := src.Fetch(context.Background()); err == nil {
		t.Fatalf("expected an error for a path escaping BaseDir")
	}
}

func TestLocalFileDataSourceFetchValidatesWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"boxes": []}`), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	src := &LocalFileDataSource{Path: path, Validate: true}
	if _, _, err := src.Fetch(context.Background()); err == nil {
		t.Fatalf("expected schema validation to reject a document missing root")
	}
}
