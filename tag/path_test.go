package tag

import (
	"errors"
	"testing"
)

func pathFixture(t *testing.T) *Compound {
	t.Helper()
	mesh0 := NewCompound()
	mesh0.Set("Name", FromString("cube"))
	mesh1 := NewCompound()
	mesh1.Set("Name", FromString("sphere"))
	meshes, err := FromSlice([]Tag{mesh0, mesh1})
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	scene := NewCompound()
	scene.Set("Meshes", meshes)
	root := NewCompound()
	root.Set("Scene", scene)
	return root
}

func TestGetPath(t *testing.T) {
	root := pathFixture(t)

	got, err := GetPath(root, "Scene.Meshes[1].Name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := got.(*String)
	if !ok || s.Value != "sphere" {
		t.Errorf("got %v, want String \"sphere\"", got)
	}

	if got, err := GetPath(root, ""); err != nil || got != root {
		t.Errorf("empty path: got %v, %v", got, err)
	}
}

func TestGetPath_Errors(t *testing.T) {
	root := pathFixture(t)
	for _, path := range []string{
		"Nope",
		"Scene.Meshes[5]",
		"Scene.Meshes.Name", // key lookup into a list
		"Scene[0]",          // index into a compound
		"Scene.Meshes[x]",   // malformed index
	} {
		t.Run(path, func(t *testing.T) {
			if _, err := GetPath(root, path); !errors.Is(err, ErrPath) {
				t.Errorf("expected ErrPath, got %v", err)
			}
		})
	}
}
