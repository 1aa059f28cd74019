package handlers

import (
	"testing"

	"bitzone/internal/models"
)

func parentOf(id int64) *int64 { return &id }

func TestBuildCategoryTreeNestsChildren(t *testing.T) {
	tree := buildCategoryTree([]models.Category{
		{RoappID: 1, Name: "Consoles"},
		{RoappID: 2, Name: "PlayStation", ParentID: parentOf(1)},
		{RoappID: 3, Name: "Xbox", ParentID: parentOf(1)},
		{RoappID: 4, Name: "Games"},
	})

	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}

	var consoles *models.Category
	for _, root := range tree {
		if root.RoappID == 1 {
			consoles = root
		}
	}
	if consoles == nil || len(consoles.Children) != 2 {
		t.Fatalf("expected Consoles with 2 children, got %+v", consoles)
	}
	if consoles.Children[0].Name > consoles.Children[1].Name {
		t.Fatalf("children not sorted by name: %v", consoles.Children)
	}
}

func TestBuildCategoryTreeOrphanBecomesRoot(t *testing.T) {
	tree := buildCategoryTree([]models.Category{
		{RoappID: 2, Name: "PlayStation", ParentID: parentOf(99)},
	})

	if len(tree) != 1 || tree[0].RoappID != 2 {
		t.Fatalf("orphan should be promoted to root, got %+v", tree)
	}
}

func TestBuildCategoryTreeSurvivesCycles(t *testing.T) {
	tree := buildCategoryTree([]models.Category{
		{RoappID: 1, Name: "A", ParentID: parentOf(2)},
		{RoappID: 2, Name: "B", ParentID: parentOf(1)},
		{RoappID: 3, Name: "C", ParentID: parentOf(3)},
	})

	// All cycle members surface as roots; nothing loops forever.
	if len(tree) != 3 {
		t.Fatalf("expected all cycle members as roots, got %d", len(tree))
	}
}

func TestBuildCategoryTreeEmptyInput(t *testing.T) {
	tree := buildCategoryTree(nil)
	if tree == nil || len(tree) != 0 {
		t.Fatalf("expected empty slice, got %v", tree)
	}
}
