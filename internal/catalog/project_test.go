package catalog

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bitzone/internal/models"
)

func TestProjectExposesCarrierIDOnly(t *testing.T) {
	stored := models.Product{
		ID:        primitive.NewObjectID(),
		RoappID:   4217,
		Name:      "PlayStation 5 Console",
		Price:     2199,
		Category:  "Consoles",
		Stock:     3,
		Images:    models.StringList{"https://cdn.example/ps5.jpg"},
		CreatedAt: time.Now(),
	}

	view := Project(stored)

	if view.ID != stored.RoappID {
		t.Fatalf("external id = %d, want carrier id %d", view.ID, stored.RoappID)
	}

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(body), stored.ID.Hex()) {
		t.Fatalf("storage-internal id leaked into external view: %s", body)
	}
	if !strings.Contains(string(body), "\"id\":4217") {
		t.Fatalf("expected carrier id in view json, got %s", body)
	}
}

func TestProjectDefaultsOptionalLists(t *testing.T) {
	view := Project(models.Product{RoappID: 1, Name: "Bare"})

	if view.Images == nil || view.Specs == nil {
		t.Fatal("optional lists must project as empty, not null")
	}
	if len(view.Images) != 0 || len(view.Specs) != 0 {
		t.Fatalf("expected empty lists, got %v / %v", view.Images, view.Specs)
	}
}

func TestProjectAllKeepsOrderAndLength(t *testing.T) {
	page := []models.Product{
		{RoappID: 3, Name: "C"},
		{RoappID: 1, Name: "A"},
		{RoappID: 2, Name: "B"},
	}

	views := ProjectAll(page)

	if len(views) != len(page) {
		t.Fatalf("projected %d of %d documents", len(views), len(page))
	}
	for i := range page {
		if views[i].ID != page[i].RoappID {
			t.Fatalf("projection reordered results: %v", views)
		}
	}

	empty := ProjectAll(nil)
	if empty == nil || len(empty) != 0 {
		t.Fatal("empty page must project as an empty slice")
	}
}
