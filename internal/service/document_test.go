package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

func newDocumentService() (*DocumentService, *fakeDocRepo) {
	docRepo := newFakeDocRepo()
	svc := NewDocumentService(docRepo, &fakeFolderRepo{}, fakeTxManager{}, testLogger())
	return svc, docRepo
}

func TestCreateDocumentDefaults(t *testing.T) {
	svc, _ := newDocumentService()

	doc, err := svc.Create(context.Background(), &CreateDocumentRequest{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.Title != "Untitled" {
		t.Errorf("title = %q, want Untitled", doc.Title)
	}
	if !doc.IsDraft {
		t.Error("expected new documents to start as drafts")
	}
	if doc.ID == "" {
		t.Error("expected an assigned ID")
	}
}

func TestUpdateDocumentVersionsOnContentChange(t *testing.T) {
	svc, docRepo := newDocumentService()
	doc := docRepo.add(&models.Document{Title: "Essay", Content: "v1 content"})

	// Content change snapshots the previous content.
	updated, err := svc.Update(context.Background(), doc.ID, &UpdateDocumentRequest{
		Title:   "Essay",
		Content: "v2 content",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Content != "v2 content" {
		t.Errorf("content = %q", updated.Content)
	}

	versions, _ := docRepo.ListVersions(context.Background(), doc.ID, 5)
	if len(versions) != 1 {
		t.Fatalf("expected 1 version snapshot, got %d", len(versions))
	}
	if versions[0].Content != "v1 content" {
		t.Errorf("snapshot holds %q, want the previous content", versions[0].Content)
	}

	// Saving identical content adds no snapshot.
	if _, err := svc.Update(context.Background(), doc.ID, &UpdateDocumentRequest{
		Title:   "Essay renamed",
		Content: "v2 content",
	}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	versions, _ = docRepo.ListVersions(context.Background(), doc.ID, 5)
	if len(versions) != 1 {
		t.Errorf("expected no new snapshot for unchanged content, got %d", len(versions))
	}
}

func TestUpdateDocumentKeepsFieldsWhenOmitted(t *testing.T) {
	svc, docRepo := newDocumentService()
	doc := docRepo.add(&models.Document{Title: "Essay", Content: "body", IsDraft: true})

	updated, err := svc.Update(context.Background(), doc.ID, &UpdateDocumentRequest{Content: "body"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Essay" {
		t.Errorf("expected title kept, got %q", updated.Title)
	}
	if !updated.IsDraft {
		t.Error("expected draft flag kept")
	}

	published, err := svc.Update(context.Background(), doc.ID, &UpdateDocumentRequest{Content: "body", IsDraft: boolPtr(false)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if published.IsDraft {
		t.Error("expected draft flag cleared")
	}
}

func TestGetDocumentIncludesVersions(t *testing.T) {
	svc, docRepo := newDocumentService()
	doc := docRepo.add(&models.Document{Title: "Essay", Content: "v1"})

	for _, content := range []string{"v2", "v3"} {
		if _, err := svc.Update(context.Background(), doc.ID, &UpdateDocumentRequest{Content: content}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Versions) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(got.Versions))
	}
	if got.Versions[0].Version < got.Versions[1].Version {
		t.Error("expected versions newest first")
	}
}

func TestDocumentNotFound(t *testing.T) {
	svc, _ := newDocumentService()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get: expected not found, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete: expected not found, got %v", err)
	}
}
