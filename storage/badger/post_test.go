package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/storage"
)

func TestPostBasics(t *testing.T) {
	// Create in-memory repositories
	postRepo, feedRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		feedRepo.Close()
		postRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// Test adding a post
	post := &core.Post{
		OriginalURL: "https://example.com/a.html",
		Title:       "An Article",
		HTMLContent: "<p>Hi</p>",
		TextContent: "Hi",
		Summary:     "A greeting.",
		Vector:      []float32{0.1, 0.2, 0.3},
	}

	added, err := postRepo.AddPosts(ctx, post)
	if err != nil {
		t.Fatalf("Failed to add post: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	if added[0].InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	// Test retrieving the post
	retrieved, err := postRepo.GetPost(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get post: %v", err)
	}

	if retrieved.TextContent != "Hi" {
		t.Fatalf("Expected 'Hi', got '%s'", retrieved.TextContent)
	}
	if len(retrieved.Vector) != 3 {
		t.Fatalf("Expected 3 vector components, got %d", len(retrieved.Vector))
	}
}

func TestPostURLUniqueness(t *testing.T) {
	postRepo, feedRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { feedRepo.Close(); postRepo.Close(); backend.Close() }()

	ctx := context.Background()

	first := &core.Post{OriginalURL: "https://example.com/a.html", TextContent: "Hi"}
	if _, err := postRepo.AddPosts(ctx, first); err != nil {
		t.Fatalf("Failed to add post: %v", err)
	}

	// Inserting the same URL again must fail
	dup := &core.Post{OriginalURL: "https://example.com/a.html", TextContent: "Hi again"}
	_, err = postRepo.AddPosts(ctx, dup)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	// The original post must be untouched
	found, err := postRepo.FindPostByOriginalURL(ctx, "https://example.com/a.html")
	if err != nil {
		t.Fatalf("Failed to find post by URL: %v", err)
	}
	if found.Id != first.Id {
		t.Fatalf("Expected post %d, got %d", first.Id, found.Id)
	}
	if found.TextContent != "Hi" {
		t.Fatalf("Expected original content, got '%s'", found.TextContent)
	}
}

func TestFindPostByOriginalURL_NotFound(t *testing.T) {
	postRepo, feedRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { feedRepo.Close(); postRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = postRepo.FindPostByOriginalURL(ctx, "https://example.com/missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestPostUpdate(t *testing.T) {
	postRepo, feedRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { feedRepo.Close(); postRepo.Close(); backend.Close() }()

	ctx := context.Background()

	post := &core.Post{OriginalURL: "https://example.com/a.html", TextContent: "Hi"}
	if _, err := postRepo.AddPosts(ctx, post); err != nil {
		t.Fatalf("Failed to add post: %v", err)
	}

	post.Vector = []float32{1, 2, 3}
	if _, err := postRepo.UpdatePosts(ctx, post); err != nil {
		t.Fatalf("Failed to update post: %v", err)
	}

	retrieved, err := postRepo.GetPost(ctx, post.Id)
	if err != nil {
		t.Fatalf("Failed to get post: %v", err)
	}
	if len(retrieved.Vector) != 3 {
		t.Fatalf("Expected updated vector, got %v", retrieved.Vector)
	}
	if retrieved.UpdatedAt.Before(retrieved.InsertedAt) {
		t.Fatal("Expected UpdatedAt >= InsertedAt")
	}

	// Updating a missing post must fail
	missing := &core.Post{Id: 9999, OriginalURL: "https://example.com/x", TextContent: "x"}
	_, err = postRepo.UpdatePosts(ctx, missing)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestPostDelete(t *testing.T) {
	postRepo, feedRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { feedRepo.Close(); postRepo.Close(); backend.Close() }()

	ctx := context.Background()

	post := &core.Post{OriginalURL: "https://example.com/a.html", TextContent: "Hi"}
	if _, err := postRepo.AddPosts(ctx, post); err != nil {
		t.Fatalf("Failed to add post: %v", err)
	}

	if err := postRepo.DeletePosts(ctx, post.Id); err != nil {
		t.Fatalf("Failed to delete post: %v", err)
	}

	// Both the record and the URL index entry must be gone
	if _, err := postRepo.GetPost(ctx, post.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if _, err := postRepo.FindPostByOriginalURL(ctx, "https://example.com/a.html"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// The URL can be ingested again after deletion
	if _, err := postRepo.AddPosts(ctx, &core.Post{OriginalURL: "https://example.com/a.html", TextContent: "Hi"}); err != nil {
		t.Fatalf("Failed to re-add post: %v", err)
	}
}

func TestGetAllPosts(t *testing.T) {
	postRepo, feedRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { feedRepo.Close(); postRepo.Close(); backend.Close() }()

	ctx := context.Background()

	urls := []string{
		"https://example.com/1",
		"https://example.com/2",
		"https://example.com/3",
	}
	for _, url := range urls {
		if _, err := postRepo.AddPosts(ctx, &core.Post{OriginalURL: url, TextContent: "x"}); err != nil {
			t.Fatalf("Failed to add post: %v", err)
		}
	}

	all, err := postRepo.GetAllPosts(ctx)
	if err != nil {
		t.Fatalf("Failed to get all posts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 posts, got %d", len(all))
	}
}
