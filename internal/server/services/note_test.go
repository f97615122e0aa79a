package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dkrasnovs/notekeeper/internal/common"
	"github.com/dkrasnovs/notekeeper/internal/server/models"
)

var (
	userA = &models.User{ID: "ua", UserName: "alice", Email: "a@x.com"}
	userB = &models.User{ID: "ub", UserName: "bob", Email: "b@x.com"}
)

func TestAuthorizeOwner(t *testing.T) {
	if err := authorizeOwner(userA, "ua"); err != nil {
		t.Fatalf("owner denied: %v", err)
	}
	if err := authorizeOwner(userB, "ua"); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("expected common.ErrForbidden, got %v", err)
	}
}

func TestNoteCreate_SetsOwnerAndTimestamp(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	repo := &fakeNotesRepo{}
	svc := NewNoteService(db, &fakeRepoManager{notes: repo})

	note, err := svc.Create(context.Background(), userA, "T", "C")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if note.UserID != "ua" {
		t.Fatalf("owner not set from principal: %+v", note)
	}
	if note.CreatedAt.IsZero() {
		t.Fatalf("creation time not stamped")
	}
}

func TestNoteCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	svc := NewNoteService(db, &fakeRepoManager{notes: &fakeNotesRepo{}})

	tests := []struct {
		name           string
		title, content string
	}{
		{"empty title", "", "C"},
		{"empty content", "T", ""},
		{"title too long", strings.Repeat("x", models.NoteTitleMaxLen+1), "C"},
		{"content too long", "T", strings.Repeat("x", models.NoteContentMaxLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), userA, tt.title, tt.content)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("expected common.ErrorValidation, got %v", err)
			}
		})
	}
}

func TestNoteGetByID_OwnerGetsIdenticalContent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	repo := &fakeNotesRepo{notes: map[string]*models.Note{
		"n1": {ID: "n1", Title: "T", Content: "C", UserID: "ua", CreatedAt: time.Now()},
	}}
	svc := NewNoteService(db, &fakeRepoManager{notes: repo})

	first, err := svc.GetByID(context.Background(), userA, "n1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	second, err := svc.GetByID(context.Background(), userA, "n1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if first.Title != second.Title || first.Content != second.Content {
		t.Fatalf("repeated reads differ: %+v vs %+v", first, second)
	}
}

func TestNoteGetByID_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	svc := NewNoteService(db, &fakeRepoManager{notes: &fakeNotesRepo{notes: map[string]*models.Note{}}})

	_, err := svc.GetByID(context.Background(), userA, "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestNoteGetByID_NonOwnerDenied(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	repo := &fakeNotesRepo{notes: map[string]*models.Note{
		"n1": {ID: "n1", Title: "T", Content: "C", UserID: "ua"},
	}}
	svc := NewNoteService(db, &fakeRepoManager{notes: repo})

	_, err := svc.GetByID(context.Background(), userB, "n1")
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("expected common.ErrForbidden, got %v", err)
	}
}

func TestNoteList_ScopedByPrincipal(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	repo := &fakeNotesRepo{selectOut: []*models.Note{{ID: "n1", UserID: "ua"}}}
	svc := NewNoteService(db, &fakeRepoManager{notes: repo})

	got, err := svc.List(context.Background(), userA)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if repo.selectedOwner != "ua" {
		t.Fatalf("list queried owner %q, want ua", repo.selectedOwner)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected notes: %+v", got)
	}
}

func TestNoteUpdate_OwnerAndCreatedAtImmutable(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := &fakeNotesRepo{notes: map[string]*models.Note{
		"n1": {ID: "n1", Title: "T", Content: "C", UserID: "ua", CreatedAt: created},
	}}
	svc := NewNoteService(db, &fakeRepoManager{notes: repo})

	got, err := svc.Update(context.Background(), userA, "n1", "T2", "C2")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Title != "T2" || got.Content != "C2" {
		t.Fatalf("fields not updated: %+v", got)
	}
	if got.UserID != "ua" || !got.CreatedAt.Equal(created) {
		t.Fatalf("owner or creation time changed: %+v", got)
	}
	if repo.updated == nil || repo.updated.ID != "n1" {
		t.Fatalf("update not persisted: %+v", repo.updated)
	}
}

func TestNoteUpdate_NonOwnerDenied(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	repo := &fakeNotesRepo{notes: map[string]*models.Note{
		"n1": {ID: "n1", Title: "T", Content: "C", UserID: "ua"},
	}}
	svc := NewNoteService(db, &fakeRepoManager{notes: repo})

	_, err := svc.Update(context.Background(), userB, "n1", "T2", "C2")
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("expected common.ErrForbidden, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("denied update still persisted: %+v", repo.updated)
	}
}

func TestNoteDelete_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	notes := &fakeNotesRepo{notes: map[string]*models.Note{
		"n1": {ID: "n1", UserID: "ua"},
	}}
	atts := &fakeAttachmentsRepo{}
	svc := NewNoteService(db, &fakeRepoManager{notes: notes, attachments: atts})

	if err := svc.Delete(context.Background(), userA, "n1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if notes.deletedID != "n1" || atts.deletedNoteID != "n1" {
		t.Fatalf("note or attachments not deleted: %q %q", notes.deletedID, atts.deletedNoteID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx expectations: %v", err)
	}
}

func TestNoteDelete_NonOwnerDenied(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	notes := &fakeNotesRepo{notes: map[string]*models.Note{
		"n1": {ID: "n1", UserID: "ua"},
	}}
	svc := NewNoteService(db, &fakeRepoManager{notes: notes, attachments: &fakeAttachmentsRepo{}})

	if err := svc.Delete(context.Background(), userB, "n1"); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("expected common.ErrForbidden, got %v", err)
	}
	if notes.deletedID != "" {
		t.Fatalf("denied delete still removed the note")
	}
}

func TestNoteDelete_RollbackOnError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	notes := &fakeNotesRepo{
		notes:     map[string]*models.Note{"n1": {ID: "n1", UserID: "ua"}},
		deleteErr: errors.New("boom"),
	}
	svc := NewNoteService(db, &fakeRepoManager{notes: notes, attachments: &fakeAttachmentsRepo{}})

	if err := svc.Delete(context.Background(), userA, "n1"); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx expectations: %v", err)
	}
}
