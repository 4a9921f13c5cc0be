package history_test

import (
	"context"
	"testing"

	"github.com/realganganadul/gingin-backend/internal/model/chat"
	"github.com/realganganadul/gingin-backend/internal/service/history"
)

func TestServiceSaveLoad(t *testing.T) {
	svc := history.NewService()
	ctx := context.Background()

	messages := []chat.Message{
		{Role: chat.RoleUser, Text: "hi"},
		{Role: chat.RoleModel, Text: "hello"},
	}
	if err := svc.Save(ctx, "session-1", messages); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	got, err := svc.Load(ctx, "session-1")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].ID == "" || got[0].CreatedAt.IsZero() {
		t.Fatal("expected stamped id and timestamp")
	}
	if got[1].SessionID != "session-1" {
		t.Fatalf("unexpected session id %q", got[1].SessionID)
	}
}

func TestServiceSaveReplacesTranscript(t *testing.T) {
	svc := history.NewService()
	ctx := context.Background()

	if err := svc.Save(ctx, "session-1", []chat.Message{{Role: chat.RoleUser, Text: "first"}}); err != nil {
		t.Fatalf("Save err: %v", err)
	}
	if err := svc.Save(ctx, "session-1", []chat.Message{{Role: chat.RoleUser, Text: "second"}}); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	got, err := svc.Load(ctx, "session-1")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(got) != 1 || got[0].Text != "second" {
		t.Fatalf("save must replace the transcript, got %v", got)
	}
}

func TestServiceLoadUnknownSession(t *testing.T) {
	svc := history.NewService()

	got, err := svc.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty transcript, got %v", got)
	}
}

func TestServiceRequiresSessionID(t *testing.T) {
	svc := history.NewService()

	if err := svc.Save(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if _, err := svc.Load(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty session id")
	}
}
