package entities

import (
	"testing"
	"time"

	"parley-server/services/chat-api/internal/domain/message"
)

func TestMessagePartsRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	domainMsg := &message.Message{
		ID:       "m1",
		ThreadID: "t1",
		UserID:   "user-1",
		Role:     message.RoleAssistant,
		Content:  "final answer",
		Parts: []message.Part{
			message.ReasoningPart("thinking it through"),
			message.TextPart("final answer"),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	entity := NewSchemaMessage(domainMsg)
	if len(entity.Parts) == 0 {
		t.Fatal("expected parts encoded on the entity")
	}

	got := entity.EtoD()
	if len(got.Parts) != 2 {
		t.Fatalf("expected 2 parts after round trip, got %d", len(got.Parts))
	}
	if got.Parts[0].Type != message.PartTypeReasoning || got.Parts[0].Reasoning != "thinking it through" {
		t.Fatalf("unexpected first part: %+v", got.Parts[0])
	}
	if got.Parts[1].Type != message.PartTypeText || got.Parts[1].Text != "final answer" {
		t.Fatalf("unexpected second part: %+v", got.Parts[1])
	}
}

func TestMessageEtoDToleratesCorruptParts(t *testing.T) {
	entity := &Message{
		ID:       "m1",
		ThreadID: "t1",
		UserID:   "user-1",
		Role:     "user",
		Content:  "hello",
		Parts:    []byte("{not json"),
	}

	got := entity.EtoD()
	if got.Parts != nil {
		t.Fatalf("expected corrupt parts dropped, got %+v", got.Parts)
	}
	if got.Content != "hello" {
		t.Fatalf("expected remaining fields mapped, got %q", got.Content)
	}
}
