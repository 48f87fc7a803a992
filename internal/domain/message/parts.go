package message

import (
	"parley-server/services/chat-api/internal/domain/attachment"
)

// PartType discriminates message part variants.
type PartType string

const (
	PartTypeText            PartType = "text"
	PartTypeReasoning       PartType = "reasoning"
	PartTypeFileAttachments PartType = "file_attachments"
)

// Part is one fragment of a message's structured content. Exactly one
// payload field is populated, selected by Type.
type Part struct {
	Type        PartType         `json:"type"`
	Text        string           `json:"text,omitempty"`
	Reasoning   string           `json:"reasoning,omitempty"`
	Attachments []attachment.Ref `json:"attachments,omitempty"`
}

// TextPart builds a plain text fragment.
func TextPart(text string) Part {
	return Part{Type: PartTypeText, Text: text}
}

// ReasoningPart builds a model reasoning fragment.
func ReasoningPart(reasoning string) Part {
	return Part{Type: PartTypeReasoning, Reasoning: reasoning}
}

// FileAttachmentsPart builds a fragment carrying attachment references.
func FileAttachmentsPart(refs []attachment.Ref) Part {
	return Part{Type: PartTypeFileAttachments, Attachments: refs}
}
