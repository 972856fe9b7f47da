// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package card

import (
	"encoding/json"
	"fmt"

	"github.com/taibuivan/studydeck/internal/platform/apperr"
	"github.com/taibuivan/studydeck/internal/platform/validate"
)

// # Reference Variants

// ReferenceType discriminates the [Reference] variants on the wire.
type ReferenceType string

const (
	ReferenceText    ReferenceType = "text"
	ReferenceLink    ReferenceType = "link"
	ReferenceYouTube ReferenceType = "youtube"
)

// Reference is a source attached to a card. The set of variants is closed:
// [TextReference], [LinkReference] and [YouTubeReference].
type Reference interface {
	Type() ReferenceType
	validate(field string, validator *validate.Validator)
}

// TextReference is a free-form note.
type TextReference struct {
	Text string
}

// LinkReference points to a web page.
type LinkReference struct {
	URL string
}

// YouTubeReference points into a video.
type YouTubeReference struct {
	VideoID          string
	TimestampSeconds int
}

func (TextReference) Type() ReferenceType    { return ReferenceText }
func (LinkReference) Type() ReferenceType    { return ReferenceLink }
func (YouTubeReference) Type() ReferenceType { return ReferenceYouTube }

func (r TextReference) validate(field string, validator *validate.Validator) {
	validator.Required(field+".text", r.Text).MaxLen(field+".text", r.Text, MaxReferenceLength)
}

func (r LinkReference) validate(field string, validator *validate.Validator) {
	validator.Required(field+".url", r.URL)
	if r.URL != "" {
		validator.URL(field+".url", r.URL).MaxLen(field+".url", r.URL, MaxReferenceLength)
	}
}

func (r YouTubeReference) validate(field string, validator *validate.Validator) {
	validator.Required(field+".video_id", r.VideoID).
		MaxLen(field+".video_id", r.VideoID, 64).
		Custom(field+".timestamp_seconds", r.TimestampSeconds < 0, "Must not be negative")
}

// # Codec

// References is an ordered reference list with a tagged JSON form:
//
//	{"type": "youtube", "video_id": "dQw4w9WgXcQ", "timestamp_seconds": 42}
type References []Reference

// ReferenceDocument is the flat storage and wire shape of one reference.
type ReferenceDocument struct {
	Type             ReferenceType `json:"type" bson:"type"`
	Text             string        `json:"text,omitempty" bson:"text,omitempty"`
	URL              string        `json:"url,omitempty" bson:"url,omitempty"`
	VideoID          string        `json:"video_id,omitempty" bson:"video_id,omitempty"`
	TimestampSeconds *int          `json:"timestamp_seconds,omitempty" bson:"timestamp_seconds,omitempty"`
}

// Documents flattens the references into their storage shape.
func (refs References) Documents() []ReferenceDocument {
	documents := make([]ReferenceDocument, 0, len(refs))
	for _, ref := range refs {
		document := ReferenceDocument{Type: ref.Type()}
		switch r := ref.(type) {
		case TextReference:
			document.Text = r.Text
		case LinkReference:
			document.URL = r.URL
		case YouTubeReference:
			document.VideoID = r.VideoID
			document.TimestampSeconds = &r.TimestampSeconds
		}
		documents = append(documents, document)
	}
	return documents
}

// FromDocuments rebuilds references from their storage shape.
func FromDocuments(documents []ReferenceDocument) (References, error) {
	refs := make(References, 0, len(documents))
	for i, document := range documents {
		switch document.Type {
		case ReferenceText:
			refs = append(refs, TextReference{Text: document.Text})
		case ReferenceLink:
			refs = append(refs, LinkReference{URL: document.URL})
		case ReferenceYouTube:
			ref := YouTubeReference{VideoID: document.VideoID}
			if document.TimestampSeconds != nil {
				ref.TimestampSeconds = *document.TimestampSeconds
			}
			refs = append(refs, ref)
		default:
			return nil, apperr.ValidationError("Unknown reference type", apperr.FieldError{
				Field:   fmt.Sprintf("%s[%d].type", FieldReferences, i),
				Message: fmt.Sprintf("Must be one of %q, %q or %q", ReferenceText, ReferenceLink, ReferenceYouTube),
			})
		}
	}
	return refs, nil
}

// MarshalJSON implements [json.Marshaler].
func (refs References) MarshalJSON() ([]byte, error) {
	return json.Marshal(refs.Documents())
}

// UnmarshalJSON implements [json.Unmarshaler]. Unknown types are rejected with a
// validation [apperr.AppError].
func (refs *References) UnmarshalJSON(data []byte) error {
	var documents []ReferenceDocument
	if err := json.Unmarshal(data, &documents); err != nil {
		return err
	}

	decoded, err := FromDocuments(documents)
	if err != nil {
		return err
	}

	*refs = decoded
	return nil
}

// Validate checks every variant's fields.
func (refs References) Validate(validator *validate.Validator) {
	validator.Custom(FieldReferences, len(refs) > MaxReferenceCount, fmt.Sprintf("At most %d references", MaxReferenceCount))
	for i, ref := range refs {
		ref.validate(fmt.Sprintf("%s[%d]", FieldReferences, i), validator)
	}
}
