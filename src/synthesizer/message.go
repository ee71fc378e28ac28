package synthesizer

import "encoding/json"

// webrtcBlock mirrors turn.start's optional webrtc object. Grounded on
// original_source/src/synthesizer/message/turn_start.rs.
type webrtcBlock struct {
	ConnectionString string `json:"connectionString"`
}

type turnStart struct {
	WebRTC *webrtcBlock `json:"webrtc,omitempty"`
}

// responseAudio mirrors the audio object nested in a response message.
// Grounded on original_source/src/synthesizer/message/response.rs.
type responseAudio struct {
	Type     string `json:"type"`
	StreamID string `json:"streamId"`
}

type responseMessage struct {
	Audio responseAudio `json:"audio"`
}

// BoundaryType tags the kind of Text a Word/Sentence boundary metadata entry
// carries.
type BoundaryType string

const (
	BoundarySentence    BoundaryType = "SentenceBoundary"
	BoundaryWord        BoundaryType = "WordBoundary"
	BoundaryPunctuation BoundaryType = "PunctuationBoundary"
)

// BoundaryText is the text span a Word/Sentence/Punctuation boundary
// metadata entry describes.
type BoundaryText struct {
	Text         string
	Length       int64
	BoundaryType BoundaryType
}

// MetadataKind tags which of Metadata's payload fields apply, the codec.Data
// tagged-payload pattern applied to audio.metadata's four entry shapes.
// Grounded on original_source/src/synthesizer/message/metadata.rs's
// Metadata enum (tag = "Type", content = "Data").
type MetadataKind int

const (
	MetadataWordBoundary MetadataKind = iota
	MetadataSentenceBoundary
	MetadataViseme
	MetadataSessionEnd
)

// Metadata is one entry of an audio.metadata message's Metadata[] array.
type Metadata struct {
	Kind            MetadataKind
	Offset          int64
	Duration        int64
	Text            BoundaryText
	VisemeID        int64
	IsLastAnimation bool
}

type wireText struct {
	Text         string       `json:"Text"`
	Length       int64        `json:"Length"`
	BoundaryType BoundaryType `json:"BoundaryType"`
}

type wireMetadataEntry struct {
	Type string          `json:"Type"`
	Data json.RawMessage `json:"Data"`
}

type wireMetadataRoot struct {
	Metadata []wireMetadataEntry `json:"Metadata"`
}

func parseMetadata(data string) ([]Metadata, error) {
	var root wireMetadataRoot
	if err := json.Unmarshal([]byte(data), &root); err != nil {
		return nil, err
	}

	out := make([]Metadata, 0, len(root.Metadata))
	for _, entry := range root.Metadata {
		switch entry.Type {
		case "WordBoundary", "SentenceBoundary":
			var body struct {
				Offset   int64     `json:"Offset"`
				Duration int64     `json:"Duration"`
				Text     wireText  `json:"text"`
			}
			if err := json.Unmarshal(entry.Data, &body); err != nil {
				return nil, err
			}
			kind := MetadataWordBoundary
			if entry.Type == "SentenceBoundary" {
				kind = MetadataSentenceBoundary
			}
			out = append(out, Metadata{
				Kind:     kind,
				Offset:   body.Offset,
				Duration: body.Duration,
				Text: BoundaryText{
					Text:         body.Text.Text,
					Length:       body.Text.Length,
					BoundaryType: body.Text.BoundaryType,
				},
			})

		case "Viseme":
			var body struct {
				Offset          int64 `json:"Offset"`
				VisemeID        int64 `json:"VisemeId"`
				IsLastAnimation bool  `json:"IsLastAnimation"`
			}
			if err := json.Unmarshal(entry.Data, &body); err != nil {
				return nil, err
			}
			out = append(out, Metadata{
				Kind:            MetadataViseme,
				Offset:          body.Offset,
				VisemeID:        body.VisemeID,
				IsLastAnimation: body.IsLastAnimation,
			})

		case "SessionEnd":
			var body struct {
				Offset int64 `json:"Offset"`
			}
			if err := json.Unmarshal(entry.Data, &body); err != nil {
				return nil, err
			}
			out = append(out, Metadata{Kind: MetadataSessionEnd, Offset: body.Offset})
		}
	}
	return out, nil
}

func unmarshal(data string, v interface{}) error {
	return json.Unmarshal([]byte(data), v)
}
