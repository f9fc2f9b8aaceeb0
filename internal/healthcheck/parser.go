package healthcheck

import (
	"encoding/json"
	"encoding/xml"
	"strings"

	"github.com/esstools/essready/internal/errors"
)

// BodyFormat is the detected encoding of a health-check response body.
type BodyFormat int

const (
	// FormatUnknown means the body is neither recognizable JSON nor XML.
	FormatUnknown BodyFormat = iota
	// FormatJSON is a JSON-encoded response.
	FormatJSON
	// FormatXML is an XML-encoded response.
	FormatXML
)

// String returns the string representation of the format.
func (f BodyFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// SniffFormat decides the body encoding from the first non-whitespace
// character, falling back to the content-type hint. An empty body is always
// FormatUnknown; the content-type hint cannot rescue a body with no content.
func SniffFormat(body string, contentType string) BodyFormat {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return FormatUnknown
	}
	if strings.HasPrefix(trimmed, "{") {
		return FormatJSON
	}
	if strings.HasPrefix(trimmed, "<") {
		return FormatXML
	}

	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "json") {
		return FormatJSON
	}
	if strings.Contains(ct, "xml") {
		return FormatXML
	}
	return FormatUnknown
}

// ParsedResponse is the normalized view of a health-check response body.
// Successful is nil when the body carried no overall flag.
type ParsedResponse struct {
	Format     BodyFormat
	Successful *bool
	Components []Component
}

// ParseResponse sniffs the body encoding and normalizes it.
//
// A FormatUnknown body yields an ErrCodeParse error with the message
// "Unknown response format"; malformed JSON/XML likewise yields an
// ErrCodeParse error. Callers degrade these to a field-level error string
// on the result instead of failing the probe.
func ParseResponse(body string, contentType string) (*ParsedResponse, error) {
	format := SniffFormat(body, contentType)
	switch format {
	case FormatJSON:
		return parseJSON(body)
	case FormatXML:
		return parseXML(body)
	default:
		return nil, errors.New(errors.ErrCodeParse, "Unknown response format")
	}
}

// JSON wire contract.

type jsonResponse struct {
	Successful *bool           `json:"Successful"`
	Components []jsonComponent `json:"Components"`
}

type jsonComponent struct {
	ComponentName     string            `json:"ComponentName"`
	ComponentVersion  string            `json:"ComponentVersion"`
	Successful        bool              `json:"Successful"`
	ComponentMessages []json.RawMessage `json:"ComponentMessages"`
}

type jsonMessage struct {
	Type    string `json:"Type"`
	Message string `json:"Message"`
}

func parseJSON(body string) (*ParsedResponse, error) {
	var doc jsonResponse
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, errors.NewParseError("JSON", err)
	}

	parsed := &ParsedResponse{
		Format:     FormatJSON,
		Successful: doc.Successful,
	}
	for _, jc := range doc.Components {
		component := Component{
			Name:    jc.ComponentName,
			Version: jc.ComponentVersion,
			Status:  componentStatus(jc.Successful),
		}
		for _, raw := range jc.ComponentMessages {
			component.Messages = append(component.Messages, normalizeJSONMessage(raw))
		}
		parsed.Components = append(parsed.Components, component)
	}
	return parsed, nil
}

// normalizeJSONMessage folds the two JSON message shapes into one.
// A bare string becomes an Info message whose FullMessage is the string
// itself; an object becomes "{Type}: {Detail}".
func normalizeJSONMessage(raw json.RawMessage) ComponentMessage {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ComponentMessage{Type: "Info", Detail: s, FullMessage: s}
	}

	var obj jsonMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		return ComponentMessage{
			Type:        obj.Type,
			Detail:      obj.Message,
			FullMessage: obj.Type + ": " + obj.Message,
		}
	}

	// Neither shape: keep the raw text so nothing is dropped silently.
	return ComponentMessage{Type: "Info", Detail: string(raw), FullMessage: string(raw)}
}

// XML wire contract. Successful is the literal string "true"/"false", not a
// native boolean.

type xmlResponse struct {
	XMLName    xml.Name       `xml:"HealthCheckResponse"`
	Successful string         `xml:"Successful"`
	Components []xmlComponent `xml:"Components>Component"`
}

type xmlComponent struct {
	ComponentName     string   `xml:"ComponentName"`
	ComponentVersion  string   `xml:"ComponentVersion"`
	Successful        string   `xml:"Successful"`
	ComponentMessages []string `xml:"ComponentMessages>Message"`
}

func parseXML(body string) (*ParsedResponse, error) {
	var doc xmlResponse
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, errors.NewParseError("XML", err)
	}

	parsed := &ParsedResponse{Format: FormatXML}
	if doc.Successful != "" {
		successful := doc.Successful == "true"
		parsed.Successful = &successful
	}
	for _, xc := range doc.Components {
		component := Component{
			Name:    xc.ComponentName,
			Version: xc.ComponentVersion,
			Status:  componentStatus(xc.Successful == "true"),
		}
		// XML messages are carried through as-is; only the JSON path
		// normalizes Type/Detail.
		for _, msg := range xc.ComponentMessages {
			component.Messages = append(component.Messages, ComponentMessage{FullMessage: msg})
		}
		parsed.Components = append(parsed.Components, component)
	}
	return parsed, nil
}

func componentStatus(successful bool) ComponentStatus {
	if successful {
		return ComponentHealthy
	}
	return ComponentUnhealthy
}
