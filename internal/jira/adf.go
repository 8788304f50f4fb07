package jira

import "strings"

type (
	AtlassianDoc struct {
		Type    string       `json:"type"`
		Version int          `json:"version"`
		Content []DocContent `json:"content"`
	}

	DocContent struct {
		Type    string       `json:"type"`
		Text    string       `json:"text,omitempty"`
		Content []DocContent `json:"content,omitempty"`
	}
)

// parseAtlassianDoc convierte el contenido de un documento de Atlassian en una cadena de texto.
func parseAtlassianDoc(content []DocContent) string {
	var result strings.Builder
	parseAtlassianDocRecursive(content, &result)
	return strings.TrimSpace(result.String())
}

func parseAtlassianDocRecursive(content []DocContent, result *strings.Builder) {
	for _, item := range content {
		switch item.Type {
		case "text":
			result.WriteString(item.Text)
		case "paragraph":
			if item.Content != nil {
				parseAtlassianDocRecursive(item.Content, result)
				if len(item.Content) > 0 {
					result.WriteString("\n")
				}
			}
		case "listItem":
			if item.Content != nil {
				parseAtlassianDocRecursive(item.Content, result)
			}
			result.WriteString("\n")
		case "bulletList", "orderedList":
			if item.Content != nil {
				parseAtlassianDocRecursive(item.Content, result)
			}
		case "hardBreak":
			result.WriteString("\n")
		default:
		}
	}
}
