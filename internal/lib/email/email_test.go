package email

import (
	"strings"
	"testing"
)

func TestRenderPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)
			if err != nil {
				t.Fatalf("Render(%s) error: %v", name, err)
			}

			for key, value := range data {
				if !strings.Contains(html, value) {
					t.Errorf("rendered %s missing %s value %q", name, key, value)
				}
			}
		})
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	html, err := Render(TemplateDeveloperAssigned, map[string]string{
		"DeveloperName": "<script>alert(1)</script>",
		"LeadTitle":     "Deal",
		"ClientName":    "Client",
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Errorf("template output was not escaped: %s", html)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render(Template("missing"), nil); err == nil {
		t.Fatal("expected an error for an unknown template")
	}
}
