package web

import "testing"

func TestAssetFor(t *testing.T) {
	tests := []struct {
		name      string
		wantOK    bool
		wantCType string
	}{
		{"css/app.css", true, "text/css; charset=utf-8"},
		{"img/steak.svg", true, "image/svg+xml"},
		{faviconAsset, true, "image/svg+xml"},
		{"img/steak.png", false, ""},
		{"css/app.svg", false, ""},
		{"js/app.js", false, ""},
		{"app.css", false, ""},
		{"img/", false, ""},
		{"css/../img/steak.svg", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := assetFor(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("assetFor(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if kind.contentType != tt.wantCType {
				t.Errorf("assetFor(%q) content type = %q, want %q", tt.name, kind.contentType, tt.wantCType)
			}
		})
	}
}

func TestEmbeddedAssetsAreServable(t *testing.T) {
	for _, name := range []string{"static/css/app.css", "static/img/steak.svg", "static/" + faviconAsset} {
		if _, err := staticFiles.ReadFile(name); err != nil {
			t.Errorf("expected %s to be embedded: %v", name, err)
		}
	}
}
