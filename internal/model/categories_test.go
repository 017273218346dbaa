package model

import "testing"

func TestCategory(t *testing.T) {
	tests := []struct {
		widgetType string
		want       string
	}{
		{"Button", CategoryButton},
		{"JButton", CategoryButton},
		{"TextField", CategoryTextInput},
		{"JTextField", CategoryTextInput},
		{"Panel", CategoryContainer},
		{"Table", CategoryItemView},
		{"TableCell", CategoryItemView},
		{"TreeItem", CategoryItemView},
		{"MenuItem", CategoryMenu},
		{"Label", CategoryLabel},
		{"Widget", CategoryOther},
		{"JWidget", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		if got := Category(tt.widgetType); got != tt.want {
			t.Errorf("Category(%q) = %q, want %q", tt.widgetType, got, tt.want)
		}
	}
}

func TestStripTypePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JButton", "Button"},
		{"JTree", "Tree"},
		{"Button", "Button"},
		{"JWidget", "JWidget"},
		{"J", "J"},
		{"Jumbo", "Jumbo"},
	}
	for _, tt := range tests {
		if got := StripTypePrefix(tt.in); got != tt.want {
			t.Errorf("StripTypePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTypeEquals(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Button", "Button", true},
		{"JButton", "Button", true},
		{"Button", "JButton", true},
		{"JButton", "JButton", true},
		{"button", "Button", false},
		{"Button", "Label", false},
		{"Jumbo", "umbo", false},
	}
	for _, tt := range tests {
		if got := TypeEquals(tt.a, tt.b); got != tt.want {
			t.Errorf("TypeEquals(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
