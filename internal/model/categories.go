package model

import "strings"

// Widget category tags, used by the ".tag" form of css selectors to match
// families of widget types instead of a single canonical type.
const (
	CategoryTextInput = "text-input"
	CategoryButton    = "button"
	CategoryContainer = "container"
	CategoryItemView  = "item-view"
	CategoryMenu      = "menu"
	CategoryLabel     = "label"
	CategoryOther     = "other"
)

var categories = map[string]string{
	"TextField":     CategoryTextInput,
	"TextArea":      CategoryTextInput,
	"PasswordField": CategoryTextInput,
	"StyledText":    CategoryTextInput,
	"Spinner":       CategoryTextInput,
	"ComboBox":      CategoryItemView,

	"Button":       CategoryButton,
	"ToggleButton": CategoryButton,
	"CheckBox":     CategoryButton,
	"RadioButton":  CategoryButton,

	"Panel":      CategoryContainer,
	"Frame":      CategoryContainer,
	"Dialog":     CategoryContainer,
	"Shell":      CategoryContainer,
	"Window":     CategoryContainer,
	"Group":      CategoryContainer,
	"Composite":  CategoryContainer,
	"ScrollPane": CategoryContainer,
	"SplitPane":  CategoryContainer,
	"TabFolder":  CategoryContainer,
	"Canvas":     CategoryContainer,

	"Table":       CategoryItemView,
	"Tree":        CategoryItemView,
	"List":        CategoryItemView,
	"TableRow":    CategoryItemView,
	"TableCell":   CategoryItemView,
	"TableColumn": CategoryItemView,
	"TreeItem":    CategoryItemView,
	"TabItem":     CategoryItemView,

	"MenuBar":  CategoryMenu,
	"Menu":     CategoryMenu,
	"MenuItem": CategoryMenu,
	"ToolBar":  CategoryMenu,
	"ToolItem": CategoryMenu,

	"Label": CategoryLabel,
	"Link":  CategoryLabel,
}

// Category returns the category tag for a widget type. Toolkit-prefixed
// spellings like "JButton" map to the same category as their canonical
// type. Unknown types fall into "other".
func Category(widgetType string) string {
	if cat, ok := categories[widgetType]; ok {
		return cat
	}
	if cat, ok := categories[StripTypePrefix(widgetType)]; ok {
		return cat
	}
	return CategoryOther
}

// StripTypePrefix removes the toolkit "J" prefix from a widget type name
// when the remainder is a known canonical type ("JButton" -> "Button").
// Other names pass through unchanged.
func StripTypePrefix(widgetType string) string {
	if strings.HasPrefix(widgetType, "J") && len(widgetType) > 1 {
		rest := widgetType[1:]
		if _, ok := categories[rest]; ok {
			return rest
		}
	}
	return widgetType
}

// TypeEquals compares two widget type names with the toolkit-prefix
// leniency: "JButton" and "Button" are the same type. The comparison is
// otherwise case-sensitive.
func TypeEquals(a, b string) bool {
	if a == b {
		return true
	}
	return StripTypePrefix(a) == StripTypePrefix(b)
}
