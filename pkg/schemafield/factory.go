package schemafield

import (
	"sync"
	"time"

	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/native/headless"
)

// WidgetFactory creates the native widget for a field. path is the dotted
// form path of the field. Select items are the captions of the schema enum.
type WidgetFactory interface {
	Text(path string) native.HasValue[string]
	Checkbox(path string) native.HasValue[bool]
	Date(path string) native.HasValue[*time.Time]
	Select(path string, items []string) native.SingleSelect[string]
	MultiSelect(path string, items []string) native.MultiSelect[string]
}

// Headless is a WidgetFactory producing in-memory widgets. Created widgets
// are kept by path so callers can drive them.
type Headless struct {
	mu      sync.Mutex
	widgets map[string]any
}

// NewHeadless returns an empty headless factory.
func NewHeadless() *Headless {
	return &Headless{widgets: make(map[string]any)}
}

func (h *Headless) Text(path string) native.HasValue[string] {
	return remember(h, path, headless.NewTextField())
}

func (h *Headless) Checkbox(path string) native.HasValue[bool] {
	return remember(h, path, headless.NewCheckbox())
}

func (h *Headless) Date(path string) native.HasValue[*time.Time] {
	return remember(h, path, headless.NewDatePicker())
}

func (h *Headless) Select(path string, items []string) native.SingleSelect[string] {
	return remember(h, path, headless.NewSelect(items...))
}

func (h *Headless) MultiSelect(path string, items []string) native.MultiSelect[string] {
	return remember(h, path, headless.NewCheckboxGroup(items...))
}

// Widget returns the widget created for path.
func (h *Headless) Widget(path string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.widgets[path]
	return w, ok
}

func remember[W any](h *Headless, path string, widget W) W {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.widgets == nil {
		h.widgets = make(map[string]any)
	}
	h.widgets[path] = widget
	return widget
}
