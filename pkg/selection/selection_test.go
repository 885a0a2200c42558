package selection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/native/headless"
	"github.com/goliatone/go-formbind/pkg/selection"
	"github.com/goliatone/go-formbind/pkg/validation"
)

type country struct {
	Code string
	Name string
}

type inputChange = input.ValueChangeEvent[[]string]

var countries = []country{
	{Code: "de", Name: "Germany"},
	{Code: "fr", Name: "France"},
	{Code: "it", Name: "Italy"},
}

func byCode() selection.ItemConverter[string, country] {
	return selection.Keyed(countries, func(c country) string { return c.Code })
}

func TestSingle(t *testing.T) {
	widget := headless.NewSelect(countries...)
	in := selection.Single(widget, byCode())

	if in.Value() != nil || !in.IsEmpty() {
		t.Fatalf("expected no selection initially")
	}

	widget.Choose(1)
	if got := in.Value(); got == nil || *got != "fr" {
		t.Fatalf("expected fr, got %v", got)
	}

	it := "it"
	if err := in.SetValue(&it); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := widget.Value(); got == nil || got.Name != "Italy" {
		t.Fatalf("expected Italy selected, got %+v", got)
	}

	unknown := "xx"
	if err := in.SetValue(&unknown); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if widget.Value() != nil || in.Value() != nil {
		t.Fatalf("unknown value must clear the selection")
	}
}

func TestMulti_FiltersToCurrentItems(t *testing.T) {
	widget := headless.NewCheckboxGroup(countries...)
	in := selection.Multi(widget, byCode())

	var seen [][]string
	in.AddValueChangeListener(func(e inputChange) { seen = append(seen, e.New) })

	widget.CheckIndexes(0, 2)
	if diff := cmp.Diff([]string{"de", "it"}, in.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	widget.SetItems(countries[:2])
	if diff := cmp.Diff([]string{"de"}, in.Value()); diff != "" {
		t.Fatalf("stale items must be filtered (-want +got):\n%s", diff)
	}

	widget.SetItems(countries[:1])
	if diff := cmp.Diff([][]string{{"de", "it"}, {"de"}}, seen); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestMulti_ItemsChangeRevalidates(t *testing.T) {
	widget := headless.NewCheckboxGroup(countries...)
	in := validation.New(selection.Multi(widget, byCode()))
	in.SetRequired(true)
	in.SetValidateOnValueChange(true)

	var fromClient []bool
	in.AddValueChangeListener(func(e inputChange) { fromClient = append(fromClient, e.FromClient) })

	widget.CheckIndexes(2)
	if in.Status() != validation.Valid {
		t.Fatalf("expected valid selection, got %s", in.Status())
	}

	widget.SetItems(countries[:2])
	if len(in.Value()) != 0 {
		t.Fatalf("expected the stale selection to be dropped, got %v", in.Value())
	}
	if in.Status() != validation.Invalid {
		t.Fatalf("expected the emptied required selection to be invalid, got %s", in.Status())
	}
	if diff := cmp.Diff([]bool{true, false}, fromClient); diff != "" {
		t.Fatalf("origin mismatch (-want +got):\n%s", diff)
	}
}

func TestMulti_SetValueDropsUnknownAndDuplicates(t *testing.T) {
	widget := headless.NewCheckboxGroup(countries...)
	in := selection.Multi(widget, byCode())

	if err := in.SetValue([]string{"fr", "zz", "fr", "de"}); err != nil {
		t.Fatalf("set value: %v", err)
	}
	want := []country{countries[1], countries[0]}
	if diff := cmp.Diff(want, widget.Value()); diff != "" {
		t.Fatalf("widget selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"fr", "de"}, in.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	in.Clear()
	if !in.IsEmpty() {
		t.Fatalf("expected empty after Clear, got %v", in.Value())
	}
}

func TestIdentityAndFuncs(t *testing.T) {
	widget := headless.NewSelect("a", "b")
	in := selection.Single(widget, selection.Identity[string]())
	widget.Choose(0)
	if got := in.Value(); got == nil || *got != "a" {
		t.Fatalf("expected a, got %v", got)
	}

	byLength := selection.Funcs(
		func(item string) int { return len(item) },
		func(n int) (string, bool) { return "", false },
	)
	if byLength.Value("abc") != 3 {
		t.Fatalf("unexpected value mapping")
	}
	if _, ok := byLength.Item(3); ok {
		t.Fatalf("expected no item")
	}
}

func TestSlice_Fetch(t *testing.T) {
	source := selection.Slice(countries, func(c country) string { return c.Name })

	cases := []struct {
		name  string
		query selection.Query
		want  []string
	}{
		{name: "all", query: selection.Query{}, want: []string{"de", "fr", "it"}},
		{name: "text", query: selection.Query{Text: "AN"}, want: []string{"de", "fr"}},
		{name: "page", query: selection.Query{Offset: 1, Limit: 1}, want: []string{"fr"}},
		{name: "past end", query: selection.Query{Offset: 5}, want: []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			items, err := source.Fetch(context.Background(), c.query)
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			codes := make([]string, 0, len(items))
			for _, item := range items {
				codes = append(codes, item.Code)
			}
			if diff := cmp.Diff(c.want, codes); diff != "" {
				t.Fatalf("fetch mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookup_PagesThroughSource(t *testing.T) {
	var queries []selection.Query
	source := selection.DataSourceFunc[country](func(ctx context.Context, q selection.Query) ([]country, error) {
		queries = append(queries, q)
		return selection.Slice(countries, nil).Fetch(ctx, q)
	})
	conv := selection.Lookup(context.Background(), source, func(c country) string { return c.Code }, selection.WithPageSize(2))

	item, ok := conv.Item("it")
	if !ok || item.Name != "Italy" {
		t.Fatalf("expected Italy, got %+v (%v)", item, ok)
	}
	want := []selection.Query{{Limit: 2}, {Offset: 2, Limit: 2}}
	if diff := cmp.Diff(want, queries); diff != "" {
		t.Fatalf("queries mismatch (-want +got):\n%s", diff)
	}

	if _, ok := conv.Item("zz"); ok {
		t.Fatalf("expected missing item")
	}
}

func TestLookup_WithQueryNarrowsScan(t *testing.T) {
	source := selection.Slice(countries, func(c country) string { return c.Name })
	conv := selection.Lookup(context.Background(), source, func(c country) string { return c.Code },
		selection.WithQuery(selection.Query{Text: "AN"}), selection.WithPageSize(1))

	for _, code := range []string{"de", "fr"} {
		if _, ok := conv.Item(code); !ok {
			t.Fatalf("expected %s to match the query", code)
		}
	}
	if item, ok := conv.Item("it"); ok {
		t.Fatalf("expected Italy to be filtered out, got %+v", item)
	}
}

func TestLookup_FetchFailureMeansNoSelection(t *testing.T) {
	source := selection.DataSourceFunc[country](func(context.Context, selection.Query) ([]country, error) {
		return nil, errors.New("database down")
	})
	widget := headless.NewSelect(countries...)
	in := selection.Single(widget, selection.Lookup(context.Background(), source, func(c country) string { return c.Code }))

	de := "de"
	if err := in.SetValue(&de); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if in.Value() != nil {
		t.Fatalf("expected no selection when the source fails")
	}
}

func TestProgrammerErrorsPanic(t *testing.T) {
	cases := map[string]func(){
		"nil converter": func() {
			selection.Single[string, country](headless.NewSelect(countries...), nil)
		},
		"nil funcs": func() {
			selection.Funcs[string, country](nil, nil)
		},
		"nil lookup source": func() {
			selection.Lookup[string, country](context.Background(), nil, func(c country) string { return c.Code })
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				if !ok || !errors.Is(err, selection.ErrIllegalArgument) {
					t.Fatalf("expected ErrIllegalArgument panic, got %v", err)
				}
			}()
			fn()
		})
	}
}
