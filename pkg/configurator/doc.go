// Package configurator provides the capability configurators concrete
// builders are composed from. Each configurator holds the widget facet it
// configures and the owning builder B, so the fluent methods promoted
// through embedding return the builder rather than the configurator:
//
//	type TextBuilder struct {
//		configurator.LabelConfigurator[*TextBuilder]
//		configurator.SizeConfigurator[*TextBuilder]
//	}
//
//	b := &TextBuilder{}
//	b.LabelConfigurator = configurator.NewLabel(b, widget, loc, nil)
//	b.SizeConfigurator = configurator.NewSize(b, widget)
//	b.Label("Name").Width("20em")
//
// Operations on a capability the widget does not implement are no-ops.
package configurator
