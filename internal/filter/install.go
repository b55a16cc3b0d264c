package filter

import (
	"github.com/cpucorecore/datelabel/internal/format"
	"github.com/cpucorecore/datelabel/internal/monitor"
)

const NameFormatDate = "formatDate"

// Install registers the application's display filters on reg.
// Call it once from bootstrap, before any template is parsed.
func Install(reg *Registry, f *format.DateLabel) error {
	return reg.Register(NameFormatDate, func(value any) string {
		label, err := f.FormatE(value)
		monitor.ObserveFormat(monitor.InputKind(value), err)
		if err != nil {
			return f.InvalidLabel()
		}
		return label
	})
}
