package view_model

import (
	"fmt"
	"time"

	"github.com/cpucorecore/datelabel/internal/format"
	"github.com/cpucorecore/datelabel/internal/monitor"
)

type LabelView struct {
	Input    string `json:"input"`
	Label    string `json:"label"`
	Valid    bool   `json:"valid"`
	Timezone string `json:"timezone"`
}

func ConvertLabel(value any, f *format.DateLabel) *LabelView {
	view := &LabelView{
		Input:    describeInput(value),
		Timezone: f.Location().String(),
	}

	label, err := f.FormatE(value)
	monitor.ObserveFormat(monitor.InputKind(value), err)
	if err != nil {
		view.Label = f.InvalidLabel()
		return view
	}
	view.Label = label
	view.Valid = true
	return view
}

func ConvertLabels(values []any, f *format.DateLabel) []*LabelView {
	views := make([]*LabelView, len(values))
	for i, v := range values {
		views[i] = ConvertLabel(v, f)
	}
	return views
}

func describeInput(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}
