package render

import (
	"context"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/errors"
	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG}

// Render produces the requested artifact from a positioned layout.
func Render(ctx context.Context, l graph.Layout, format string, opts Options) ([]byte, error) {
	if err := errors.ValidateFormat(format, Formats); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatDOT:
		return []byte(ToDOT(l, opts)), nil
	default:
		return RenderSVG(ctx, ToDOT(l, opts))
	}
}
