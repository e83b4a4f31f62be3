package cli

import (
	"context"

	"github.com/fatih/color"

	"github.com/okian/combine/internal/domain/types"
)

type paletteKey struct{}

type palette struct {
	red, amber, green *color.Color
	head, dim         *color.Color
}

func newPalette(on bool) *palette {
	p := &palette{
		red:   color.New(color.FgRed, color.Bold),
		amber: color.New(color.FgYellow, color.Bold),
		green: color.New(color.FgGreen, color.Bold),
		head:  color.New(color.FgCyan, color.Bold),
		dim:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.red, p.amber, p.green, p.head, p.dim} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func withPalette(ctx context.Context, p *palette) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, paletteKey{}, p)
}

func paletteFrom(ctx context.Context) *palette {
	if ctx != nil {
		if p, ok := ctx.Value(paletteKey{}).(*palette); ok {
			return p
		}
	}
	return newPalette(false)
}

func (p *palette) tier(s types.Score) *color.Color {
	switch s {
	case types.Green:
		return p.green
	case types.Amber:
		return p.amber
	default:
		return p.red
	}
}
