package configloader

import "github.com/yaklabco/pylex/pkg/config"

// merge layers override on top of base and returns a new Config. Zero
// scalars, nil pointers and nil slices in override leave base untouched;
// a non-nil slice replaces the base list wholesale. Plain booleans can
// only be switched on by a later layer.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	out := *base

	setScalar(&out.Indent.Width, override.Indent.Width)
	setScalar(&out.Indent.UseTabs, override.Indent.UseTabs)
	setScalar(&out.ColorScheme, override.ColorScheme)
	setScalar(&out.Format, override.Format)
	setScalar(&out.Jobs, override.Jobs)
	setScalar(&out.Strict, override.Strict)

	setFlag(&out.DocstringHeuristic, override.DocstringHeuristic)
	setFlag(&out.Markdown, override.Markdown)

	setList(&out.GoverningKeywords, override.GoverningKeywords)
	setList(&out.DedentKeywords, override.DedentKeywords)
	setList(&out.Operators, override.Operators)
	setList(&out.Ignore, override.Ignore)

	return &out
}

func setScalar[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func setFlag(dst **bool, v *bool) {
	if v != nil {
		b := *v
		*dst = &b
	}
}

func setList(dst *[]string, v []string) {
	if v != nil {
		*dst = v
	}
}

// MergeAll folds configs left to right; later entries win.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
