package analysis

// Region is a collapsible range of lines derived from fold levels.
// Start is the header line; End is the last line of the body (inclusive).
type Region struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Level int `json:"level"`
}

// Lines returns the number of lines in the region, header included.
func (r Region) Lines() int {
	return r.End - r.Start + 1
}

// Regions derives fold regions from per-line levels. A region starts at a
// line whose successor has a higher level and extends over every following
// line with a level greater than the header's. Regions are returned in
// order of their start line; nested regions follow their parent.
func Regions(levels []int) []Region {
	var regions []Region
	for i := 0; i+1 < len(levels); i++ {
		if levels[i+1] <= levels[i] {
			continue
		}
		end := i + 1
		for end+1 < len(levels) && levels[end+1] > levels[i] {
			end++
		}
		regions = append(regions, Region{Start: i, End: end, Level: levels[i]})
	}
	return regions
}
