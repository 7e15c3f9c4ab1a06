package contrast

import "github.com/a11ykit/a11ylint/internal/ir"

// AnnotateScan computes and stores the contrast ratio for every element that
// declares both colors, so reports can show the measured value alongside any
// finding.
func AnnotateScan(scan *ir.Scan) {
	for i := range scan.Screens {
		for j := range scan.Screens[i].Elements {
			annotate(&scan.Screens[i].Elements[j])
		}
	}
}

func annotate(el *ir.Element) {
	if el.Foreground != "" && el.Background != "" {
		if r, err := Ratio(el.Foreground, el.Background); err == nil {
			el.Annotations.ContrastRatio = r
		}
	}
	for i := range el.Children {
		annotate(&el.Children[i])
	}
}
