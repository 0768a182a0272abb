package docxtable

import "strings"

// Autofit is the layout directive of a table
type Autofit int

const (
	// AutofitUnset means the table carries no layout directive
	AutofitUnset Autofit = iota
	// AutofitEnabled lets column widths adapt to content
	AutofitEnabled
	// AutofitDisabled keeps a fixed layout
	AutofitDisabled
)

func (a Autofit) String() string {
	switch a {
	case AutofitUnset:
		return "unset"
	case AutofitEnabled:
		return "autofit"
	case AutofitDisabled:
		return "fixed"
	default:
		return "unknown"
	}
}

// Bool returns the directive as a boolean; ok is false when unset
func (a Autofit) Bool() (value bool, ok bool) {
	switch a {
	case AutofitEnabled:
		return true, true
	case AutofitDisabled:
		return false, true
	default:
		return false, false
	}
}

func (a Autofit) valid() bool {
	return a >= AutofitUnset && a <= AutofitDisabled
}

// AutofitFromBool converts an explicit boolean directive
func AutofitFromBool(enabled bool) Autofit {
	if enabled {
		return AutofitEnabled
	}
	return AutofitDisabled
}

// ParseAutofit translates a layout token ("autofit", "fixed", "unset" and
// the boolean spellings) into an Autofit value
func ParseAutofit(token string) (Autofit, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "autofit", "auto", "true", "on":
		return AutofitEnabled, nil
	case "fixed", "false", "off":
		return AutofitDisabled, nil
	case "unset", "none", "inherit":
		return AutofitUnset, nil
	}
	return AutofitUnset, NewLookupError("autofit setting", token)
}
