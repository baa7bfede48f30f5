package domain

// Color is a presenter-interpreted color: a hex value ("#4f46e5"), an ANSI
// index ("63"), or empty for "unset".
type Color string

// Action is deferred work attached to a page's primary button.
// Whatever state it captures belongs to the integrating host.
type Action interface {
	Run()
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func()

// Run calls f.
func (f ActionFunc) Run() {
	f()
}

// Page is a single screen within the first-launch flow.
// Pages are treated as immutable once handed to a flow.
type Page struct {
	Title       string
	Description string
	Icon        Icon
	Background  Color
	// IconColor overrides the accent color for the icon when set.
	IconColor Color
	// ActionTitle replaces the default button label when set.
	ActionTitle string
	// Action runs when the primary button is pressed on this page.
	Action Action
}

// HasAction reports whether the page carries an action.
func (p Page) HasAction() bool {
	return p.Action != nil
}

// Equal compares every field except Action, which is not comparable.
func (p Page) Equal(other Page) bool {
	return p.Title == other.Title &&
		p.Description == other.Description &&
		p.Icon == other.Icon &&
		p.Background == other.Background &&
		p.IconColor == other.IconColor &&
		p.ActionTitle == other.ActionTitle
}

// FeatureRow is one entry of the "What's New" sheet. It is comparable with ==.
type FeatureRow struct {
	Title       string
	Description string
	Icon        Icon
	Background  Color
	IconColor   Color
}
