// Package contacts provides the contacts shell feature: full documents,
// search keystrokes, history navigation, mutations and the per-view event
// stream.
package contacts

// NavSignals are the signals sent with navigation requests.
type NavSignals struct {
	View     string `json:"view"`
	Q        string `json:"q"`
	Location string `json:"location"`
}

// ChromeSignals are the derived navigation signals patched into the page.
type ChromeSignals struct {
	Searching bool   `json:"searching"`
	Busy      bool   `json:"busy"`
	Failure   string `json:"failure"`
}

// SettledSignals are patched once a navigation settled.
type SettledSignals struct {
	ChromeSignals
	Location string `json:"location"`
}

// InputSignals rewrite the search input.
type InputSignals struct {
	Q string `json:"q"`
}
