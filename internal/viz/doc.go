// Package viz provides terminal styling for chargefield's command output:
// lipgloss text styles, colour themes, colour swatches and heat maps of
// sensor grid colours.
package viz
