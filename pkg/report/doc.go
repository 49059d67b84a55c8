// Package report renders scan, load and boot outcomes for the command line.
//
// Outcomes are first converted to plain documents (Scan, Load, Boot), then
// written in the selected Format. Structured formats (json, yaml, toml)
// encode the document as is. Text formats run it through the embedded
// templates, styled with lipgloss when the output is a color terminal.
package report
