// Package discovery walks the Libraries, Plugins and Mods base directories
// and returns the ordered directory sets the loader reads modules from.
//
// Each base directory is always included. Its subfolders are accepted when
// they pass the exclusion policy and, at the first level, contain a
// manifest.json. A subfolder named exactly like a category ("Plugins",
// ...) is filed under that category wherever it is found. The scanner
// does not mutate shared state: every Scan returns a fresh result.
package discovery
