// Package loader turns discovered directories into loaded modules and
// category registries.
//
// Categories are processed in load order: Libraries, then Plugins, then
// Mods. Each category goes through two phases:
//
//  1. Load: every file in the category's directories whose extension has a
//     registered Opener is opened. A failure records a rotten entry and
//     loading moves on to the next file.
//  2. Validate: Plugins and Mods definitions must declare the capability
//     their category requires and support the running platform. Rejected
//     definitions become rotten entries and are logged as warnings.
//
// Libraries are not validated. A summary line is logged per category.
package loader
