// Package render turns positioned layouts into visual artifacts.
//
// The layout engine has already assigned every entity a global coordinate,
// so rendering is a projection, not another layout pass: DOT output pins
// each node at its computed position and Graphviz only draws. Supported
// formats are JSON (the layout itself), DOT, and SVG.
package render
