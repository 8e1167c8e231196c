// Package formats provides readers and writers for hair asset files.
//
// HGL is the HairGL guide file: a little-endian header followed by guide
// vertices and the root triangulation. See hgl.go for the layout.
package formats
