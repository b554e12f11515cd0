// Package formats provides parsers for the Wavefront OBJ and MTL model formats.
package formats

// Note: OBJ geometry is implemented in obj.go
// Note: MTL material libraries are implemented in mtl.go
