// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import "strings"

// glslKeywords contains GLSL words that cannot name a uniform or an
// attribute: type names, qualifiers and control flow.
var glslKeywords = map[string]struct{}{
	// Basic types
	"void": {}, "bool": {}, "int": {}, "uint": {}, "float": {}, "double": {},

	// Vector and matrix types
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"uvec2": {}, "uvec3": {}, "uvec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"mat2": {}, "mat3": {}, "mat4": {},

	// Sampler types
	"sampler2D": {}, "sampler3D": {}, "samplerCube": {},
	"sampler2DShadow": {}, "sampler2DArray": {},

	// Qualifiers
	"attribute": {}, "const": {}, "uniform": {}, "varying": {}, "buffer": {}, "shared": {},
	"centroid": {}, "flat": {}, "smooth": {}, "noperspective": {},
	"layout": {}, "location": {}, "in": {}, "out": {}, "inout": {},
	"invariant": {}, "precise": {}, "precision": {},
	"lowp": {}, "mediump": {}, "highp": {},

	// Control flow
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {},
	"switch": {}, "case": {}, "default": {}, "if": {}, "else": {},
	"discard": {}, "return": {}, "struct": {},
	"true": {}, "false": {},

	// Reserved for future use
	"common": {}, "partition": {}, "active": {}, "asm": {}, "class": {}, "union": {},
	"enum": {}, "typedef": {}, "template": {}, "this": {}, "goto": {},
	"inline": {}, "noinline": {}, "public": {}, "static": {}, "extern": {},
	"external": {}, "interface": {}, "long": {}, "short": {}, "half": {},
	"fixed": {}, "unsigned": {}, "input": {}, "output": {},

	// Names the generated sources declare
	"main": {}, "fragColor": {}, "v_normal": {}, "v_position": {}, "v_texCoord": {},
}

// isReserved reports whether name collides with a GLSL keyword, a name the
// generator declares itself, or the gl_ prefix.
func isReserved(name string) bool {
	if _, ok := glslKeywords[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "gl_")
}
