// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL stage sources from FX shader definitions.
//
// Each shader yields at most one vertex and one fragment source. Both
// start with the same header and uniform block:
//
//	#version 330 core
//	precision highp float;
//
//	uniform mat4 mvp;
//
// The vertex stage adds one attribute per input with locations numbered
// from 0 in declaration order. The fragment stage reads the fixed
// v_normal, v_position and v_texCoord varyings and writes fragColor.
//
// # Basic Usage
//
//	src, err := glsl.Compile(shader, glsl.Options{
//	    LangVersion: glsl.Version330,
//	})
//
// # Stage Selection
//
// When a shader defines several functions for the same stage the last one
// is used. Set Options.StrictStages to reject such shaders instead.
package glsl
