// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ShellVertexShader is the vertex shader for panel rendering.
//
//go:embed shell.vert
var ShellVertexShader string

// ShellFragmentShader is the fragment shader for panel rendering.
//
//go:embed shell.frag
var ShellFragmentShader string
