package shaders

import (
	_ "embed"
)

//go:embed points.wgsl
var PointsWGSL string

//go:embed background.wgsl
var BackgroundWGSL string

//go:embed points.vert
var PointsVertGLSL string

//go:embed points.frag
var PointsFragGLSL string

//go:embed background.vert
var BackgroundVertGLSL string

//go:embed background.frag
var BackgroundFragGLSL string
