package texquad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/db47h/texquad/srgb"
)

// Attribute and uniform names shared by all shader versions.
const (
	attribPosition = "aPosition"
	attribTexCoord = "aTexCoord"
	uniformTexture = "uTexture"
)

// glslFloat formats f as a GLSL float literal. GLSL 1.20 has no implicit
// int to float conversion, so the literal always has a decimal point or an
// exponent.
//
func glslFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// encodeFunc selects the linear segment for c <= Threshold, like srgb.Encode.
var encodeFunc = fmt.Sprintf(`
vec3 encodeSRGB(vec3 c)
{
	vec3 lo = %s * c;
	vec3 hi = %s * pow(c, vec3(1.0 / %s)) - %s;
	return mix(lo, hi, 1.0 - step(c, vec3(%s)));
}
`, glslFloat(srgb.Slope), glslFloat(srgb.Scale), glslFloat(srgb.Gamma), glslFloat(srgb.Offset), glslFloat(srgb.Threshold))

const vertexShader120 = `#version 120
attribute vec3 aPosition;
attribute vec2 aTexCoord;

varying vec2 vTexCoord;

void main()
{
	gl_Position = vec4(aPosition, 1.0);
	vTexCoord = aTexCoord;
}
`

const fragmentShader120 = `#version 120
varying vec2 vTexCoord;

uniform sampler2D uTexture;
%s
void main()
{
	vec4 c = texture2D(uTexture, vTexCoord);
	gl_FragColor = vec4(encodeSRGB(c.rgb), c.a);
}
`

const vertexShader330 = `#version 330 core
in vec3 aPosition;
in vec2 aTexCoord;

out vec2 vTexCoord;

void main()
{
	gl_Position = vec4(aPosition, 1.0);
	vTexCoord = aTexCoord;
}
`

const fragmentShader330 = `#version 330 core
in vec2 vTexCoord;

out vec4 fragColor;

uniform sampler2D uTexture;
%s
void main()
{
	vec4 c = texture(uTexture, vTexCoord);
	fragColor = vec4(encodeSRGB(c.rgb), c.a);
}
`

func shaderSources(v APIVersion) (vertex, fragment string) {
	if v == V1 {
		return vertexShader120, fmt.Sprintf(fragmentShader120, encodeFunc)
	}
	return vertexShader330, fmt.Sprintf(fragmentShader330, encodeFunc)
}
