//go:build !android

package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Quad vertex shader: places the unit quad at uRect, given in screen
// pixels with the origin top-left.
const quadVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos; // 0..1 quad vertex

uniform vec4 uRect; // x, y, w, h
uniform vec2 uResolution;

out vec2 vUV;
out vec2 vPix;

void main() {
    vUV = aPos;
    vec2 pix = uRect.xy + aPos * uRect.zw;
    vPix = pix;
    vec2 ndc = (pix / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
}
` + "\x00"

// Quad fragment shader: flat colour, texture, or a top-to-bottom gradient.
const quadFragSrc = `#version 410 core

const int ModeFlat = 0;
const int ModeTexture = 1;
const int ModeGradient = 2;

uniform int uMode;
uniform vec4 uColor;
uniform vec4 uColor2;
uniform sampler2D uTex;

in vec2 vUV;
out vec4 FragColor;

void main() {
    if (uMode == ModeTexture) {
        FragColor = texture(uTex, vUV) * uColor;
    } else if (uMode == ModeGradient) {
        FragColor = mix(uColor, uColor2, vUV.y);
    } else {
        FragColor = uColor;
    }
}
` + "\x00"

// Celestial fragment shader: the sun is a radial gradient disc with a
// yellow halo; the moon a white disc with a second offset disc for the
// crescent and a pale halo.
const bodyFragSrc = `#version 410 core

uniform vec2 uCenter;
uniform int uKind; // 0 sun, 1 moon

in vec2 vPix;
out vec4 FragColor;

float ramp(float d, float r0, float r1) {
    return clamp((d - r0) / (r1 - r0), 0.0, 1.0);
}

vec4 sun(float d) {
    vec4 inner = vec4(1.0, 1.0, 0.706, 1.0);
    vec4 mid = vec4(1.0, 0.863, 0.314, 0.7);
    vec4 outer = vec4(1.0, 0.863, 0.314, 0.0);
    float t = ramp(d, 10.0, 60.0);
    vec4 c = t < 0.5 ? mix(inner, mid, t * 2.0) : mix(mid, outer, t * 2.0 - 1.0);
    if (d > 48.0) {
        c = vec4(0.0);
    }
    float glow = (1.0 - ramp(d, 30.0, 108.0)) * 0.45;
    return vec4(mix(vec3(1.0, 1.0, 0.0), c.rgb, c.a), c.a + glow * (1.0 - c.a));
}

vec4 moon(vec2 p) {
    float d = length(p);
    bool inside = d <= 36.0 || length(p - vec2(16.0, -6.0)) <= 32.0;
    float a = inside ? 1.0 - ramp(d, 30.4, 40.0) : 0.0;
    float glow = (1.0 - ramp(d, 24.0, 86.0)) * 0.35;
    return vec4(1.0, 1.0, 1.0, a + glow * (1.0 - a));
}

void main() {
    vec2 p = vPix - uCenter;
    FragColor = uKind == 0 ? sun(length(p)) : moon(p);
}
` + "\x00"

// Star vertex shader: round point sprites sized by radius.
const starVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in float aRadius;
layout(location = 2) in float aAlpha;

uniform vec2 uResolution;

out float vAlpha;
out float vRadius;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    gl_PointSize = max(1.0, ceil(aRadius * 2.0 + 2.0));
    vAlpha = aAlpha;
    vRadius = aRadius;
}
` + "\x00"

const starFragSrc = `#version 410 core

in float vAlpha;
in float vRadius;
out vec4 FragColor;

void main() {
    float size = ceil(vRadius * 2.0 + 2.0);
    float d = length(gl_PointCoord - vec2(0.5)) * size;
    float cover = clamp(vRadius - d + 0.5, 0.0, 1.0);
    if (cover <= 0.0) discard;
    FragColor = vec4(1.0, 1.0, 1.0, vAlpha * cover);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
